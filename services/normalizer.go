package services

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"hotel-scout/models"
)

var (
	// numberRegexp captures the first decimal-looking run, with . or , separators
	numberRegexp = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)
	// isoCodeRegexp captures a bare three-letter currency code such as "USD"
	isoCodeRegexp = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// currencySymbols is checked in order; the first marker found in the text wins.
var currencySymbols = []struct {
	marker string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"﷼", "OMR"},
	{"ر.ع.", "OMR"},
	{"AED", "AED"},
	{"SAR", "SAR"},
	{"OMR", "OMR"},
	{"₹", "INR"},
}

var (
	ErrMissingCity   = errors.New("city is required")
	ErrInvalidBudget = errors.New("could not parse a budget amount")
)

// ParseNumber extracts the first number from free-form text.
//
// Commas are always treated as thousands separators: "1,234.56" is 1234.56
// and "1,234,56" is 123456. This does not understand European "1.234,56".
func ParseNumber(text string) (float64, bool) {
	raw := numberRegexp.FindString(text)
	if raw == "" {
		return 0, false
	}

	if strings.Count(raw, ",") > 1 && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", "")
	}
	raw = strings.ReplaceAll(raw, ",", "")

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return 0, false
	}
	return val, true
}

// ParseNumberPtr is ParseNumber returning nil for "absent".
func ParseNumberPtr(text string) *float64 {
	val, ok := ParseNumber(text)
	if !ok {
		return nil
	}
	return &val
}

// ParseCurrency detects a currency code from symbols or a bare ISO code.
func ParseCurrency(text string) (string, bool) {
	for _, s := range currencySymbols {
		if strings.Contains(text, s.marker) {
			return s.code, true
		}
	}
	if m := isoCodeRegexp.FindStringSubmatch(text); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

// ParseBudgetInput reads an amount and an optional currency from text like "50 omr".
func ParseBudgetInput(text string) (*float64, string) {
	currency, _ := ParseCurrency(strings.ToUpper(text))
	return ParseNumberPtr(text), currency
}

// ParseBudget builds a BudgetQuery, failing when no amount can be read.
func ParseBudget(text string) (models.BudgetQuery, error) {
	amount, currency := ParseBudgetInput(strings.TrimSpace(text))
	if amount == nil {
		return models.BudgetQuery{}, ErrInvalidBudget
	}
	return models.BudgetQuery{Amount: *amount, Currency: currency}, nil
}
