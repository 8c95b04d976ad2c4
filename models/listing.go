package models

import (
	"errors"
	"math"
	"strings"
)

// ErrMissingName is returned when a candidate listing has no usable name.
var ErrMissingName = errors.New("listing: missing name")

// Listing is one typed hotel record. It is built once through NewListing and
// passed by value afterwards; nothing downstream writes to it.
type Listing struct {
	Name     string   `json:"name"`
	Rating   *float64 `json:"rating"`
	Price    *float64 `json:"price"`
	Currency *string  `json:"currency"`
}

// NewListing validates a candidate. Non-finite or negative numbers are
// dropped to absent rather than stored.
func NewListing(name string, rating, price *float64, currency string) (Listing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Listing{}, ErrMissingName
	}

	l := Listing{
		Name:   name,
		Rating: validNumber(rating),
		Price:  validNumber(price),
	}
	if c := strings.TrimSpace(currency); c != "" {
		l.Currency = &c
	}
	return l, nil
}

func validNumber(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

// HasPrice reports whether a price was parsed.
func (l Listing) HasPrice() bool { return l.Price != nil }

// PriceValue returns the price, or 0 when absent.
func (l Listing) PriceValue() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// RatingOr returns the rating or def when absent.
func (l Listing) RatingOr(def float64) float64 {
	if l.Rating == nil {
		return def
	}
	return *l.Rating
}

// CurrencyCode returns the currency code or "" when absent.
func (l Listing) CurrencyCode() string {
	if l.Currency == nil {
		return ""
	}
	return *l.Currency
}

// BudgetQuery is the user's spending limit, parsed once per run.
type BudgetQuery struct {
	Amount   float64
	Currency string
}

// RankingResult holds the statistics computed over one run's listings.
type RankingResult struct {
	AveragePrice *float64
	BestValue    *Listing
	Filtered     []Listing
}

// RawListing is a candidate as found in the source, before any parsing.
// Currency, when set, overrides detection from RawPrice.
type RawListing struct {
	Name      string
	RawRating string
	RawPrice  string
	Currency  string
	Source    string
}
