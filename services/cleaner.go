package services

import (
	"strings"
	"unicode"

	"hotel-scout/models"
	"hotel-scout/utils"
)

// Cleaner turns raw candidates into validated Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every candidate and drops the ones without a name. A field that
// fails to parse is left absent; it never discards the candidate.
func (c *Cleaner) Clean(raw []models.RawListing) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for _, r := range raw {
		listing, err := c.CleanOne(r)
		if err != nil {
			c.logger.Debug("[cleaner] Dropping %s candidate: %v", r.Source, err)
			continue
		}
		result = append(result, listing)
	}

	if dropped := len(raw) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)", len(raw), len(result), dropped)
	}
	return result
}

// CleanOne normalizes a single candidate.
func (c *Cleaner) CleanOne(r models.RawListing) (models.Listing, error) {
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency == "" {
		currency, _ = ParseCurrency(r.RawPrice)
	}

	return models.NewListing(
		normaliseText(r.Name),
		ParseNumberPtr(r.RawRating),
		ParseNumberPtr(r.RawPrice),
		currency,
	)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
