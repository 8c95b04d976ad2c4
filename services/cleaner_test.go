package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"hotel-scout/models"
	"hotel-scout/utils"
)

func newTestLogger() *utils.Logger {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf)
}

func TestCleanerDropsMissingName(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.RawListing{
		{Name: "", RawPrice: "$100", Source: "test"},
		{Name: "  Has   Name ", RawPrice: "$200", Source: "test"},
	}

	cleaned := c.Clean(raw)
	require.Len(t, cleaned, 1)
	require.Equal(t, "Has Name", cleaned[0].Name)
}

func TestCleanerKeepsCandidateWithBadFields(t *testing.T) {
	c := NewCleaner(newTestLogger())

	l, err := c.CleanOne(models.RawListing{Name: "Dune Camp", RawRating: "New", RawPrice: "price on request"})
	require.NoError(t, err)
	require.Nil(t, l.Rating)
	require.Nil(t, l.Price)
	require.Nil(t, l.Currency)
}

func TestCleanerCurrency(t *testing.T) {
	c := NewCleaner(newTestLogger())

	detected, err := c.CleanOne(models.RawListing{Name: "A", RawRating: "Scored 8.7", RawPrice: "€ 1,250"})
	require.NoError(t, err)
	require.Equal(t, "EUR", detected.CurrencyCode())
	require.Equal(t, 1250.0, detected.PriceValue())
	require.Equal(t, 8.7, detected.RatingOr(0))

	fixed, err := c.CleanOne(models.RawListing{Name: "B", RawPrice: "£40", Currency: "usd"})
	require.NoError(t, err)
	require.Equal(t, "USD", fixed.CurrencyCode())
}
