package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestNewListingRequiresName(t *testing.T) {
	_, err := NewListing("   ", ptr(8), ptr(50), "USD")
	require.ErrorIs(t, err, ErrMissingName)
}

func TestNewListingDropsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value *float64
	}{
		{"nan", ptr(math.NaN())},
		{"inf", ptr(math.Inf(1))},
		{"negative", ptr(-3)},
		{"nil", nil},
	}

	for _, tt := range tests {
		l, err := NewListing("Hotel", tt.value, tt.value, "")
		require.NoError(t, err, tt.name)
		require.Nil(t, l.Rating, tt.name)
		require.Nil(t, l.Price, tt.name)
		require.Nil(t, l.Currency, tt.name)
	}
}

func TestNewListingCopiesInputs(t *testing.T) {
	price := 40.0
	l, err := NewListing(" Sea View ", nil, &price, "OMR")
	require.NoError(t, err)

	price = 999
	require.Equal(t, "Sea View", l.Name)
	require.Equal(t, 40.0, l.PriceValue())
	require.Equal(t, "OMR", l.CurrencyCode())
	require.Equal(t, 0.0, l.RatingOr(0))
}

func TestListingJSONNulls(t *testing.T) {
	l, err := NewListing("Plain", nil, ptr(12.5), "")
	require.NoError(t, err)

	out, err := json.Marshal(l)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Plain","rating":null,"price":12.5,"currency":null}`, string(out))
}
