package fallback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticDeterministic(t *testing.T) {
	g := NewSyntheticGenerator("USD")

	first := g.Generate("Muscat")
	second := g.Generate("Muscat")
	require.Equal(t, first, second)

	require.Equal(t, first, g.Generate("MUSCAT"))
	require.Equal(t, first, g.Generate("  muscat "))
}

func TestSyntheticShape(t *testing.T) {
	listings := NewSyntheticGenerator("USD").Generate("muscat")
	require.Len(t, listings, 5)

	wantNames := []string{
		"Muscat Grand Hotel",
		"Muscat Plaza",
		"Muscat Boutique Stay",
		"Muscat Riverside Inn",
		"Muscat Central Suites",
	}
	for i, l := range listings {
		require.Equal(t, wantNames[i], l.Name)
		require.NotNil(t, l.Rating)
		require.NotNil(t, l.Price)
		require.GreaterOrEqual(t, *l.Rating, minRating)
		require.LessOrEqual(t, *l.Rating, maxRating)
		require.GreaterOrEqual(t, *l.Price, minPrice)
		require.LessOrEqual(t, *l.Price, maxPrice)
		require.Equal(t, round(*l.Rating, 1), *l.Rating)
		require.Equal(t, round(*l.Price, 2), *l.Price)
		require.Equal(t, "USD", l.CurrencyCode())
	}
}

func TestSyntheticDiffersByCity(t *testing.T) {
	g := NewSyntheticGenerator("USD")
	a := g.Generate("Muscat")
	b := g.Generate("Salalah")
	require.NotEqual(t, *a[0].Price, *b[0].Price)
}
