package fallback

import (
	"math"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hotel-scout/models"
)

var syntheticSuffixes = []string{
	"Grand Hotel",
	"Plaza",
	"Boutique Stay",
	"Riverside Inn",
	"Central Suites",
}

const (
	minRating = 7.0
	maxRating = 9.4
	minPrice  = 25.0
	maxPrice  = 120.0
)

// SyntheticGenerator derives a fixed set of plausible listings from a city
// name alone. The same city, in any letter case, always yields the same set.
type SyntheticGenerator struct {
	currency string
}

// NewSyntheticGenerator creates a generator whose listings carry currency.
func NewSyntheticGenerator(currency string) *SyntheticGenerator {
	return &SyntheticGenerator{currency: currency}
}

// Generate returns five listings seeded from city.
func (g *SyntheticGenerator) Generate(city string) []models.Listing {
	city = strings.Join(strings.Fields(city), " ")
	rng := rand.New(rand.NewSource(citySeed(city)))
	display := cases.Title(language.Und).String(strings.ToLower(city))

	listings := make([]models.Listing, 0, len(syntheticSuffixes))
	for _, suffix := range syntheticSuffixes {
		rating := round(minRating+rng.Float64()*(maxRating-minRating), 1)
		price := round(minPrice+rng.Float64()*(maxPrice-minPrice), 2)

		l, err := models.NewListing(strings.TrimSpace(display+" "+suffix), &rating, &price, g.currency)
		if err != nil {
			continue
		}
		listings = append(listings, l)
	}
	return listings
}

func citySeed(city string) int64 {
	var seed int64
	for _, r := range strings.ToLower(city) {
		seed += int64(r)
	}
	return seed
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
