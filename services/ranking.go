package services

import (
	"hotel-scout/models"
)

// AveragePrice is the mean of every present price.
func AveragePrice(listings []models.Listing) (float64, bool) {
	var total float64
	var count int
	for _, l := range listings {
		if !l.HasPrice() {
			continue
		}
		total += l.PriceValue()
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// FindBestValue picks the cheapest priced listing, breaking price ties by the
// highest rating (absent counts as 0) and then by input order.
func FindBestValue(listings []models.Listing) (models.Listing, bool) {
	var best models.Listing
	found := false

	for _, l := range listings {
		if !l.HasPrice() {
			continue
		}
		if !found {
			best, found = l, true
			continue
		}
		switch {
		case l.PriceValue() < best.PriceValue():
			best = l
		case l.PriceValue() == best.PriceValue() && l.RatingOr(0) > best.RatingOr(0):
			best = l
		}
	}
	return best, found
}

// FilterByBudget keeps listings with a present price at or under amount.
func FilterByBudget(listings []models.Listing, amount float64) []models.Listing {
	filtered := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.HasPrice() && l.PriceValue() <= amount {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// Rank computes the average over all listings and the best value within budget.
func Rank(all []models.Listing, budget models.BudgetQuery) models.RankingResult {
	result := models.RankingResult{
		Filtered: FilterByBudget(all, budget.Amount),
	}
	if avg, ok := AveragePrice(all); ok {
		result.AveragePrice = &avg
	}
	if best, ok := FindBestValue(result.Filtered); ok {
		result.BestValue = &best
	}
	return result
}

// CurrencyMismatch reports whether the budget currency is absent from every
// listing that carries a currency. It is false when nothing can be compared.
func CurrencyMismatch(listings []models.Listing, budgetCurrency string) bool {
	if budgetCurrency == "" {
		return false
	}
	seen := false
	for _, l := range listings {
		code := l.CurrencyCode()
		if code == "" {
			continue
		}
		if code == budgetCurrency {
			return false
		}
		seen = true
	}
	return seen
}
