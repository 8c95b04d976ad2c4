// Package booking scrapes the primary search results page.
package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hotel-scout/models"
	"hotel-scout/utils"
)

// Source fetches a search page and extracts listings from it.
type Source struct {
	fetcher   PageFetcher
	extractor *Extractor
	logger    *utils.Logger
}

// NewSource creates a Source over the given fetcher.
func NewSource(fetcher PageFetcher, logger *utils.Logger) *Source {
	return &Source{
		fetcher:   fetcher,
		extractor: NewExtractor(logger),
		logger:    logger,
	}
}

func (s *Source) Name() string { return "primary" }

// Fetch returns the listings on the search page for city. Transport errors are
// returned so the caller can move on to the next source.
func (s *Source) Fetch(ctx context.Context, city string) ([]models.Listing, error) {
	page, err := s.fetcher.FetchSearchPage(ctx, city)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("booking: parse html: %w", err)
	}

	listings := s.extractor.Extract(doc)
	s.logger.Info("[booking] Extracted %d listings for %q", len(listings), city)
	return listings, nil
}
