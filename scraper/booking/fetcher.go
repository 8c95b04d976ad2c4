package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"hotel-scout/scraper"
)

// PageFetcher retrieves the raw HTML of a search results page for a city.
type PageFetcher interface {
	FetchSearchPage(ctx context.Context, city string) (string, error)
}

// HTTPFetcher fetches the search page with a plain GET.
type HTTPFetcher struct {
	client    *resty.Client
	headers   *scraper.HeaderRotator
	searchURL string
	timeout   time.Duration
}

// NewHTTPFetcher creates an HTTPFetcher for searchURL; the city is sent as ?ss=.
func NewHTTPFetcher(client *resty.Client, headers *scraper.HeaderRotator, searchURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    client,
		headers:   headers,
		searchURL: searchURL,
		timeout:   timeout,
	}
}

func (f *HTTPFetcher) FetchSearchPage(ctx context.Context, city string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetHeaders(f.headers.Headers()).
		SetQueryParam("ss", city).
		Get(f.searchURL)
	if err != nil {
		return "", fmt.Errorf("booking: fetch search page: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("booking: search page returned status %d", res.StatusCode())
	}
	return res.String(), nil
}
