// Package fallback provides the secondary JSON source and the synthetic
// last-resort generator behind it.
package fallback

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"hotel-scout/models"
	"hotel-scout/scraper"
	"hotel-scout/services"
	"hotel-scout/utils"
)

// Options configures a Client.
type Options struct {
	URL      string
	Size     int
	Timeout  time.Duration
	Currency string
}

// Client queries the structured fallback endpoint. Any failure is absorbed and
// answered with synthetic listings, so Fetch never returns an error.
type Client struct {
	http      *resty.Client
	headers   *scraper.HeaderRotator
	opts      Options
	cleaner   *services.Cleaner
	synthetic *SyntheticGenerator
	logger    *utils.Logger
}

// NewClient creates a fallback Client.
func NewClient(httpClient *resty.Client, headers *scraper.HeaderRotator, opts Options, logger *utils.Logger) *Client {
	return &Client{
		http:      httpClient,
		headers:   headers,
		opts:      opts,
		cleaner:   services.NewCleaner(logger),
		synthetic: NewSyntheticGenerator(opts.Currency),
		logger:    logger,
	}
}

func (c *Client) Name() string { return "fallback" }

// Fetch returns the endpoint's listings, or synthetic ones when the endpoint
// fails or answers with something unusable. A well-formed empty answer stays empty.
func (c *Client) Fetch(ctx context.Context, city string) ([]models.Listing, error) {
	listings, err := c.fetchRemote(ctx)
	if err != nil {
		c.logger.Warn("[fallback] %v — generating synthetic listings for %q", err, city)
		return c.synthetic.Generate(city), nil
	}
	c.logger.Info("[fallback] Fetched %d listings", len(listings))
	return listings, nil
}

func (c *Client) fetchRemote(ctx context.Context) ([]models.Listing, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers.Headers()).
		SetHeader("Accept", "application/json")
	if c.opts.Size > 0 {
		req.SetQueryParam("size", strconv.Itoa(c.opts.Size))
	}

	res, err := req.Get(c.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("fallback: request failed: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fallback: endpoint returned status %d", res.StatusCode())
	}

	p, err := decodePayload(res.Body())
	if err != nil {
		return nil, err
	}
	return c.mapPayload(p)
}

func (c *Client) mapPayload(p payload) ([]models.Listing, error) {
	switch p := p.(type) {
	case recordsPayload:
		raw := make([]models.RawListing, 0, len(p.records))
		for _, r := range p.records {
			name, ok := r.name()
			if !ok {
				continue
			}
			rating, _ := r.text("rating")
			price, _ := r.text("price")
			raw = append(raw, models.RawListing{
				Name:      name,
				RawRating: rating,
				RawPrice:  price,
				Currency:  c.opts.Currency,
				Source:    "fallback",
			})
		}
		return c.cleaner.Clean(raw), nil
	case unrecognizedPayload:
		return nil, fmt.Errorf("fallback: unrecognized payload shape (%s)", p.kind)
	default:
		return nil, fmt.Errorf("fallback: unknown payload type %T", p)
	}
}
