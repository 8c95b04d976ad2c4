// Package scraper holds the HTTP plumbing shared by every listing source.
package scraper

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"hotel-scout/utils"
)

// UserAgents is the fixed pool rotated across requests.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

var retryStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// HeaderRotator hands out browser-like request headers with a random User-Agent.
type HeaderRotator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeaderRotator creates a rotator seeded from the clock.
func NewHeaderRotator() *HeaderRotator {
	return &HeaderRotator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Headers returns a fresh header set for one request.
func (h *HeaderRotator) Headers() map[string]string {
	h.mu.Lock()
	ua := UserAgents[h.rng.Intn(len(UserAgents))]
	h.mu.Unlock()

	return map[string]string{
		"User-Agent":      ua,
		"Accept-Language": "en-US,en;q=0.9",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Connection":      "keep-alive",
	}
}

// ClientOptions configures the shared HTTP client.
type ClientOptions struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
	Logger         *utils.Logger
}

// NewHTTPClient builds a resty client that retries GETs on transport errors,
// 429 and transient 5xx responses with doubling back-off. Per-call timeouts are applied by the
// callers through the request context.
func NewHTTPClient(opts ClientOptions) *resty.Client {
	client := resty.New()
	client.SetRetryCount(opts.MaxRetries)
	client.SetRetryWaitTime(opts.RetryBaseDelay)
	client.SetRetryMaxWaitTime(opts.RetryBaseDelay * time.Duration(1<<max(opts.MaxRetries, 0)))
	client.SetRetryAfter(func(c *resty.Client, res *resty.Response) (time.Duration, error) {
		attempt := res.Request.Attempt
		if attempt < 1 {
			attempt = 1
		}
		return opts.RetryBaseDelay * time.Duration(1<<(attempt-1)), nil
	})
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if res == nil || res.Request == nil || res.Request.Method != http.MethodGet {
			return false
		}
		if err != nil {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}
		_, retry := retryStatuses[res.StatusCode()]
		return retry
	})
	if opts.Logger != nil {
		logger := opts.Logger
		client.AddRetryHook(func(res *resty.Response, err error) {
			if res == nil || res.Request == nil || err != nil {
				logger.Warn("[http] Retrying after error: %v", err)
				return
			}
			logger.Warn("[http] Retrying %s (status %d, attempt %d)",
				res.Request.URL, res.StatusCode(), res.Request.Attempt)
		})
	}
	return client
}
