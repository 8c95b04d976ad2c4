package booking

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"hotel-scout/scraper"
	"hotel-scout/utils"
)

// BrowserFetcher renders the search page in headless Chrome, for pages whose
// cards are only present after scripts run.
type BrowserFetcher struct {
	searchURL string
	chromeBin string
	timeout   time.Duration
	headers   *scraper.HeaderRotator
	retry     *utils.RetryConfig
	logger    *utils.Logger
}

// NewBrowserFetcher creates a BrowserFetcher. An empty chromeBin is resolved
// from CHROME_BIN and the usual install locations.
func NewBrowserFetcher(searchURL, chromeBin string, timeout time.Duration, retry *utils.RetryConfig, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BrowserFetcher{
		searchURL: searchURL,
		chromeBin: chromeBin,
		timeout:   timeout,
		headers:   scraper.NewHeaderRotator(),
		retry:     retry,
		logger:    logger,
	}
}

func (f *BrowserFetcher) FetchSearchPage(ctx context.Context, city string) (string, error) {
	pageURL, err := searchPageURL(f.searchURL, city)
	if err != nil {
		return "", err
	}

	f.logger.Info("[booking] Using browser binary: %q", f.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(f.headers.Headers()["User-Agent"]),
	)
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var page string
	err = f.retry.Do(ctx, "browser-search-page", func(context.Context) error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &page, chromedp.ByQuery),
		)
	})
	if err != nil {
		return "", fmt.Errorf("booking: browser fetch: %w", err)
	}
	return page, nil
}

func searchPageURL(base, city string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("booking: parse search url: %w", err)
	}
	q := u.Query()
	q.Set("ss", city)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
