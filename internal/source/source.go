// Package source fetches the quote-of-the-day page and extracts the quote.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotebot/pkg/logx"
)

// ErrNoQuote means the page was retrieved but no quote could be extracted
// (layout changed, or the site served unexpected content).
var ErrNoQuote = errors.New("no quote found in page")

// Quote is one extracted quote of the day.
type Quote struct {
	Date      string // human date line from the page, e.g. "Monday, August 24, 2026"
	Title     string
	Content   string // body paragraphs joined by blank lines
	Author    string
	FetchDate string // ISO date of the fetch, e.g. "2026-08-24"
}

// Fetcher retrieves the current quote.
type Fetcher interface {
	FetchQuote(ctx context.Context) (Quote, error)
}

// Config configures the HTTP fetcher.
type Config struct {
	URL       string
	Timeout   time.Duration // 0 means 30s
	UserAgent string        // empty means a browser-like default
}

// The site serves a reduced page to obvious non-browser clients, so the
// fetcher identifies itself the way the original deployment did.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPFetcher fetches and extracts quotes from a live page.
type HTTPFetcher struct {
	cfg    Config
	log    logx.Logger
	client *http.Client

	// now is a clock hook for tests; nil means time.Now.
	now func() time.Time
}

func NewHTTPFetcher(cfg Config, log logx.Logger) (*HTTPFetcher, error) {
	if cfg.URL == "" {
		return nil, errors.New("source url is empty")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		cfg:    cfg,
		log:    log,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (f *HTTPFetcher) FetchQuote(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return Quote{}, err
	}
	ua := f.cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	f.log.Debug("fetching quote page", logx.String("url", f.cfg.URL))
	resp, err := f.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch %s: %w", f.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quote{}, fmt.Errorf("fetch %s: unexpected status %s", f.cfg.URL, resp.Status)
	}

	// The quote page is a few KB; the cap only guards against a
	// misconfigured URL pointing at something huge.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Quote{}, fmt.Errorf("read %s: %w", f.cfg.URL, err)
	}

	q, err := Extract(body)
	if err != nil {
		return Quote{}, err
	}
	q.FetchDate = f.clock().Format("2006-01-02")
	f.log.Debug("extracted quote", logx.String("title", q.Title))
	return q, nil
}

func (f *HTTPFetcher) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}
