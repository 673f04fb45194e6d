// Package fetch retrieves article pages and turns them into domain records.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/newsradar/internal/domain"
	"github.com/jonesrussell/newsradar/internal/extract"
	"github.com/jonesrussell/newsradar/internal/logger"
)

// DefaultUserAgent is a realistic browser agent; the source site rejects
// default library agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// DefaultPublisher is the fixed source display name attached to every article.
const DefaultPublisher = "한국경제"

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// defaultRequestTimeout bounds one article fetch.
const defaultRequestTimeout = 30 * time.Second

// Config configures the article fetcher.
type Config struct {
	UserAgent      string
	Publisher      string
	RequestTimeout time.Duration
}

// withDefaults fills unset config fields.
func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Publisher == "" {
		c.Publisher = DefaultPublisher
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return c
}

// Fetcher performs one GET per article URL and delegates field extraction.
type Fetcher struct {
	cfg        Config
	httpClient *http.Client
	extractor  *extract.Extractor
	log        logger.Interface
}

// NewFetcher creates a new article fetcher.
func NewFetcher(cfg Config, log logger.Interface) *Fetcher {
	cfg = cfg.withDefaults()
	return &Fetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		extractor:  extract.NewExtractor(),
		log:        log,
	}
}

// Fetch retrieves one article page and returns the extracted record with
// the canonical URL, publisher, and caller-supplied stock code attached.
// Network and non-2xx failures are fatal for this URL and propagate.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, stockCode string) (*domain.Article, error) {
	f.log.Debug("fetching article", "url", pageURL)

	body, err := f.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	article, err := f.extractor.Extract(body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article %s: %w", pageURL, err)
	}

	article.ContentURL = pageURL
	article.Publisher = f.cfg.Publisher
	article.StockCode = stockCode

	return article, nil
}

// fetchPage performs the HTTP GET request for the given article URL.
func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
