// Package search collects candidate article URLs from the news-search
// result listing.
package search

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/newsradar/internal/logger"
)

const (
	// DefaultEndpoint is the news-search endpoint.
	DefaultEndpoint = "https://search.hankyung.com/search/news"
	// DefaultOrigin is the canonical article site origin.
	DefaultOrigin = "https://www.hankyung.com"
	// DefaultLimit caps accepted URLs per keyword.
	DefaultLimit = 10
	// DefaultUserAgent is a realistic browser agent; the search endpoint
	// rejects default library agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
	// defaultRequestTimeout bounds one search request.
	defaultRequestTimeout = 30 * time.Second
)

// listingSelector matches result anchors in either listing container layout.
const listingSelector = "ul.article li a[href], .result_article li a[href]"

// articlePathRe is the accepted article path shape, checked against the
// URL path after the configured origin: numeric id under /article.
var articlePathRe = regexp.MustCompile(`^/article/\d+`)

// Config configures the search collector.
type Config struct {
	// Endpoint is the search URL; tests point it at a local server.
	Endpoint string
	// Origin prefixes relative result hrefs and gates the origin filter.
	Origin string
	// UserAgent is sent with every search request.
	UserAgent string
	// Limit caps the number of accepted URLs per search.
	Limit int
}

// withDefaults fills unset config fields.
func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Origin == "" {
		c.Origin = DefaultOrigin
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	return c
}

// Collector performs one search request per keyword and returns the
// deduplicated, capped list of article URLs passing the shape filter.
type Collector struct {
	cfg Config
	log logger.Interface
}

// NewCollector creates a new search collector.
func NewCollector(cfg Config, log logger.Interface) *Collector {
	return &Collector{cfg: cfg.withDefaults(), log: log}
}

// Search queries the listing for one keyword. Zero matches is a valid empty
// result; only the request itself failing returns an error.
func (c *Collector) Search(ctx context.Context, keyword string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	links := make([]string, 0, c.cfg.Limit)
	seen := make(map[string]bool)

	collector := colly.NewCollector(colly.UserAgent(c.cfg.UserAgent))
	collector.SetRequestTimeout(defaultRequestTimeout)

	collector.OnHTML(listingSelector, func(e *colly.HTMLElement) {
		if len(links) >= c.cfg.Limit {
			return
		}

		full, ok := c.normalize(e.Attr("href"))
		if !ok || seen[full] {
			return
		}

		seen[full] = true
		links = append(links, full)
	})

	var visitErr error
	collector.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := collector.Visit(c.searchURL(keyword)); err != nil {
		return nil, fmt.Errorf("search request for %q: %w", keyword, err)
	}
	collector.Wait()

	if visitErr != nil {
		return nil, fmt.Errorf("search request for %q: %w", keyword, visitErr)
	}

	c.log.Debug("search complete", "keyword", keyword, "links", len(links))
	return links, nil
}

// searchURL builds the fixed sort/scope query for a keyword.
func (c *Collector) searchURL(keyword string) string {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("sort", "RANK/DESC,DATE/DESC")
	q.Set("period", "ALL")
	q.Set("area", "title")
	q.Set("exact", "")
	q.Set("include", "")
	q.Set("except", "")
	q.Set("hk_only", "")
	return c.cfg.Endpoint + "?" + q.Encode()
}

// normalize absolutizes a listing href and applies the shape filters in
// order: origin prefix, numeric article path, each short-circuiting.
func (c *Collector) normalize(href string) (string, bool) {
	if href == "" {
		return "", false
	}

	full := href
	if !strings.HasPrefix(href, "http") {
		full = c.cfg.Origin + href
	}

	if !strings.HasPrefix(full, c.cfg.Origin) {
		return "", false
	}
	if !articlePathRe.MatchString(strings.TrimPrefix(full, c.cfg.Origin)) {
		return "", false
	}

	return full, true
}
