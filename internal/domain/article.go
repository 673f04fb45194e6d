// Package domain provides domain models used across the application.
package domain

// Article represents a normalized record extracted from one news page.
type Article struct {
	// Title of the article, parsed from the embedded tracking script.
	Title string `json:"title"`
	// Description from the meta description tag.
	Description string `json:"description"`
	// Body text with a line-isolated [IMG] marker where each image appeared.
	Content string `json:"content"`
	// Publish timestamp as reported by the page metadata.
	PublishedAt string `json:"published_at"`
	// Author of the article.
	Author string `json:"author"`
	// Absolute image URLs from the body, deduplicated in first-seen order.
	ImageURLs []string `json:"image_urls"`
	// Thumbnail image URL (og:image or image_src link).
	ThumbnailURL string `json:"thumbnail_url"`
	// Canonical article URL; the primary dedup key.
	ContentURL string `json:"content_url"`
	// Publisher display name, constant for a given source site.
	Publisher string `json:"publisher"`
	// Exchange ticker hint supplied by the caller, passed through untouched.
	StockCode string `json:"stock_code,omitempty"`
}

// HasBody reports whether the article carries both a title and body text.
// Articles without either are skipped before analysis and persistence.
func (a *Article) HasBody() bool {
	return a.Title != "" && a.Content != ""
}
