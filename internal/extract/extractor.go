// Package extract parses article pages into structured fields.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsradar/internal/domain"
)

// ImageMarker is the line-isolated token substituted for each body image.
const ImageMarker = "[IMG]"

// bodySelector is the fixed content container on article pages.
const bodySelector = "#articletxt"

// trackingScriptNeedle identifies the analytics script block carrying the
// clean article title.
const trackingScriptNeedle = "window.GATrackingData"

var (
	titleRe    = regexp.MustCompile("title:\\s*`([^`]+)`")
	imgTagRe   = regexp.MustCompile(`(?i)<img[^>]*src="([^"]+)"[^>]*>`)
	scriptRe   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	videoRe    = regexp.MustCompile(`(?is)<video[^>]*>.*?</video>`)
	iframeRe   = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTagRe   = regexp.MustCompile(`<[^>]*>`)
	boilerText = []string{
		"본문 글씨 줄이기",
		"본문 글씨 키우기",
		"바로가기",
		"복사하기",
		"다른 공유 찾기",
		"이 기사를 공유합니다",
		"페이스북",
		"트위터",
		"카카오톡",
		"무료상담",
	}
)

// Extractor extracts article fields from raw HTML. It performs no network
// or storage access; every field degrades to its zero value when absent.
type Extractor struct{}

// NewExtractor creates a new article extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses HTML fetched from baseURL and returns the structured
// article fields. The only error condition is unparseable input; missing
// fields produce empty values and are handled by the caller.
func (e *Extractor) Extract(body []byte, baseURL string) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	article := &domain.Article{
		Title:        extractTitle(doc),
		Description:  metaContent(doc, `meta[name="description"]`),
		ThumbnailURL: extractThumbnail(doc),
		PublishedAt:  metaContent(doc, `meta[property="article:published_time"]`),
		Author:       extractAuthor(doc),
	}

	container := doc.Find(bodySelector).First()
	article.Content = extractBodyText(container)
	article.ImageURLs = extractImageURLs(container, baseURL)

	return article, nil
}

// extractTitle pulls the article title out of the tracking-configuration
// script block. Titles there carry breadcrumb prefixes separated by ">";
// only the final segment is the headline.
func extractTitle(doc *goquery.Document) string {
	var title string

	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(text, trackingScriptNeedle) {
			return true
		}
		if m := titleRe.FindStringSubmatch(text); m != nil {
			parts := strings.Split(m[1], ">")
			title = strings.TrimSpace(parts[len(parts)-1])
		}
		return false
	})

	return title
}

// metaContent returns the content attribute of the first element matching
// the selector, or empty string.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractThumbnail prefers og:image, then the image_src link relation.
func extractThumbnail(doc *goquery.Document) string {
	if thumb := metaContent(doc, `meta[property="og:image"]`); thumb != "" {
		return thumb
	}
	if href, exists := doc.Find(`link[rel="image_src"]`).First().Attr("href"); exists {
		return strings.TrimSpace(href)
	}
	return ""
}

// extractAuthor reads the primary author meta tag, falling back to the
// publisher-specific dable:author tag.
func extractAuthor(doc *goquery.Document) string {
	if author := metaContent(doc, `meta[name="author"]`); author != "" {
		return author
	}
	return metaContent(doc, `meta[property="dable:author"]`)
}

// extractBodyText converts the body container to plain text. Image tags are
// replaced with line-isolated markers before markup stripping so marker
// positions reflect original reading order. Markers are never deduplicated.
func extractBodyText(container *goquery.Selection) string {
	if container.Length() == 0 {
		return ""
	}

	html, err := container.Html()
	if err != nil {
		return ""
	}

	html = imgTagRe.ReplaceAllString(html, "\n"+ImageMarker+"\n")
	html = scriptRe.ReplaceAllString(html, "")
	html = styleRe.ReplaceAllString(html, "")
	html = videoRe.ReplaceAllString(html, "")
	html = iframeRe.ReplaceAllString(html, "")
	html = lineBreak.ReplaceAllString(html, "\n")
	text := anyTagRe.ReplaceAllString(html, "")

	for _, phrase := range boilerText {
		text = strings.ReplaceAll(text, phrase, "")
	}

	return normalizeLines(text)
}

// extractImageURLs collects the src of every image inside the body
// container, absolutized and deduplicated preserving first-seen order.
func extractImageURLs(container *goquery.Selection, baseURL string) []string {
	if container.Length() == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var urls []string

	container.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, exists := sel.Attr("src")
		if !exists || src == "" {
			return
		}

		abs := absoluteURL(src, baseURL)
		if !seen[abs] {
			seen[abs] = true
			urls = append(urls, abs)
		}
	})

	return urls
}

// absoluteURL normalizes an image src to an absolute URL. Protocol-relative
// URLs get an explicit https: prefix; other relative paths resolve against
// the page URL.
func absoluteURL(src, baseURL string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "https:" + src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "https:" + src
	}
	return base.ResolveReference(ref).String()
}

// normalizeLines trims every line, drops blank lines, and rejoins with
// single newlines.
func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
