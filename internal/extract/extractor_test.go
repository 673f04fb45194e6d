package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsradar/internal/extract"
)

const testPageURL = "https://www.hankyung.com/article/2025121200701"

// fullArticleHTML is a complete article page: tracking-script title with a
// breadcrumb prefix, meta description, body with an image, and metadata.
const fullArticleHTML = `<!DOCTYPE html>
<html>
<head>
  <meta name="description" content="삼성전자가 신고가를 경신했다.">
  <meta property="og:image" content="https://img.hankyung.com/photo/thumb.jpg">
  <meta property="article:published_time" content="2025-12-12 10:30">
  <meta name="author" content="김기자">
  <script>
    window.GATrackingData = {
      title: ` + "`경제 > 증권 > 삼성전자, 사상 최고가 경신`" + `,
      page: "article"
    };
  </script>
</head>
<body>
  <div id="articletxt">
    <p>삼성전자가 12일 장중 사상 최고가를 경신했다.</p>
    <img src="//img.hankyung.com/photo/body1.jpg">
    <p>증권가는 반도체 업황 회복을 이유로 꼽았다.</p>
  </div>
</body>
</html>`

func TestExtract_FullArticle(t *testing.T) {
	t.Parallel()

	article, err := extract.NewExtractor().Extract([]byte(fullArticleHTML), testPageURL)
	require.NoError(t, err)

	require.Equal(t, "삼성전자, 사상 최고가 경신", article.Title)
	require.Equal(t, "삼성전자가 신고가를 경신했다.", article.Description)
	require.Equal(t, "https://img.hankyung.com/photo/thumb.jpg", article.ThumbnailURL)
	require.Equal(t, "2025-12-12 10:30", article.PublishedAt)
	require.Equal(t, "김기자", article.Author)
	require.Equal(t, []string{"https://img.hankyung.com/photo/body1.jpg"}, article.ImageURLs)
	require.Contains(t, article.Content, "사상 최고가를 경신했다.")
	require.Contains(t, article.Content, extract.ImageMarker)
}

func TestExtract_MarkerPlacement(t *testing.T) {
	t.Parallel()

	html := `<html><body><div id="articletxt"><p>A</p><img src="x.jpg"><p>B</p></div></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Equal(t, "A\n[IMG]\nB", article.Content)
	require.Equal(t, []string{"https://www.hankyung.com/article/x.jpg"}, article.ImageURLs)
}

func TestExtract_DuplicateImageURLs(t *testing.T) {
	t.Parallel()

	html := `<html><body><div id="articletxt">
	  <p>intro</p>
	  <img src="https://img.hankyung.com/a.jpg">
	  <p>middle</p>
	  <img src="https://img.hankyung.com/a.jpg">
	  <p>outro</p>
	</div></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	// Collected URLs are deduplicated; markers are not.
	require.Equal(t, []string{"https://img.hankyung.com/a.jpg"}, article.ImageURLs)
	require.Equal(t, 2, strings.Count(article.Content, extract.ImageMarker))
}

func TestExtract_StripsEmbeddedBlocks(t *testing.T) {
	t.Parallel()

	html := `<html><body><div id="articletxt">
	  <p>visible text</p>
	  <script>var hidden = "should not appear";</script>
	  <style>.ad { display: none; }</style>
	  <video controls><source src="clip.mp4"></video>
	  <iframe src="https://ads.example.com/frame"></iframe>
	  <p>first line<br>second line</p>
	</div></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Contains(t, article.Content, "visible text")
	require.NotContains(t, article.Content, "should not appear")
	require.NotContains(t, article.Content, "display: none")
	require.NotContains(t, article.Content, "clip.mp4")
	require.NotContains(t, article.Content, "ads.example.com")
	require.Contains(t, article.Content, "first line\nsecond line")
}

func TestExtract_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	html := `<html><body><div id="articletxt">
	  <p>기사 본문이다.</p>
	  <span>이 기사를 공유합니다</span>
	  <span>페이스북</span>
	  <span>카카오톡</span>
	  <span>무료상담</span>
	</div></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Contains(t, article.Content, "기사 본문이다.")
	require.NotContains(t, article.Content, "이 기사를 공유합니다")
	require.NotContains(t, article.Content, "페이스북")
	require.NotContains(t, article.Content, "카카오톡")
	require.NotContains(t, article.Content, "무료상담")
}

func TestExtract_MissingFieldsDegradeToEmpty(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body><p>no article container here</p></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Empty(t, article.Title)
	require.Empty(t, article.Description)
	require.Empty(t, article.Content)
	require.Empty(t, article.ImageURLs)
	require.Empty(t, article.ThumbnailURL)
	require.Empty(t, article.PublishedAt)
	require.Empty(t, article.Author)
}

func TestExtract_ThumbnailFallsBackToImageSrcLink(t *testing.T) {
	t.Parallel()

	html := `<html><head>
	  <link rel="image_src" href="https://img.hankyung.com/fallback.jpg">
	</head><body></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Equal(t, "https://img.hankyung.com/fallback.jpg", article.ThumbnailURL)
}

func TestExtract_AuthorFallsBackToDableTag(t *testing.T) {
	t.Parallel()

	html := `<html><head>
	  <meta property="dable:author" content="박기자">
	</head><body></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Equal(t, "박기자", article.Author)
}

func TestExtract_TitleWithoutBreadcrumb(t *testing.T) {
	t.Parallel()

	html := `<html><head><script>
	  window.GATrackingData = { title: ` + "`단독 기사 제목`" + ` };
	</script></head><body></body></html>`

	article, err := extract.NewExtractor().Extract([]byte(html), testPageURL)
	require.NoError(t, err)

	require.Equal(t, "단독 기사 제목", article.Title)
}
