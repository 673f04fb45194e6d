package search_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsradar/internal/logger"
	"github.com/jonesrussell/newsradar/internal/search"
)

// newListingServer serves a search-result listing containing the given hrefs.
func newListingServer(t *testing.T, hrefs []string) *httptest.Server {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<html><body><ul class="article">`)
	for _, href := range hrefs {
		fmt.Fprintf(&sb, `<li><a href="%s">result</a></li>`, href)
	}
	sb.WriteString(`</ul></body></html>`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, sb.String())
	}))
	t.Cleanup(server.Close)

	return server
}

func newCollector(t *testing.T, endpoint string) *search.Collector {
	t.Helper()

	return search.NewCollector(search.Config{
		Endpoint:  endpoint,
		UserAgent: "Mozilla/5.0 (test)",
	}, logger.NewNoop())
}

func TestSearch_FiltersByOriginAndShape(t *testing.T) {
	t.Parallel()

	server := newListingServer(t, []string{
		"/article/123",
		"https://other.com/article/123",
		"https://www.hankyung.com/article/abc",
		"https://www.hankyung.com/article/456",
	})

	links, err := newCollector(t, server.URL).Search(context.Background(), "삼성전자")
	require.NoError(t, err)

	require.Equal(t, []string{
		"https://www.hankyung.com/article/123",
		"https://www.hankyung.com/article/456",
	}, links)
}

func TestSearch_DeduplicatesExactURLs(t *testing.T) {
	t.Parallel()

	server := newListingServer(t, []string{
		"/article/111",
		"https://www.hankyung.com/article/111",
		"/article/111",
		"/article/222",
	})

	links, err := newCollector(t, server.URL).Search(context.Background(), "현대차")
	require.NoError(t, err)

	require.Equal(t, []string{
		"https://www.hankyung.com/article/111",
		"https://www.hankyung.com/article/222",
	}, links)
}

func TestSearch_CapsAtTenAcceptedURLs(t *testing.T) {
	t.Parallel()

	hrefs := make([]string, 0, 16)
	// A rejected href up front must not count toward the cap.
	hrefs = append(hrefs, "https://other.com/article/999")
	for i := 0; i < 15; i++ {
		hrefs = append(hrefs, fmt.Sprintf("/article/%d", 1000+i))
	}

	server := newListingServer(t, hrefs)

	links, err := newCollector(t, server.URL).Search(context.Background(), "카카오")
	require.NoError(t, err)

	require.Len(t, links, 10)
	require.Equal(t, "https://www.hankyung.com/article/1000", links[0])
	require.Equal(t, "https://www.hankyung.com/article/1009", links[9])
}

func TestSearch_EmptyListingIsValid(t *testing.T) {
	t.Parallel()

	server := newListingServer(t, nil)

	links, err := newCollector(t, server.URL).Search(context.Background(), "무명회사")
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestSearch_ServerErrorPropagates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	_, err := newCollector(t, server.URL).Search(context.Background(), "삼성전자")
	require.Error(t, err)
}

func TestSearch_SendsConfiguredUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	t.Cleanup(server.Close)

	_, err := newCollector(t, server.URL).Search(context.Background(), "삼성전자")
	require.NoError(t, err)
	require.Equal(t, "Mozilla/5.0 (test)", gotUA)
}

func TestSearch_DefaultsToBrowserUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	t.Cleanup(server.Close)

	// No UserAgent configured: the browser default must still be sent.
	collector := search.NewCollector(search.Config{Endpoint: server.URL}, logger.NewNoop())

	_, err := collector.Search(context.Background(), "삼성전자")
	require.NoError(t, err)
	require.Equal(t, search.DefaultUserAgent, gotUA)
	require.True(t, strings.HasPrefix(gotUA, "Mozilla/"))
}

func TestSearch_HonorsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	server := newListingServer(t, []string{
		"/article/123",
		"https://news.example.com/article/456",
		"https://www.hankyung.com/article/789",
	})

	collector := search.NewCollector(search.Config{
		Endpoint: server.URL,
		Origin:   "https://news.example.com",
	}, logger.NewNoop())

	links, err := collector.Search(context.Background(), "삼성전자")
	require.NoError(t, err)

	require.Equal(t, []string{
		"https://news.example.com/article/123",
		"https://news.example.com/article/456",
	}, links)
}
