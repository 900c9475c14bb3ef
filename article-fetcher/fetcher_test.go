package articlefetcher

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"news-explainer/config"
	"news-explainer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testFetcher(maxContent int) *Fetcher {
	return NewFetcher(&config.FetcherConfig{
		Timeout:          5 * time.Second,
		MaxContentLength: maxContent,
		UserAgent:        "news-explainer-test/1.0",
	}, testLogger())
}

const articleHTML = `<html>
<head>
	<title>ビットコインETF承認 | Crypto Times</title>
	<meta property="og:title" content="ビットコインETF承認">
	<meta property="og:description" content="米SECがビットコインETFを承認した。">
	<meta property="og:image" content="https://example.com/etf.png">
	<meta property="og:site_name" content="Crypto Times">
</head>
<body>
	<nav>Top / News</nav>
	<article>
		<h1>ビットコインETF承認</h1>
		<p>米証券取引委員会は現物ビットコインETFを承認した。</p>
		<p>機関投資家の資金流入が見込まれている。</p>
	</article>
	<script>analytics()</script>
</body>
</html>`

func TestFetcher_FetchContent(t *testing.T) {
	t.Run("should extract title and readable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "news-explainer-test/1.0", r.Header.Get("User-Agent"))
			w.Write([]byte(articleHTML))
		}))
		defer server.Close()

		content, err := testFetcher(15000).FetchContent(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ビットコインETF承認 | Crypto Times", content.Title)
		assert.Contains(t, content.Content, "現物ビットコインETFを承認した")
		assert.NotContains(t, content.Content, "analytics")
	})

	t.Run("should truncate content to the configured maximum", func(t *testing.T) {
		long := "<body><p>" + strings.Repeat("a", 500) + "</p></body>"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(long))
		}))
		defer server.Close()

		content, err := testFetcher(100).FetchContent(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, content.Content, 100)
	})

	t.Run("should not split a multi-byte rune when truncating", func(t *testing.T) {
		long := "<body><p>" + strings.Repeat("経", 500) + "</p></body>"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(long))
		}))
		defer server.Close()

		content, err := testFetcher(100).FetchContent(context.Background(), server.URL)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(content.Content), 100)
		assert.True(t, utf8.ValidString(content.Content))
		assert.Equal(t, "経", string([]rune(content.Content)[0]))
	})

	t.Run("should fail on non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		_, err := testFetcher(15000).FetchContent(context.Background(), server.URL)
		assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	})

	t.Run("should fail when the server is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := testFetcher(15000).FetchContent(context.Background(), server.URL)
		assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	})
}

func TestFetcher_FetchMetadata(t *testing.T) {
	t.Run("should extract OGP fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(articleHTML))
		}))
		defer server.Close()

		metadata, err := testFetcher(15000).FetchMetadata(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ビットコインETF承認 | Crypto Times", metadata.Title)
		assert.Equal(t, "米SECがビットコインETFを承認した。", metadata.Description)
		assert.Equal(t, "https://example.com/etf.png", metadata.Image)
		assert.Equal(t, "Crypto Times", metadata.SiteName)
	})

	t.Run("should return empty fields when tags are absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body><p>bare page</p></body></html>`))
		}))
		defer server.Close()

		metadata, err := testFetcher(15000).FetchMetadata(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Empty(t, metadata.Title)
		assert.Empty(t, metadata.Description)
		assert.Empty(t, metadata.Image)
		assert.Empty(t, metadata.SiteName)
	})

	t.Run("should fail on fetch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := testFetcher(15000).FetchMetadata(context.Background(), server.URL)
		assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	})
}
