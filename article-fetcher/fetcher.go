package articlefetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"news-explainer/config"
	"news-explainer/domain"
	"news-explainer/utils/html_parser"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves source pages and extracts readable content and
// Open-Graph metadata. It is stateless; every call is a pure function of the
// network response.
type Fetcher struct {
	client *http.Client
	cfg    *config.FetcherConfig
	logger *slog.Logger
}

// NewFetcher creates a fetcher with the configured timeout.
func NewFetcher(cfg *config.FetcherConfig, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// FetchContent retrieves the page and extracts a best-effort title and the
// readable body text, truncated to the configured maximum so the generator
// prompt stays bounded.
func (f *Fetcher) FetchContent(ctx context.Context, url string) (*domain.FetchedContent, error) {
	f.logger.InfoContext(ctx, "fetching article content", "url", url)

	html, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	title := html_parser.ExtractTitle(html)
	content := html_parser.ExtractArticleText(html)

	if content == "" {
		f.logger.WarnContext(ctx, "no readable content extracted", "url", url)
		return nil, fmt.Errorf("%w: no readable content at %s", domain.ErrFetchFailed, url)
	}

	content = truncateOnRuneBoundary(content, f.cfg.MaxContentLength)

	f.logger.InfoContext(ctx, "article content fetched",
		"url", url,
		"title", title,
		"content_length", len(content))

	return &domain.FetchedContent{Title: title, Content: content}, nil
}

// FetchMetadata retrieves the page and extracts Open-Graph style metadata.
// Missing tags yield empty fields, not errors.
func (f *Fetcher) FetchMetadata(ctx context.Context, url string) (*domain.OGPMetadata, error) {
	f.logger.InfoContext(ctx, "fetching article metadata", "url", url)

	html, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	metadata := &domain.OGPMetadata{
		Title:       firstNonEmpty(doc.Find("title").First().Text(), metaContent(doc, "meta[property='og:title']")),
		Description: firstNonEmpty(metaContent(doc, "meta[property='og:description']"), metaContent(doc, "meta[name='description']")),
		Image:       metaContent(doc, "meta[property='og:image']"),
		SiteName:    metaContent(doc, "meta[property='og:site_name']"),
	}

	return metadata, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to fetch page", "error", err, "url", url)
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.ErrorContext(ctx, "page returned non-success status", "status", resp.Status, "url", url)
		return "", fmt.Errorf("%w: status %s for %s", domain.ErrFetchFailed, resp.Status, url)
	}

	var builder strings.Builder
	if _, err := copyBounded(&builder, resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	return builder.String(), nil
}

// truncateOnRuneBoundary cuts s to at most max bytes without splitting a
// multi-byte rune, so the prompt tail stays valid UTF-8.
func truncateOnRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
