package html_parser

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Readability sometimes extracts only a title or byline; anything shorter than
// this is treated as a failed extraction and falls back to tag stripping.
const minReadableLength = 200

// ExtractArticleText converts raw article HTML into plain text paragraphs.
// Non-content elements (scripts, navigation, ads, embeds) are removed before
// extraction so the returned string contains only readable sentences. The
// model prompt is built from this output, so it must never contain markup.
func ExtractArticleText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Short-circuit if the payload is already plain text.
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	if cleaned := removeNonContent(trimmed); cleaned != "" {
		trimmed = cleaned
	}

	// Prefer go-readability's main-content detection on the cleaned document.
	article, err := readability.FromReader(strings.NewReader(trimmed), nil)
	if err == nil {
		var textBuf strings.Builder
		if err := article.RenderText(&textBuf); err == nil {
			text := strings.TrimSpace(textBuf.String())
			if len(text) >= minReadableLength {
				return normalizeWhitespace(text)
			}
		}
	}

	return extractParagraphs(trimmed)
}

// removeNonContent strips elements that never carry article text: chrome,
// embedded media, social widgets, comment sections and advertisement blocks.
func removeNonContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, iframe, embed, object, video, audio, canvas").Remove()
	doc.Find("[class*='advertisement'], [class*='social'], [class*='share'], [id*='social'], [id*='share']").Remove()
	doc.Find("[class*='comment'], [id*='comment']").Remove()
	doc.Find("meta, link").Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return ""
	}

	return cleaned
}

// extractParagraphs extracts text from HTML while preserving paragraph
// structure. Headers, paragraphs and list items are collected in document
// order; paragraphs are separated by double newlines.
func extractParagraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeWhitespace(StripTags(html))
	}

	var paragraphs []string

	doc.Find("h1, h2, h3, h4, h5, h6, p, li, pre").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		doc.Find("article, main, section, div").Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 10 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	if len(paragraphs) == 0 {
		return StripTags(html)
	}

	return strings.Join(paragraphs, "\n\n")
}

// StripTags removes HTML tags from a string and returns plain text.
func StripTags(raw string) string {
	p := bluemonday.StrictPolicy()
	return normalizeWhitespace(p.Sanitize(raw))
}

// ExtractTitle extracts the article title from HTML content.
// Priority order: <title> tag, og:title meta tag, first <h1> tag.
func ExtractTitle(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	if ogTitle, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if trimmed := strings.TrimSpace(ogTitle); trimmed != "" {
			return trimmed
		}
	}

	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
