package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	minImportance = 1
	maxImportance = 5
)

// NormalizeURL validates that raw is a well-formed absolute http(s) URL and
// returns its canonical string form. The canonical form is the dedup key for
// articles, so trailing whitespace is stripped but the URL is otherwise kept
// as submitted.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return parsed.String(), nil
}

// Validate checks the generator output against the persistence contract.
// The generator is an untrusted boundary: malformed output fails closed here
// rather than producing partial or garbage rows.
func (g *GeneratedExplanation) Validate() error {
	if strings.TrimSpace(g.Summary) == "" {
		return fmt.Errorf("%w: empty summary", ErrMalformedExplanation)
	}

	if len(g.ImportantPoints) == 0 {
		return fmt.Errorf("%w: no important points", ErrMalformedExplanation)
	}

	for i, point := range g.ImportantPoints {
		if point.Importance < minImportance || point.Importance > maxImportance {
			return fmt.Errorf("%w: point %d importance %d out of range", ErrMalformedExplanation, i, point.Importance)
		}
		if strings.TrimSpace(point.Content) == "" {
			return fmt.Errorf("%w: point %d has empty content", ErrMalformedExplanation, i)
		}
	}

	for i, section := range g.SkipSections {
		if section.Number <= 0 {
			return fmt.Errorf("%w: skip section %d has non-positive number", ErrMalformedExplanation, i)
		}
		if strings.TrimSpace(section.Reason) == "" {
			return fmt.Errorf("%w: skip section %d has empty reason", ErrMalformedExplanation, i)
		}
	}

	return nil
}
