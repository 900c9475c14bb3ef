package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is the canonical record for a distinct source URL. Articles are
// created once per URL, never mutated and never deleted.
type Article struct {
	ID        uuid.UUID `db:"id"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}

// OGPMetadata holds Open-Graph style metadata scraped from the source page.
type OGPMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
}

// Explanation is the AI-generated simplified account of one Article.
// At most one explanation exists per article; rows are immutable.
type Explanation struct {
	ID        uuid.UUID    `db:"id"`
	ArticleID uuid.UUID    `db:"article_id"`
	UserID    uuid.UUID    `db:"user_id"`
	Summary   string       `db:"summary"`
	Title     string       `db:"title"`
	OGP       *OGPMetadata `db:"ogp"`
	CreatedAt time.Time    `db:"created_at"`
}

// ImportantPoint is one ranked, explained takeaway from an Explanation.
// Importance is a 1-5 star rating; display order is insertion order.
type ImportantPoint struct {
	Importance  int    `json:"importance"`
	Content     string `json:"content"`
	Explanation string `json:"explanation"`
	Analogy     string `json:"analogy"`
}

// SkipSection points at an article section judged safe to skip.
type SkipSection struct {
	Number int    `json:"number"`
	Reason string `json:"reason"`
}

// GeneratedExplanation is the raw structured output of the explanation
// generator, before validation and persistence.
type GeneratedExplanation struct {
	Summary         string           `json:"summary"`
	ImportantPoints []ImportantPoint `json:"importantPoints"`
	SkipSections    []SkipSection    `json:"skipSections"`
}

// ExplanationRecord bundles everything a client needs to render one
// explanation: the article URL, the creation timestamp, the summary and its
// child rows. Both the resolution path and the history path return this shape.
type ExplanationRecord struct {
	URL             string           `json:"url"`
	Timestamp       time.Time        `json:"timestamp"`
	Summary         string           `json:"summary"`
	Title           string           `json:"title,omitempty"`
	OGP             *OGPMetadata     `json:"ogp,omitempty"`
	ImportantPoints []ImportantPoint `json:"importantPoints"`
	SkipSections    []SkipSection    `json:"skipSections"`
}

// FetchedContent is the readable text extracted from a source page.
type FetchedContent struct {
	Title   string
	Content string
}

// Profile is the locally mirrored view of an identity-provider user,
// referenced for authorship attribution and the admin capability check.
type Profile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"displayName"`
	IsAdmin     bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
