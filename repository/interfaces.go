// ABOUTME: This file defines the repository interfaces between use cases and storage.
// ABOUTME: Implementations wrap the driver package so use cases stay testable with stubs.
package repository

import (
	"context"

	"news-explainer/domain"
	"news-explainer/driver"

	"github.com/google/uuid"
)

// ArticleRepository manages the canonical URL to article mapping.
type ArticleRepository interface {
	// FindByURL returns the article for a URL, or nil when none exists.
	FindByURL(ctx context.Context, url string) (*domain.Article, error)
	// Ensure returns the article for a URL, creating it when absent.
	// Safe under concurrent callers for the same URL.
	Ensure(ctx context.Context, url string) (*domain.Article, error)
}

// ExplanationRepository manages explanations and their child rows.
type ExplanationRepository interface {
	// FindByArticleID returns the explanation for an article, or nil when none exists.
	FindByArticleID(ctx context.Context, articleID uuid.UUID) (*domain.Explanation, error)
	// Create persists the explanation with its points and sections atomically.
	Create(ctx context.Context, explanation *domain.Explanation, points []domain.ImportantPoint, sections []domain.SkipSection) (*domain.Explanation, error)
	// Points returns the important points of an explanation in stored order.
	Points(ctx context.Context, explanationID uuid.UUID) ([]domain.ImportantPoint, error)
	// Sections returns the skip sections of an explanation in stored order.
	Sections(ctx context.Context, explanationID uuid.UUID) ([]domain.SkipSection, error)
	// ListRecent returns up to limit explanations newest first, joined with
	// their article URLs. A nil userID lists globally.
	ListRecent(ctx context.Context, userID *uuid.UUID, limit int) ([]driver.RecentExplanationRow, error)
}

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	// FindByID returns the profile for a user, or nil when none exists.
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// List returns all profiles, newest first.
	List(ctx context.Context) ([]*domain.Profile, error)
	// IsAdmin reports whether the user has an admin profile.
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ExplanationGenerator produces a structured explanation from fetched content.
type ExplanationGenerator interface {
	Generate(ctx context.Context, content *domain.FetchedContent) (*domain.GeneratedExplanation, error)
}

// ArticleFetcher retrieves a page's readable content and its metadata.
type ArticleFetcher interface {
	FetchContent(ctx context.Context, url string) (*domain.FetchedContent, error)
	FetchMetadata(ctx context.Context, url string) (*domain.OGPMetadata, error)
}
