// ABOUTME: This file defines the service interfaces the HTTP handlers depend on.
package handler

import (
	"context"

	"news-explainer/domain"

	"github.com/google/uuid"
)

// Resolver resolves URLs to explanation records.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string, actingUserID uuid.UUID) (*domain.ExplanationRecord, error)
	Explain(ctx context.Context, rawURL string) (*domain.GeneratedExplanation, error)
}

// HistoryLister reads recent explanation history.
type HistoryLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.ExplanationRecord, error)
	ListRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ExplanationRecord, error)
	ListCached(ctx context.Context) ([]domain.ExplanationRecord, error)
}

// MetadataFetcher extracts Open-Graph metadata from a page.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (*domain.OGPMetadata, error)
}

// ProfileReader reads user profiles for the admin surface.
type ProfileReader interface {
	List(ctx context.Context) ([]*domain.Profile, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}
