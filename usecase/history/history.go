// ABOUTME: This file implements the recent-explanation history listings.
package history

import (
	"context"
	"log/slog"

	"news-explainer/cache"
	"news-explainer/domain"
	"news-explainer/repository"

	"github.com/google/uuid"
)

// DefaultLimit bounds a listing when the caller does not specify one.
const DefaultLimit = 10

// MaxLimit caps the listing size regardless of what the caller asks for.
const MaxLimit = 50

// HistoryService reads recent explanation history from storage and the mirror.
type HistoryService struct {
	explanations repository.ExplanationRepository
	recent       cache.RecentCache
	logger       *slog.Logger
}

// NewHistoryService wires the history listings.
func NewHistoryService(explanations repository.ExplanationRepository, recent cache.RecentCache, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		explanations: explanations,
		recent:       recent,
		logger:       logger,
	}
}

// ListRecent returns the newest explanations across all users.
// An empty history yields an empty slice, not an error.
func (s *HistoryService) ListRecent(ctx context.Context, limit int) ([]domain.ExplanationRecord, error) {
	return s.list(ctx, nil, limit)
}

// ListRecentForUser returns the newest explanations created by one user.
func (s *HistoryService) ListRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ExplanationRecord, error) {
	return s.list(ctx, &userID, limit)
}

// ListCached returns the mirrored records without touching postgres. The
// mirror may lag storage; callers wanting authoritative history use ListRecent.
func (s *HistoryService) ListCached(ctx context.Context) ([]domain.ExplanationRecord, error) {
	records, err := s.recent.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read cached history", "error", err)
		return nil, err
	}
	return records, nil
}

func (s *HistoryService) list(ctx context.Context, userID *uuid.UUID, limit int) ([]domain.ExplanationRecord, error) {
	limit = clampLimit(limit)

	rows, err := s.explanations.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ExplanationRecord, 0, len(rows))

	for _, row := range rows {
		points, err := s.explanations.Points(ctx, row.Explanation.ID)
		if err != nil {
			return nil, err
		}

		sections, err := s.explanations.Sections(ctx, row.Explanation.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, domain.ExplanationRecord{
			URL:             row.URL,
			Timestamp:       row.Explanation.CreatedAt,
			Summary:         row.Explanation.Summary,
			Title:           row.Explanation.Title,
			OGP:             row.Explanation.OGP,
			ImportantPoints: points,
			SkipSections:    sections,
		})
	}

	return records, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
