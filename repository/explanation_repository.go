package repository

import (
	"context"
	"fmt"

	"news-explainer/domain"
	"news-explainer/driver"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type explanationRepository struct {
	db *pgxpool.Pool
}

// NewExplanationRepository creates an ExplanationRepository backed by postgres.
func NewExplanationRepository(db *pgxpool.Pool) ExplanationRepository {
	return &explanationRepository{db: db}
}

func (r *explanationRepository) FindByArticleID(ctx context.Context, articleID uuid.UUID) (*domain.Explanation, error) {
	explanation, err := driver.GetExplanationByArticleID(ctx, r.db, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find explanation: %w", err)
	}
	return explanation, nil
}

func (r *explanationRepository) Create(ctx context.Context, explanation *domain.Explanation, points []domain.ImportantPoint, sections []domain.SkipSection) (*domain.Explanation, error) {
	created, err := driver.CreateExplanation(ctx, r.db, explanation, points, sections)
	if err != nil {
		return nil, fmt.Errorf("failed to create explanation: %w", err)
	}
	return created, nil
}

func (r *explanationRepository) Points(ctx context.Context, explanationID uuid.UUID) ([]domain.ImportantPoint, error) {
	points, err := driver.GetImportantPoints(ctx, r.db, explanationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load important points: %w", err)
	}
	return points, nil
}

func (r *explanationRepository) Sections(ctx context.Context, explanationID uuid.UUID) ([]domain.SkipSection, error) {
	sections, err := driver.GetSkipSections(ctx, r.db, explanationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skip sections: %w", err)
	}
	return sections, nil
}

func (r *explanationRepository) ListRecent(ctx context.Context, userID *uuid.UUID, limit int) ([]driver.RecentExplanationRow, error) {
	rows, err := driver.ListRecentExplanations(ctx, r.db, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent explanations: %w", err)
	}
	return rows, nil
}
