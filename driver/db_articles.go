package driver

import (
	"context"
	"errors"
	"fmt"

	"news-explainer/domain"
	logger "news-explainer/utils/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetArticleByURL looks up an article by its exact URL.
// Returns nil without error when no article exists.
func GetArticleByURL(ctx context.Context, db *pgxpool.Pool, url string) (*domain.Article, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, url, created_at
		FROM articles
		WHERE url = $1
	`

	var article domain.Article

	err := db.QueryRow(ctx, query, url).Scan(&article.ID, &article.URL, &article.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to look up article by URL", "error", err, "url", url)
		return nil, err
	}

	return &article, nil
}

// EnsureArticle creates an article row for the URL if none exists and returns
// the canonical row. The UNIQUE constraint on articles.url makes concurrent
// creation safe: a loser of the race sees no inserted row and re-reads the
// winner's.
func EnsureArticle(ctx context.Context, db *pgxpool.Pool, url string) (*domain.Article, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO articles (id, url)
		VALUES ($1, $2)
		ON CONFLICT (url) DO NOTHING
		RETURNING id, url, created_at
	`

	var article domain.Article

	err := db.QueryRow(ctx, query, uuid.New(), url).Scan(&article.ID, &article.URL, &article.CreatedAt)
	if err == nil {
		logger.Logger.InfoContext(ctx, "Article created", "article_id", article.ID, "url", url)
		return &article, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Logger.ErrorContext(ctx, "Failed to create article", "error", err, "url", url)
		return nil, err
	}

	// Conflict: someone else created it first. Retry the lookup.
	existing, err := GetArticleByURL(ctx, db, url)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("article for %s vanished after insert conflict", url)
	}

	return existing, nil
}
