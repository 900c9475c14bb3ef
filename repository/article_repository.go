package repository

import (
	"context"
	"fmt"

	"news-explainer/domain"
	"news-explainer/driver"

	"github.com/jackc/pgx/v5/pgxpool"
)

type articleRepository struct {
	db *pgxpool.Pool
}

// NewArticleRepository creates an ArticleRepository backed by postgres.
func NewArticleRepository(db *pgxpool.Pool) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	article, err := driver.GetArticleByURL(ctx, r.db, url)
	if err != nil {
		return nil, fmt.Errorf("failed to find article by URL: %w", err)
	}
	return article, nil
}

func (r *articleRepository) Ensure(ctx context.Context, url string) (*domain.Article, error) {
	article, err := driver.EnsureArticle(ctx, r.db, url)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure article: %w", err)
	}
	return article, nil
}
