package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"news-explainer/domain"
	logger "news-explainer/utils/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetExplanationByArticleID returns the explanation for an article, or nil
// when none exists. At most one explanation is expected per article.
func GetExplanationByArticleID(ctx context.Context, db *pgxpool.Pool, articleID uuid.UUID) (*domain.Explanation, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, article_id, user_id, summary, COALESCE(title, ''), ogp, created_at
		FROM explanations
		WHERE article_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	var (
		explanation domain.Explanation
		ogpRaw      []byte
	)

	err := db.QueryRow(ctx, query, articleID).Scan(
		&explanation.ID,
		&explanation.ArticleID,
		&explanation.UserID,
		&explanation.Summary,
		&explanation.Title,
		&ogpRaw,
		&explanation.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to look up explanation", "error", err, "article_id", articleID)
		return nil, err
	}

	if ogp, err := decodeOGP(ogpRaw); err != nil {
		logger.Logger.WarnContext(ctx, "Failed to decode stored OGP metadata", "error", err, "explanation_id", explanation.ID)
	} else {
		explanation.OGP = ogp
	}

	return &explanation, nil
}

// CreateExplanation inserts the explanation together with its important points
// and skip sections in a single transaction. Either everything is persisted or
// nothing is: a failed child insert never leaves a childless explanation row.
func CreateExplanation(ctx context.Context, db *pgxpool.Pool, explanation *domain.Explanation, points []domain.ImportantPoint, sections []domain.SkipSection) (*domain.Explanation, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	ogpRaw, err := encodeOGP(explanation.OGP)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OGP metadata: %w", err)
	}

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		}
	}()

	insertExplanation := `
		INSERT INTO explanations (id, article_id, user_id, summary, title, ogp)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at
	`

	created := *explanation
	created.ID = uuid.New()

	err = tx.QueryRow(ctx, insertExplanation,
		created.ID,
		created.ArticleID,
		created.UserID,
		created.Summary,
		created.Title,
		ogpRaw,
	).Scan(&created.CreatedAt)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to insert explanation", "error", err, "article_id", created.ArticleID)
		return nil, err
	}

	// Child rows rely on bigserial ids for stable insertion order.
	insertPoint := `
		INSERT INTO important_points (explanation_id, importance, content, explanation, analogy)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, point := range points {
		if _, err := tx.Exec(ctx, insertPoint, created.ID, point.Importance, point.Content, point.Explanation, point.Analogy); err != nil {
			logger.Logger.ErrorContext(ctx, "Failed to insert important point", "error", err, "explanation_id", created.ID)
			return nil, err
		}
	}

	insertSection := `
		INSERT INTO skip_sections (explanation_id, number, reason)
		VALUES ($1, $2, $3)
	`

	for _, section := range sections {
		if _, err := tx.Exec(ctx, insertSection, created.ID, section.Number, section.Reason); err != nil {
			logger.Logger.ErrorContext(ctx, "Failed to insert skip section", "error", err, "explanation_id", created.ID)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return nil, err
	}

	logger.Logger.InfoContext(ctx, "Explanation created",
		"explanation_id", created.ID,
		"article_id", created.ArticleID,
		"points", len(points),
		"sections", len(sections))

	return &created, nil
}

// GetImportantPoints returns the points of an explanation in insertion order.
func GetImportantPoints(ctx context.Context, db *pgxpool.Pool, explanationID uuid.UUID) ([]domain.ImportantPoint, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT importance, content, explanation, analogy
		FROM important_points
		WHERE explanation_id = $1
		ORDER BY id
	`

	rows, err := db.Query(ctx, query, explanationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []domain.ImportantPoint{}

	for rows.Next() {
		var point domain.ImportantPoint
		if err := rows.Scan(&point.Importance, &point.Content, &point.Explanation, &point.Analogy); err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, rows.Err()
}

// GetSkipSections returns the skip sections of an explanation in insertion order.
func GetSkipSections(ctx context.Context, db *pgxpool.Pool, explanationID uuid.UUID) ([]domain.SkipSection, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT number, reason
		FROM skip_sections
		WHERE explanation_id = $1
		ORDER BY id
	`

	rows, err := db.Query(ctx, query, explanationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []domain.SkipSection{}

	for rows.Next() {
		var section domain.SkipSection
		if err := rows.Scan(&section.Number, &section.Reason); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// RecentExplanationRow is one row of the recent-history join.
type RecentExplanationRow struct {
	Explanation domain.Explanation
	URL         string
}

// ListRecentExplanations returns the newest explanations joined with their
// article URLs. When userID is non-nil the listing is scoped to that user.
func ListRecentExplanations(ctx context.Context, db *pgxpool.Pool, userID *uuid.UUID, limit int) ([]RecentExplanationRow, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT e.id, e.article_id, e.user_id, e.summary, COALESCE(e.title, ''), e.ogp, e.created_at, a.url
		FROM explanations e
		JOIN articles a ON a.id = e.article_id
		WHERE $1::uuid IS NULL OR e.user_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2
	`

	rows, err := db.Query(ctx, query, userID, limit)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to list recent explanations", "error", err)
		return nil, err
	}
	defer rows.Close()

	results := []RecentExplanationRow{}

	for rows.Next() {
		var (
			row    RecentExplanationRow
			ogpRaw []byte
		)

		err := rows.Scan(
			&row.Explanation.ID,
			&row.Explanation.ArticleID,
			&row.Explanation.UserID,
			&row.Explanation.Summary,
			&row.Explanation.Title,
			&ogpRaw,
			&row.Explanation.CreatedAt,
			&row.URL,
		)
		if err != nil {
			return nil, err
		}

		if ogp, err := decodeOGP(ogpRaw); err == nil {
			row.Explanation.OGP = ogp
		}

		results = append(results, row)
	}

	return results, rows.Err()
}

func encodeOGP(ogp *domain.OGPMetadata) ([]byte, error) {
	if ogp == nil {
		return nil, nil
	}
	return json.Marshal(ogp)
}

func decodeOGP(raw []byte) (*domain.OGPMetadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ogp domain.OGPMetadata
	if err := json.Unmarshal(raw, &ogp); err != nil {
		return nil, err
	}

	return &ogp, nil
}
