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

// GetProfile returns the profile for a user id, or nil when none exists.
func GetProfile(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) (*domain.Profile, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, COALESCE(email, ''), COALESCE(display_name, ''), is_admin, created_at
		FROM profiles
		WHERE id = $1
	`

	var profile domain.Profile

	err := db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.IsAdmin,
		&profile.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to look up profile", "error", err, "user_id", userID)
		return nil, err
	}

	return &profile, nil
}

// ListProfiles returns all registered profiles, newest first.
func ListProfiles(ctx context.Context, db *pgxpool.Pool) ([]*domain.Profile, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, COALESCE(email, ''), COALESCE(display_name, ''), is_admin, created_at
		FROM profiles
		ORDER BY created_at DESC
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to list profiles", "error", err)
		return nil, err
	}
	defer rows.Close()

	profiles := []*domain.Profile{}

	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(&profile.ID, &profile.Email, &profile.DisplayName, &profile.IsAdmin, &profile.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	return profiles, rows.Err()
}
