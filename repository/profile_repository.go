package repository

import (
	"context"
	"fmt"

	"news-explainer/domain"
	"news-explainer/driver"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository backed by postgres.
func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := driver.GetProfile(ctx, r.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := driver.ListProfiles(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// IsAdmin is fail closed: a missing profile is not an admin.
func (r *profileRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := driver.GetProfile(ctx, r.db, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check admin status: %w", err)
	}
	if profile == nil {
		return false, nil
	}
	return profile.IsAdmin, nil
}
