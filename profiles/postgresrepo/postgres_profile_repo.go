package postgresprofilerepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lovablecline/platform/profiles"
)

var _ profiles.Repo = (*PostgresProfileRepo)(nil)

type PostgresProfileRepo struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

func (r *PostgresProfileRepo) Upsert(ctx context.Context, profile *profiles.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, bio, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    bio = EXCLUDED.bio,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.AvatarURL, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepo) GetByUserID(ctx context.Context, userID string) (*profiles.Profile, error) {
	query := `
		SELECT user_id, display_name, bio, avatar_url, updated_at
		FROM profiles
		WHERE user_id = $1`

	var profile profiles.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName, &profile.Bio,
		&profile.AvatarURL, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profiles.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &profile, nil
}
