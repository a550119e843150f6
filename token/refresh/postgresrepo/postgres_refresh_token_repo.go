// Package postgresrefreshrepo implements refresh.Repo on PostgreSQL. The
// revoke-then-create rotation runs inside the Store's per-user critical
// section, so the repo itself only needs single-statement consistency.
package postgresrefreshrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lovablecline/platform/token/refresh"
)

type PostgresRefreshTokenRepo struct {
	db *sql.DB
}

var _ refresh.Repo = (*PostgresRefreshTokenRepo)(nil)

func New(db *sql.DB) *PostgresRefreshTokenRepo {
	return &PostgresRefreshTokenRepo{db: db}
}

func (r *PostgresRefreshTokenRepo) Create(ctx context.Context, token *refresh.StoredToken) error {
	query := `
		INSERT INTO refresh_tokens (token, user_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, token.Token, token.UserID, token.IssuedAt, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRefreshTokenRepo) Get(ctx context.Context, token string) (*refresh.StoredToken, error) {
	query := `
		SELECT token, user_id, issued_at, expires_at, revoked_at
		FROM refresh_tokens WHERE token = $1`

	stored := &refresh.StoredToken{}
	var revokedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&stored.Token, &stored.UserID, &stored.IssuedAt, &stored.ExpiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, refresh.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if revokedAt.Valid {
		stored.RevokedAt = &revokedAt.Time
	}
	return stored, nil
}

func (r *PostgresRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) (int, error) {
	query := `
		UPDATE refresh_tokens SET revoked_at = $2
		WHERE user_id = $1 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, userID, revokedAt)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(count), nil
}

func (r *PostgresRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAt time.Time) error {
	query := `
		UPDATE refresh_tokens SET revoked_at = $2
		WHERE token = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, token, revokedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRefreshTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(count), nil
}

func (r *PostgresRefreshTokenRepo) ListForUser(ctx context.Context, userID string) ([]*refresh.StoredToken, error) {
	query := `
		SELECT token, user_id, issued_at, expires_at, revoked_at
		FROM refresh_tokens WHERE user_id = $1 ORDER BY issued_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tokens := make([]*refresh.StoredToken, 0)
	for rows.Next() {
		stored := &refresh.StoredToken{}
		var revokedAt sql.NullTime
		if err := rows.Scan(&stored.Token, &stored.UserID, &stored.IssuedAt, &stored.ExpiresAt, &revokedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if revokedAt.Valid {
			stored.RevokedAt = &revokedAt.Time
		}
		tokens = append(tokens, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tokens, nil
}
