// Package postgresuserrepo implements users.Repo on PostgreSQL.
package postgresuserrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lovablecline/platform/users"
)

type PostgresUserRepo struct {
	db *sql.DB
}

var _ users.Repo = (*PostgresUserRepo)(nil)

func New(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) Create(ctx context.Context, user *users.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsAnonymous, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_anonymous, created_at, last_login_at
		FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*users.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_anonymous, created_at, last_login_at
		FROM users WHERE username = $1 OR email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

func (r *PostgresUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *PostgresUserRepo) SetLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) GetAnonymous(ctx context.Context) (*users.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_anonymous, created_at, last_login_at
		FROM users WHERE is_anonymous ORDER BY created_at LIMIT 1`

	return r.scanUser(r.db.QueryRowContext(ctx, query))
}

func (r *PostgresUserRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresUserRepo) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	var lastLogin sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsAnonymous, &user.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Time
	}
	return user, nil
}
