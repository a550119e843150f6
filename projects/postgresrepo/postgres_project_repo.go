package postgresprojectrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lovablecline/platform/projects"
)

var _ projects.Repo = (*PostgresProjectRepo)(nil)

type PostgresProjectRepo struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

func (r *PostgresProjectRepo) Create(ctx context.Context, project *projects.Project) error {
	query := `
		INSERT INTO projects (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.OwnerID,
		project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProjectRepo) GetByID(ctx context.Context, id string) (*projects.Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var project projects.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID,
		&project.CreatedAt, &project.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &project, nil
}

func (r *PostgresProjectRepo) Update(ctx context.Context, project *projects.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PostgresProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProjectRepo) List(ctx context.Context, offset, limit int) ([]*projects.Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (r *PostgresProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*projects.Project, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProjects(rows *sql.Rows) ([]*projects.Project, error) {
	var result []*projects.Project
	for rows.Next() {
		var project projects.Project
		err := rows.Scan(&project.ID, &project.Name, &project.Description,
			&project.OwnerID, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
