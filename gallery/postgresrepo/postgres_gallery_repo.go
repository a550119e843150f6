package postgresgalleryrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lovablecline/platform/gallery"
)

var _ gallery.Repo = (*PostgresGalleryRepo)(nil)

type PostgresGalleryRepo struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresGalleryRepo {
	return &PostgresGalleryRepo{db: db}
}

func (r *PostgresGalleryRepo) CreateAlbum(ctx context.Context, album *gallery.Album) error {
	query := `
		INSERT INTO albums (id, title, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		album.ID, album.Title, album.Description, album.OwnerID,
		album.CreatedAt, album.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresGalleryRepo) GetAlbum(ctx context.Context, id string) (*gallery.Album, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM albums
		WHERE id = $1`

	var album gallery.Album
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&album.ID, &album.Title, &album.Description, &album.OwnerID,
		&album.CreatedAt, &album.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gallery.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &album, nil
}

func (r *PostgresGalleryRepo) UpdateAlbum(ctx context.Context, album *gallery.Album) error {
	query := `
		UPDATE albums
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		album.ID, album.Title, album.Description, album.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return gallery.ErrNotFound
	}
	return nil
}

func (r *PostgresGalleryRepo) DeleteAlbum(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresGalleryRepo) ListAlbumsByOwner(ctx context.Context, ownerID string) ([]*gallery.Album, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM albums
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*gallery.Album
	for rows.Next() {
		var album gallery.Album
		err := rows.Scan(&album.ID, &album.Title, &album.Description,
			&album.OwnerID, &album.CreatedAt, &album.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresGalleryRepo) CreateImage(ctx context.Context, image *gallery.Image) error {
	query := `
		INSERT INTO images (id, album_id, title, url, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.AlbumID, image.Title, image.URL, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresGalleryRepo) GetImage(ctx context.Context, id string) (*gallery.Image, error) {
	query := `
		SELECT id, album_id, title, url, created_at
		FROM images
		WHERE id = $1`

	var image gallery.Image
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&image.ID, &image.AlbumID, &image.Title, &image.URL, &image.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gallery.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &image, nil
}

func (r *PostgresGalleryRepo) DeleteImage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresGalleryRepo) ListImages(ctx context.Context, albumID string) ([]*gallery.Image, error) {
	query := `
		SELECT id, album_id, title, url, created_at
		FROM images
		WHERE album_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*gallery.Image
	for rows.Next() {
		var image gallery.Image
		err := rows.Scan(&image.ID, &image.AlbumID, &image.Title, &image.URL, &image.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
