// Package gallery manages image albums and the metadata of the images they hold.
// Binary storage lives elsewhere; only URLs and descriptive fields are kept here.
package gallery

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a *Album) IsOwner(userID string) bool {
	return a.OwnerID == userID
}

type Image struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"albumId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo interface {
	CreateAlbum(ctx context.Context, album *Album) error
	GetAlbum(ctx context.Context, id string) (*Album, error)
	UpdateAlbum(ctx context.Context, album *Album) error
	DeleteAlbum(ctx context.Context, id string) error
	ListAlbumsByOwner(ctx context.Context, ownerID string) ([]*Album, error)
	CreateImage(ctx context.Context, image *Image) error
	GetImage(ctx context.Context, id string) (*Image, error)
	DeleteImage(ctx context.Context, id string) error
	ListImages(ctx context.Context, albumID string) ([]*Image, error)
}
