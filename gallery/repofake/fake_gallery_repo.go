package fakegalleryrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/lovablecline/platform/gallery"
)

var _ gallery.Repo = (*FakeGalleryRepo)(nil)

type FakeGalleryRepo struct {
	albums map[string]*gallery.Album
	images map[string]*gallery.Image
	lock   sync.RWMutex
}

func NewFakeGalleryRepo() *FakeGalleryRepo {
	return &FakeGalleryRepo{
		albums: make(map[string]*gallery.Album),
		images: make(map[string]*gallery.Image),
	}
}

func (r *FakeGalleryRepo) CreateAlbum(_ context.Context, album *gallery.Album) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *album
	r.albums[album.ID] = &copied
	return nil
}

func (r *FakeGalleryRepo) GetAlbum(_ context.Context, id string) (*gallery.Album, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	album, ok := r.albums[id]
	if !ok {
		return nil, gallery.ErrNotFound
	}
	copied := *album
	return &copied, nil
}

func (r *FakeGalleryRepo) UpdateAlbum(_ context.Context, album *gallery.Album) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.albums[album.ID]; !ok {
		return gallery.ErrNotFound
	}
	copied := *album
	r.albums[album.ID] = &copied
	return nil
}

func (r *FakeGalleryRepo) DeleteAlbum(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.albums, id)
	for imageID, image := range r.images {
		if image.AlbumID == id {
			delete(r.images, imageID)
		}
	}
	return nil
}

func (r *FakeGalleryRepo) ListAlbumsByOwner(_ context.Context, ownerID string) ([]*gallery.Album, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var result []*gallery.Album
	for _, album := range r.albums {
		if album.OwnerID == ownerID {
			copied := *album
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *FakeGalleryRepo) CreateImage(_ context.Context, image *gallery.Image) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *FakeGalleryRepo) GetImage(_ context.Context, id string) (*gallery.Image, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	image, ok := r.images[id]
	if !ok {
		return nil, gallery.ErrNotFound
	}
	copied := *image
	return &copied, nil
}

func (r *FakeGalleryRepo) DeleteImage(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.images, id)
	return nil
}

func (r *FakeGalleryRepo) ListImages(_ context.Context, albumID string) ([]*gallery.Image, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var result []*gallery.Image
	for _, image := range r.images {
		if image.AlbumID == albumID {
			copied := *image
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
