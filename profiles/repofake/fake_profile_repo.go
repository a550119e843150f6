package fakeprofilerepo

import (
	"context"
	"sync"

	"github.com/lovablecline/platform/profiles"
)

var _ profiles.Repo = (*FakeProfileRepo)(nil)

type FakeProfileRepo struct {
	byUserID map[string]*profiles.Profile
	lock     sync.RWMutex
}

func NewFakeProfileRepo() *FakeProfileRepo {
	return &FakeProfileRepo{byUserID: make(map[string]*profiles.Profile)}
}

func (r *FakeProfileRepo) Upsert(_ context.Context, profile *profiles.Profile) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *profile
	r.byUserID[profile.UserID] = &copied
	return nil
}

func (r *FakeProfileRepo) GetByUserID(_ context.Context, userID string) (*profiles.Profile, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	profile, ok := r.byUserID[userID]
	if !ok {
		return nil, profiles.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}
