package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/lovablecline/platform/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	byID map[string]*users.User
	lock sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID: make(map[string]*users.User),
	}
}

func (r *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *FakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.byID {
		if user.Username == identifier || user.Email == identifier {
			copied := *user
			return &copied, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *FakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.byID {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.byID {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeUserRepo) SetLastLogin(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *FakeUserRepo) GetAnonymous(_ context.Context) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.byID {
		if user.IsAnonymous {
			copied := *user
			return &copied, nil
		}
	}
	return nil, users.ErrNotFound
}
