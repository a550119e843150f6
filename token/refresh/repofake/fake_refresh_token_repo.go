package refreshrepofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lovablecline/platform/token/refresh"
)

var _ refresh.Repo = (*FakeRefreshTokenRepo)(nil)

type FakeRefreshTokenRepo struct {
	tokens map[string]*refresh.StoredToken
	lock   sync.RWMutex
}

func NewFakeRefreshTokenRepo() *FakeRefreshTokenRepo {
	return &FakeRefreshTokenRepo{
		tokens: make(map[string]*refresh.StoredToken),
	}
}

func (tr *FakeRefreshTokenRepo) Create(_ context.Context, token *refresh.StoredToken) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	copied := *token
	tr.tokens[token.Token] = &copied
	return nil
}

func (tr *FakeRefreshTokenRepo) Get(_ context.Context, token string) (*refresh.StoredToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	stored, ok := tr.tokens[token]
	if !ok {
		return nil, refresh.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (tr *FakeRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID string, revokedAt time.Time) (int, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	count := 0
	for _, stored := range tr.tokens {
		if stored.UserID == userID && stored.RevokedAt == nil {
			at := revokedAt
			stored.RevokedAt = &at
			count++
		}
	}
	return count, nil
}

func (tr *FakeRefreshTokenRepo) Revoke(_ context.Context, token string, revokedAt time.Time) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	stored, ok := tr.tokens[token]
	if !ok || stored.RevokedAt != nil {
		return nil
	}
	at := revokedAt
	stored.RevokedAt = &at
	return nil
}

func (tr *FakeRefreshTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	count := 0
	for key, stored := range tr.tokens {
		if stored.ExpiresAt.Before(now) {
			delete(tr.tokens, key)
			count++
		}
	}
	return count, nil
}

func (tr *FakeRefreshTokenRepo) ListForUser(_ context.Context, userID string) ([]*refresh.StoredToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	tokens := make([]*refresh.StoredToken, 0)
	for _, stored := range tr.tokens {
		if stored.UserID == userID {
			copied := *stored
			tokens = append(tokens, &copied)
		}
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].IssuedAt.Before(tokens[j].IssuedAt)
	})
	return tokens, nil
}
