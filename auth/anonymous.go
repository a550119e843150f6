package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lovablecline/platform/users"
)

// AnonymousPolicy decides which user backs an anonymous session.
type AnonymousPolicy interface {
	Resolve(ctx context.Context) (*users.User, error)
}

// SharedAnonymousPolicy reuses one globally shared anonymous user for every
// anonymous session, provisioning it on first use with a generated identity
// and a random throwaway password. Guests therefore share state; a
// per-session policy can be injected instead without touching the
// SessionService.
type SharedAnonymousPolicy struct {
	repo    users.Repo
	nowFunc func() time.Time
}

func NewSharedAnonymousPolicy(repo users.Repo) *SharedAnonymousPolicy {
	return &SharedAnonymousPolicy{repo: repo, nowFunc: time.Now}
}

func (p *SharedAnonymousPolicy) Resolve(ctx context.Context) (*users.User, error) {
	user, err := p.repo.GetAnonymous(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("[SharedAnonymousPolicy.Resolve] GetAnonymous: %w", err)
	}

	username := fmt.Sprintf("guest_%d", p.nowFunc().UnixMilli())
	passwordHash, err := users.HashPassword(uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("[SharedAnonymousPolicy.Resolve] HashPassword: %w", err)
	}

	user = &users.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@anonymous.com",
		PasswordHash: passwordHash,
		IsAnonymous:  true,
		CreatedAt:    p.nowFunc(),
	}
	if err := p.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("[SharedAnonymousPolicy.Resolve] Create: %w", err)
	}
	return user, nil
}
