// Package refresh manages long-lived opaque refresh tokens: durable,
// rotatable credentials used to mint new access tokens without
// re-authentication.
package refresh

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const tokenLength = 32 // 256 bits

// Store issues, redeems and revokes refresh tokens on top of a Repo. At most
// one unrevoked token exists per user at any time: issuing revokes all prior
// active tokens for that user before inserting the new one.
type Store struct {
	repo    Repo
	ttl     time.Duration
	nowFunc func() time.Time

	// Serialises the revoke-then-create section per user so concurrent
	// logins from multiple devices cannot leave two active tokens.
	userLocks sync.Map // userID -> *sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNowFunc overrides the wall clock (primarily for testing).
func WithNowFunc(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// NewStore creates a Store issuing tokens with the given lifetime.
func NewStore(repo Repo, ttl time.Duration, options ...StoreOption) *Store {
	s := &Store{
		repo:    repo,
		ttl:     ttl,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Issue revokes every active refresh token of the user and persists a fresh
// one. Prior tokens are revoked, not deleted, so the rotation history stays
// available until the expiry sweep removes it.
func (s *Store) Issue(ctx context.Context, userID string) (*StoredToken, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.nowFunc()
	if _, err := s.repo.RevokeAllForUser(ctx, userID, now); err != nil {
		return nil, errors.Wrap(err, "[Store.Issue] RevokeAllForUser")
	}

	tokenBytes := make([]byte, tokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, errors.Wrap(err, "[Store.Issue] rand.Read")
	}

	stored := &StoredToken{
		Token:     hex.EncodeToString(tokenBytes),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, errors.Wrap(err, "[Store.Issue] Create")
	}
	return stored, nil
}

// Redeem looks up a presented token string and returns the record if it is
// still usable. Redeeming does not revoke: a token stays valid until the next
// Issue for the same user supersedes it, or Revoke is called explicitly.
func (s *Store) Redeem(ctx context.Context, token string) (*StoredToken, error) {
	stored, err := s.repo.Get(ctx, token)
	if err != nil {
		return nil, ErrNotFound
	}
	if stored.Revoked() {
		return nil, ErrRevoked
	}
	if stored.Expired(s.nowFunc()) {
		return nil, ErrExpired
	}
	return stored, nil
}

// Revoke marks a token unusable. It is idempotent: revoking an absent or
// already-revoked token is a no-op, so logout never fails loudly on a stale
// session.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.repo.Revoke(ctx, token, s.nowFunc()); err != nil {
		return errors.Wrap(err, "[Store.Revoke] Revoke")
	}
	return nil
}

// SweepExpired deletes every record past its expiry, regardless of
// revocation state, and returns the number removed. Pure storage
// reclamation; expiry is monotone so no coordination with live Issue/Redeem
// calls is needed.
func (s *Store) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	count, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, errors.Wrap(err, "[Store.SweepExpired] DeleteExpired")
	}
	return count, nil
}

// RunSweeper runs SweepExpired on the given interval until ctx is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.SweepExpired(ctx, s.nowFunc())
			if err != nil {
				log.Error().Err(err).Msg("refresh token sweep failed")
				continue
			}
			if count > 0 {
				log.Info().Int("deleted", count).Msg("swept expired refresh tokens")
			}
		}
	}
}

func (s *Store) lockFor(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
