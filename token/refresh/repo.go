package refresh

import (
	"context"
	"time"
)

// StoredToken is the persisted record behind an opaque refresh token string.
// The client only ever sees the Token field; possession of the string carries
// no information by itself. Revocation and supersession are both recorded by
// setting RevokedAt, so the history of rotated tokens survives for audit.
type StoredToken struct {
	Token     string     // Opaque random string, primary key
	UserID    string     // Owning user
	IssuedAt  time.Time  //
	ExpiresAt time.Time  //
	RevokedAt *time.Time // Nil while the token is active
}

// Revoked reports whether the token has been revoked or superseded.
func (t *StoredToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's expiry has passed at now.
func (t *StoredToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Repo manages server-side storage of refresh token records keyed by the
// opaque token string.
type Repo interface {
	Create(ctx context.Context, token *StoredToken) error

	// Get returns the record for a token string, or ErrNotFound.
	Get(ctx context.Context, token string) (*StoredToken, error)

	// RevokeAllForUser sets RevokedAt on every unrevoked token of the user
	// and returns how many were revoked.
	RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) (int, error)

	// Revoke sets RevokedAt on a single token if it is present and unrevoked.
	Revoke(ctx context.Context, token string, revokedAt time.Time) error

	// DeleteExpired removes every record with ExpiresAt before now, revoked
	// or not, and returns the number of rows deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)

	// ListForUser returns every record for the user, oldest first.
	ListForUser(ctx context.Context, userID string) ([]*StoredToken, error)
}
