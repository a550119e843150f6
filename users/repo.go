package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("user not found")

// Repo manages persistent storage of users.
type Repo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByIdentifier looks a user up by username or email in one query.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	SetLastLogin(ctx context.Context, id string) error

	// GetAnonymous returns any existing anonymous user, or ErrNotFound.
	GetAnonymous(ctx context.Context) (*User, error)
}
