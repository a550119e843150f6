package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is deliberately undifferentiated: callers cannot
	// tell whether the identifier or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict covers duplicate username or email at registration.
	ErrConflict      = errors.New("already exists")
	ErrUsernameTaken = fmt.Errorf("username %w", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email %w", ErrConflict)

	// ErrInvalidRefreshToken is the only refresh failure callers see; the
	// not-found/revoked/expired distinction stays in the logs so the API
	// cannot be used as a token-guessing oracle.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
