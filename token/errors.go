package token

import "errors"

var (
	// ErrInvalidToken covers forged, malformed and wrongly-signed tokens.
	// A token failing with this error must never be partially trusted.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired means the token was genuine but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrMissingUserIDClaim means a genuine token carries no user id claim.
	ErrMissingUserIDClaim = errors.New("token missing userId claim")
)
