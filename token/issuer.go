package token

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/lovablecline/platform/users"
)

const (
	userIDClaim = "userId"
	emailClaim  = "email"
)

// Issuer mints access tokens for users. Tokens carry the user id and email as
// claims with the username as subject, and share one configured TTL.
type Issuer struct {
	codec *Codec
	ttl   time.Duration
}

// NewIssuer creates an Issuer minting tokens with the given fixed lifetime.
func NewIssuer(codec *Codec, ttl time.Duration) *Issuer {
	return &Issuer{codec: codec, ttl: ttl}
}

// TTL returns the configured access token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed access token for the user.
func (i *Issuer) Issue(user *users.User) (string, error) {
	claims := map[string]any{
		userIDClaim: user.ID,
	}
	if user.Email != "" {
		claims[emailClaim] = user.Email
	}
	return i.codec.Encode(claims, user.Username, i.ttl)
}

// ExtractUserID decodes the token and returns the user id claim as a string.
// Older tokens serialised the id claim as a number, so any primitive
// representation is normalised; only a missing claim is rejected.
func (i *Issuer) ExtractUserID(rawToken string) (string, error) {
	claims, err := i.codec.Decode(rawToken)
	if err != nil {
		return "", err
	}
	return normalizeIDClaim(claims[userIDClaim])
}

// ExtractUsername decodes the token and returns its subject.
func (i *Issuer) ExtractUsername(rawToken string) (string, error) {
	claims, err := i.codec.Decode(rawToken)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// IsValid reports whether the token decodes and has not expired.
func (i *Issuer) IsValid(rawToken string) bool {
	claims, err := i.codec.Decode(rawToken)
	if err != nil {
		return false
	}
	return !i.codec.IsExpired(claims)
}

func normalizeIDClaim(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case json.Number:
		return id.String(), nil
	case nil:
		return "", ErrMissingUserIDClaim
	default:
		return "", ErrMissingUserIDClaim
	}
}
