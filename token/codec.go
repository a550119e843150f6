package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is the decoded payload of an access token. Values keep the loose
// typing of the wire format (JSON numbers arrive as float64); callers that
// need a canonical form go through the Issuer.
type Claims jwt.MapClaims

// Subject returns the "sub" claim, or an empty string if absent.
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

// ExpiresAt returns the "exp" claim as a time.Time. The zero time means the
// claim is missing.
func (c Claims) ExpiresAt() time.Time {
	exp, ok := c["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}

// Expired reports whether the token's expiry is in the past at now.
func (c Claims) Expired(now time.Time) bool {
	exp := c.ExpiresAt()
	if exp.IsZero() {
		return true
	}
	return !now.Before(exp)
}

// Codec signs and verifies compact self-contained tokens with a single
// pre-shared HMAC-SHA256 secret. Signature verification never checks expiry;
// expiry is an explicit, separate step so callers can tell a forged token
// from a stale one.
type Codec struct {
	signer  Signer
	nowFunc func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithCodecNowFunc overrides the wall clock (primarily for testing).
func WithCodecNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a Codec signing with the given secret.
func NewCodec(secret string, options ...CodecOption) *Codec {
	c := &Codec{
		signer:  NewHMACSigner(secret),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Encode builds a signed token embedding iat, exp, sub and every supplied
// claim. Supplied claims never override the registered ones.
func (c *Codec) Encode(claims map[string]any, subject string, ttl time.Duration) (string, error) {
	now := c.nowFunc()

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["sub"] = subject
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = now.Add(ttl).Unix()

	signed, err := c.signer.Sign(mapClaims)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Encode] signer.Sign")
	}
	return signed, nil
}

// Decode verifies the signature and structural validity of a token and
// returns its claims. An expired-but-genuine token decodes successfully; any
// other failure is ErrInvalidToken.
func (c *Codec) Decode(rawToken string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.Parse(rawToken, c.signer.GetVerificationKey)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return Claims(mapClaims), nil
}

// IsExpired decodes nothing; it only compares the claims' expiry against the
// current wall clock.
func (c *Codec) IsExpired(claims Claims) bool {
	return claims.Expired(c.nowFunc())
}
