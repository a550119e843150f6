package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/token"
	"github.com/lovablecline/platform/users"
)

func TestIssueCarriesIdentityClaims(t *testing.T) {
	codec := token.NewCodec(testSecret)
	issuer := token.NewIssuer(codec, 15*time.Minute)

	user := &users.User{ID: "user-1", Username: "john", Email: "john@example.com"}
	signed, err := issuer.Issue(user)
	require.NoError(t, err)

	userID, err := issuer.ExtractUserID(signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)

	username, err := issuer.ExtractUsername(signed)
	require.NoError(t, err)
	require.Equal(t, "john", username)

	require.True(t, issuer.IsValid(signed))
}

func TestExtractUserIDNormalisesNumericClaim(t *testing.T) {
	// Tokens minted by earlier releases stored the id claim as a number.
	codec := token.NewCodec(testSecret)
	issuer := token.NewIssuer(codec, 15*time.Minute)

	signed, err := codec.Encode(map[string]any{"userId": 42}, "john", time.Hour)
	require.NoError(t, err)

	userID, err := issuer.ExtractUserID(signed)
	require.NoError(t, err)
	require.Equal(t, "42", userID)
}

func TestExtractUserIDMissingClaim(t *testing.T) {
	codec := token.NewCodec(testSecret)
	issuer := token.NewIssuer(codec, 15*time.Minute)

	signed, err := codec.Encode(nil, "john", time.Hour)
	require.NoError(t, err)

	_, err = issuer.ExtractUserID(signed)
	require.ErrorIs(t, err, token.ErrMissingUserIDClaim)
}

func TestExtractUserIDInvalidToken(t *testing.T) {
	issuer := token.NewIssuer(token.NewCodec(testSecret), 15*time.Minute)

	_, err := issuer.ExtractUserID("garbage")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestIsValidRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	codec := token.NewCodec(testSecret, token.WithCodecNowFunc(func() time.Time { return now }))
	issuer := token.NewIssuer(codec, time.Minute)

	signed, err := issuer.Issue(&users.User{ID: "user-1", Username: "john"})
	require.NoError(t, err)
	require.True(t, issuer.IsValid(signed))

	now = issuedAt.Add(2 * time.Minute)
	require.False(t, issuer.IsValid(signed))
}
