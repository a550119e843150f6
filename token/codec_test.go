package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := token.NewCodec(testSecret)

	signed, err := codec.Encode(map[string]any{"userId": "user-1", "email": "john@example.com"}, "john", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	require.Equal(t, "john", claims.Subject())
	require.Equal(t, "user-1", claims["userId"])
	require.Equal(t, "john@example.com", claims["email"])
	require.False(t, codec.IsExpired(claims))
}

func TestSuppliedClaimsCannotOverrideRegisteredOnes(t *testing.T) {
	codec := token.NewCodec(testSecret)

	signed, err := codec.Encode(map[string]any{"sub": "mallory", "exp": int64(0)}, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject())
	require.False(t, codec.IsExpired(claims))
}

func TestDecodeRejectsTamperedSignature(t *testing.T) {
	codec := token.NewCodec(testSecret)

	signed, err := codec.Encode(nil, "john", time.Hour)
	require.NoError(t, err)

	tampered := tamperSignature(signed)
	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	codec := token.NewCodec(testSecret)
	other := token.NewCodec("another-secret-another-secret-32")

	signed, err := other.Encode(nil, "john", time.Hour)
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := token.NewCodec(testSecret)

	_, err := codec.Decode("not.a.token")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestExpiredTokenStillDecodes(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := token.NewCodec(testSecret, token.WithCodecNowFunc(func() time.Time { return issuedAt }))

	signed, err := codec.Encode(map[string]any{"userId": "user-1"}, "john", time.Minute)
	require.NoError(t, err)

	later := token.NewCodec(testSecret, token.WithCodecNowFunc(func() time.Time {
		return issuedAt.Add(2 * time.Minute)
	}))

	claims, err := later.Decode(signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims["userId"])
	require.True(t, later.IsExpired(claims))
}

func TestIsExpiredAtExactExpiry(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	codec := token.NewCodec(testSecret, token.WithCodecNowFunc(func() time.Time { return now }))

	signed, err := codec.Encode(nil, "john", time.Minute)
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)

	now = issuedAt.Add(time.Minute - time.Second)
	require.False(t, codec.IsExpired(claims))

	now = issuedAt.Add(time.Minute)
	require.True(t, codec.IsExpired(claims))
}

// tamperSignature flips a character in the signature segment, keeping the
// token structurally valid.
func tamperSignature(signed string) string {
	parts := strings.Split(signed, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}
