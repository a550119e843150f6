package users_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/users"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, users.CheckPasswordHash("password123", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := users.HashPassword("password123")
	require.NoError(t, err)
	second, err := users.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestPasswordHashNeverSerialises(t *testing.T) {
	user := users.User{ID: "user-1", Username: "john", PasswordHash: "secret-hash"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "secret-hash"))
}
