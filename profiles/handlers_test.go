package profiles_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/internal/identity"
	"github.com/lovablecline/platform/profiles"
	fakeprofilerepo "github.com/lovablecline/platform/profiles/repofake"
)

type profileFixture struct {
	router *gin.Engine
}

func setupProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := profiles.NewHandler(fakeprofilerepo.NewFakeProfileRepo())
	return &profileFixture{router: handler.Router()}
}

func (f *profileFixture) request(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(identity.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestProfileRequiresIdentity(t *testing.T) {
	f := setupProfileFixture(t)

	rec := f.request(t, http.MethodGet, "/api/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOwnProfileBeforeFirstUpdate(t *testing.T) {
	f := setupProfileFixture(t)

	rec := f.request(t, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndReadOwnProfile(t *testing.T) {
	f := setupProfileFixture(t)

	rec := f.request(t, http.MethodPut, "/api/users/me", "alice", gin.H{
		"displayName": "Alice",
		"bio":         "builds robots",
		"avatarUrl":   "https://example.com/alice.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile profiles.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	require.Equal(t, "alice", profile.UserID)
	require.Equal(t, "Alice", profile.DisplayName)
	require.Equal(t, "builds robots", profile.Bio)
}

func TestProfilesAreReadableByOtherUsers(t *testing.T) {
	f := setupProfileFixture(t)

	rec := f.request(t, http.MethodPut, "/api/users/me", "alice", gin.H{"displayName": "Alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/users/alice", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile profiles.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	require.Equal(t, "Alice", profile.DisplayName)
}

func TestUpdateValidation(t *testing.T) {
	f := setupProfileFixture(t)

	rec := f.request(t, http.MethodPut, "/api/users/me", "alice", gin.H{"bio": "no name"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.request(t, http.MethodPut, "/api/users/me", "alice",
		gin.H{"displayName": "Alice", "avatarUrl": "not a url"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
