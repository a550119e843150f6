package projects_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/internal/identity"
	"github.com/lovablecline/platform/projects"
	fakeprojectrepo "github.com/lovablecline/platform/projects/repofake"
)

type projectFixture struct {
	router *gin.Engine
}

func setupProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := projects.NewHandler(fakeprojectrepo.NewFakeProjectRepo())
	return &projectFixture{router: handler.Router()}
}

func (f *projectFixture) request(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(identity.HeaderUserID, userID)
		req.Header.Set(identity.HeaderUsername, "user-"+userID)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *projectFixture) createProject(t *testing.T, userID, name string) projects.Project {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/projects", userID, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project projects.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&project))
	return project
}

func TestRequestsWithoutIdentityAreRejected(t *testing.T) {
	f := setupProjectFixture(t)

	rec := f.request(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndGetProject(t *testing.T) {
	f := setupProjectFixture(t)

	created := f.createProject(t, "alice", "robot")
	require.Equal(t, "alice", created.OwnerID)
	require.Equal(t, "robot", created.Name)

	rec := f.request(t, http.MethodGet, "/api/projects/"+created.ID, "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUnknownProject(t *testing.T) {
	f := setupProjectFixture(t)

	rec := f.request(t, http.MethodGet, "/api/projects/nope", "alice", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := setupProjectFixture(t)
	created := f.createProject(t, "alice", "robot")

	rec := f.request(t, http.MethodPut, "/api/projects/"+created.ID, "bob", gin.H{"name": "stolen"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(t, http.MethodPut, "/api/projects/"+created.ID, "alice", gin.H{"name": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated projects.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.Equal(t, "renamed", updated.Name)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	f := setupProjectFixture(t)
	created := f.createProject(t, "alice", "robot")

	rec := f.request(t, http.MethodDelete, "/api/projects/"+created.ID, "bob", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(t, http.MethodDelete, "/api/projects/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/projects/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMineFiltersByOwner(t *testing.T) {
	f := setupProjectFixture(t)
	f.createProject(t, "alice", "one")
	f.createProject(t, "alice", "two")
	f.createProject(t, "bob", "three")

	rec := f.request(t, http.MethodGet, "/api/projects/mine", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var mine []projects.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&mine))
	require.Len(t, mine, 2)

	rec = f.request(t, http.MethodGet, "/api/projects", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []projects.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	require.Len(t, all, 3)
}
