package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/gateway"
	"github.com/lovablecline/platform/token"
	"github.com/lovablecline/platform/users"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// echoedIdentity is what the stub upstream reports back about the request it
// received.
type echoedIdentity struct {
	Path     string `json:"path"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type gatewayFixture struct {
	issuer   *token.Issuer
	server   *gateway.Server
	upstream *httptest.Server
}

func setupGatewayFixture(t *testing.T, allowList []string) *gatewayFixture {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(echoedIdentity{
			Path:     r.URL.Path,
			UserID:   r.Header.Get(gateway.HeaderUserID),
			Username: r.Header.Get(gateway.HeaderUsername),
		})
	}))
	t.Cleanup(upstream.Close)

	issuer := token.NewIssuer(token.NewCodec(testSecret), 15*time.Minute)
	server, err := gateway.New(issuer, allowList, []gateway.Route{
		{Prefix: "/api/projects", Upstream: upstream.URL},
		{Prefix: "/api/auth", Upstream: upstream.URL},
	})
	require.NoError(t, err)

	return &gatewayFixture{issuer: issuer, server: server, upstream: upstream}
}

func (f *gatewayFixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *gatewayFixture) accessToken(t *testing.T) string {
	t.Helper()
	signed, err := f.issuer.Issue(&users.User{ID: "user-1", Username: "john"})
	require.NoError(t, err)
	return signed
}

func decodeIdentity(t *testing.T, rec *httptest.ResponseRecorder) echoedIdentity {
	t.Helper()
	var identity echoedIdentity
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&identity))
	return identity
}

func TestHealthEndpointBypassesProxy(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
}

func TestAllowListedPathPassesWithoutToken(t *testing.T) {
	f := setupGatewayFixture(t, []string{"/api/auth/login"})

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/api/auth/login", decodeIdentity(t, rec).Path)
}

func TestMissingTokenIsRejected(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedAuthorizationHeaderIsRejected(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", header)
		rec := f.do(t, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestForgedTokenIsRejected(t *testing.T) {
	f := setupGatewayFixture(t, nil)
	forger := token.NewIssuer(token.NewCodec("wrong-secret-wrong-secret-32byte"), 15*time.Minute)

	forged, err := forger.Issue(&users.User{ID: "user-1", Username: "john"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	require.Equal(t, http.StatusUnauthorized, f.do(t, req).Code)
}

func TestValidTokenInjectsIdentityHeaders(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p-1", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t))
	rec := f.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	identity := decodeIdentity(t, rec)
	require.Equal(t, "user-1", identity.UserID)
	require.Equal(t, "john", identity.Username)
}

func TestSpoofedIdentityHeadersAreOverwritten(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t))
	req.Header.Set(gateway.HeaderUserID, "admin")
	req.Header.Set(gateway.HeaderUsername, "root")
	rec := f.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	identity := decodeIdentity(t, rec)
	require.Equal(t, "user-1", identity.UserID)
	require.Equal(t, "john", identity.Username)
}

func TestLowercaseBearerSchemeIsAccepted(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "bearer "+f.accessToken(t))
	require.Equal(t, http.StatusOK, f.do(t, req).Code)
}

func TestUnroutedPathReturnsNotFound(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t))
	require.Equal(t, http.StatusNotFound, f.do(t, req).Code)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	f := setupGatewayFixture(t, nil)

	past := time.Now().Add(-time.Hour)
	staleCodec := token.NewCodec(testSecret, token.WithCodecNowFunc(func() time.Time { return past }))
	staleIssuer := token.NewIssuer(staleCodec, time.Minute)
	stale, err := staleIssuer.Issue(&users.User{ID: "user-1", Username: "john"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+stale)
	require.Equal(t, http.StatusUnauthorized, f.do(t, req).Code)
}
