package config

import "strings"

// defaultAllowList mirrors the endpoints that must be reachable without a
// token: the auth surface itself plus health checks.
var defaultAllowList = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/validate",
	"/api/auth/refresh",
	"/api/auth/logout",
	"/api/auth/anonymous",
	"/health",
}

type GatewayConfig interface {
	GetAllowListPaths() []string
	GetAuthServiceURL() string
	GetUserServiceURL() string
	GetProjectServiceURL() string
	GetChatServiceURL() string
	GetGalleryServiceURL() string
}

type Gateway struct{}

var _ GatewayConfig = Gateway{}

func (Gateway) GetAllowListPaths() []string {
	raw := GetEnv("ALLOWLIST_PATHS", "")
	if raw == "" {
		return defaultAllowList
	}
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (Gateway) GetAuthServiceURL() string {
	return GetEnv("AUTH_SERVICE_URL", "http://localhost:8081")
}

func (Gateway) GetUserServiceURL() string {
	return GetEnv("USER_SERVICE_URL", "http://localhost:8082")
}

func (Gateway) GetProjectServiceURL() string {
	return GetEnv("PROJECT_SERVICE_URL", "http://localhost:8083")
}

func (Gateway) GetChatServiceURL() string {
	return GetEnv("CHAT_SERVICE_URL", "http://localhost:8084")
}

func (Gateway) GetGalleryServiceURL() string {
	return GetEnv("GALLERY_SERVICE_URL", "http://localhost:8085")
}
