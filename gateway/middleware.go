package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Identity headers injected for downstream services. The gateway always
// overwrites any client-supplied value of these headers.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
)

// ChainMiddleware applies middleware to a handler in reverse order, so the
// first listed middleware runs first.
func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// AuthMiddleware enforces the bearer token contract. Allow-listed path
// prefixes pass through untouched; everything else must carry a valid access
// token, which is exchanged for the identity headers before forwarding.
func (s *Server) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.allowListed(r.URL.Path) {
			next(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}

		rawToken := parts[1]
		if !s.issuer.IsValid(rawToken) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		userID, err := s.issuer.ExtractUserID(rawToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}
		username, err := s.issuer.ExtractUsername(rawToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		// Set, not Add: a spoofed inbound header must never survive.
		r.Header.Set(HeaderUserID, userID)
		r.Header.Set(HeaderUsername, username)

		next(w, r)
	}
}

// LoggingMiddleware logs each request with its outcome latency.
func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("gateway request")
	}
}

// RecoverMiddleware converts panics into a structured 500.
func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
				writeError(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
			}
		}()
		next(w, r)
	}
}

func (s *Server) allowListed(path string) bool {
	for _, prefix := range s.allowList {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, errorName, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errorName,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
