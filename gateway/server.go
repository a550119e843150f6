// Package gateway is the edge of the system: a reverse proxy that turns a
// bearer access token into trusted identity headers. It is the only place a
// token signature is ever verified; downstream services trust the forwarded
// headers and perform no authentication of their own.
package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/lovablecline/platform/token"
	"github.com/pkg/errors"
)

// Route maps a request path prefix to an upstream service.
type Route struct {
	Prefix   string
	Upstream string
}

type proxyRoute struct {
	prefix  string
	handler http.Handler
}

// Server proxies inbound requests to the configured upstreams after running
// them through the authentication filter.
type Server struct {
	issuer    *token.Issuer
	allowList []string
	routes    []proxyRoute // sorted longest prefix first
	handler   http.HandlerFunc
}

// New creates a gateway Server. allowList holds path prefixes exempt from
// token verification.
func New(issuer *token.Issuer, allowList []string, routes []Route) (*Server, error) {
	if issuer == nil {
		return nil, errors.New("[gateway.New] issuer is required")
	}

	s := &Server{
		issuer:    issuer,
		allowList: allowList,
	}
	for _, route := range routes {
		upstream, err := url.Parse(route.Upstream)
		if err != nil {
			return nil, errors.Wrapf(err, "[gateway.New] bad upstream for %s", route.Prefix)
		}
		s.routes = append(s.routes, proxyRoute{
			prefix:  route.Prefix,
			handler: httputil.NewSingleHostReverseProxy(upstream),
		})
	}
	sort.Slice(s.routes, func(i, j int) bool {
		return len(s.routes[i].prefix) > len(s.routes[j].prefix)
	})

	s.handler = ChainMiddleware(
		s.forward,
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.AuthMiddleware,
	)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
		return
	}
	s.handler(w, r)
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	for _, route := range s.routes {
		if strings.HasPrefix(r.URL.Path, route.prefix) {
			route.handler.ServeHTTP(w, r)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Not Found", "no route for path")
}
