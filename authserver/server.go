// Package authserver exposes the session service over HTTP. It sits behind
// the gateway; its endpoints are on the gateway allow-list, so requests
// arrive without identity headers.
package authserver

import (
	"github.com/gin-gonic/gin"
	"github.com/lovablecline/platform/auth"
	"github.com/lovablecline/platform/token"
)

type Server struct {
	sessions *auth.SessionService
	issuer   *token.Issuer
	codec    *token.Codec
}

func New(sessions *auth.SessionService, issuer *token.Issuer, codec *token.Codec) *Server {
	return &Server{sessions: sessions, issuer: issuer, codec: codec}
}

// Router builds the gin engine with every auth route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/register", s.Register)
		api.POST("/login", s.Login)
		api.POST("/refresh", s.Refresh)
		api.POST("/logout", s.Logout)
		api.POST("/validate", s.Validate)
		api.POST("/anonymous", s.Anonymous)
	}
	return router
}
