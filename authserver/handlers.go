package authserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lovablecline/platform/auth"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type validateRequest struct {
	Token string `json:"token" binding:"required"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := s.sessions.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		log.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"userId":       session.User.ID,
		"username":     session.User.Username,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    s.sessions.AccessTokenTTL().Milliseconds(),
	})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := s.sessions.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":       session.User.ID,
		"username":     session.User.Username,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    s.sessions.AccessTokenTTL().Milliseconds(),
	})
}

func (s *Server) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := s.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
			return
		}
		log.Error().Err(err).Msg("refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    s.sessions.AccessTokenTTL().Milliseconds(),
	})
}

// Logout always answers 200: revoking a stale or unknown token is a no-op.
func (s *Server) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.sessions.Logout(c.Request.Context(), req.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !s.sessions.Validate(req.Token) {
		c.JSON(http.StatusOK, gin.H{"isValid": false})
		return
	}

	userID, err := s.issuer.ExtractUserID(req.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isValid": false})
		return
	}
	claims, err := s.codec.Decode(req.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isValid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isValid":   true,
		"userId":    userID,
		"username":  claims.Subject(),
		"expiresAt": claims.ExpiresAt(),
	})
}

func (s *Server) Anonymous(c *gin.Context) {
	session, err := s.sessions.AnonymousSession(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("anonymous session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "anonymous session failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":       session.User.ID,
		"username":     session.User.Username,
		"isAnonymous":  true,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
		"expiresIn":    s.sessions.AccessTokenTTL().Milliseconds(),
	})
}
