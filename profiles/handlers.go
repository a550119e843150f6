package profiles

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lovablecline/platform/internal/identity"
)

type Handler struct {
	repo    Repo
	nowFunc func() time.Time
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo, nowFunc: time.Now}
}

func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := router.Group("/api/users")
	users.Use(identity.Middleware())
	{
		users.GET("/me", h.GetOwnProfile)
		users.PUT("/me", h.UpdateOwnProfile)
		users.GET("/:id", h.GetProfile)
	}

	return router
}

func (h *Handler) GetOwnProfile(c *gin.Context) {
	h.respondWithProfile(c, identity.UserID(c))
}

func (h *Handler) GetProfile(c *gin.Context) {
	h.respondWithProfile(c, c.Param("id"))
}

func (h *Handler) respondWithProfile(c *gin.Context, userID string) {
	profile, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl" binding:"omitempty,url"`
}

func (h *Handler) UpdateOwnProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	profile := &Profile{
		UserID:      identity.UserID(c),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		UpdatedAt:   h.nowFunc().UTC(),
	}
	if err := h.repo.Upsert(c.Request.Context(), profile); err != nil {
		log.Error().Err(err).Msg("upsert profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
