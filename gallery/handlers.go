package gallery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

	albums := router.Group("/api/gallery/albums")
	albums.Use(identity.Middleware())
	{
		albums.POST("", h.CreateAlbum)
		albums.GET("", h.ListAlbums)
		albums.GET("/:id", h.GetAlbum)
		albums.PUT("/:id", h.UpdateAlbum)
		albums.DELETE("/:id", h.DeleteAlbum)
		albums.POST("/:id/images", h.AddImage)
		albums.GET("/:id/images", h.ListImages)
		albums.DELETE("/:id/images/:imageId", h.DeleteImage)
	}

	return router
}

type albumRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) CreateAlbum(c *gin.Context) {
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	now := h.nowFunc().UTC()
	album := &Album{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     identity.UserID(c),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.CreateAlbum(c.Request.Context(), album); err != nil {
		log.Error().Err(err).Msg("create album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, album)
}

func (h *Handler) ListAlbums(c *gin.Context) {
	albums, err := h.repo.ListAlbumsByOwner(c.Request.Context(), identity.UserID(c))
	if err != nil {
		log.Error().Err(err).Msg("list albums failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if albums == nil {
		albums = []*Album{}
	}
	c.JSON(http.StatusOK, albums)
}

func (h *Handler) GetAlbum(c *gin.Context) {
	album, err := h.repo.GetAlbum(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *Handler) UpdateAlbum(c *gin.Context) {
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	album, ok := h.ownedAlbum(c)
	if !ok {
		return
	}

	album.Title = req.Title
	album.Description = req.Description
	album.UpdatedAt = h.nowFunc().UTC()
	if err := h.repo.UpdateAlbum(c.Request.Context(), album); err != nil {
		log.Error().Err(err).Msg("update album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, album)
}

func (h *Handler) DeleteAlbum(c *gin.Context) {
	if _, ok := h.ownedAlbum(c); !ok {
		return
	}

	if err := h.repo.DeleteAlbum(c.Request.Context(), c.Param("id")); err != nil {
		log.Error().Err(err).Msg("delete album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

type addImageRequest struct {
	Title string `json:"title"`
	URL   string `json:"url" binding:"required,url"`
}

func (h *Handler) AddImage(c *gin.Context) {
	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	album, ok := h.ownedAlbum(c)
	if !ok {
		return
	}

	image := &Image{
		ID:        uuid.NewString(),
		AlbumID:   album.ID,
		Title:     req.Title,
		URL:       req.URL,
		CreatedAt: h.nowFunc().UTC(),
	}
	if err := h.repo.CreateImage(c.Request.Context(), image); err != nil {
		log.Error().Err(err).Msg("create image failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *Handler) ListImages(c *gin.Context) {
	if _, err := h.repo.GetAlbum(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
			return
		}
		log.Error().Err(err).Msg("get album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	images, err := h.repo.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error().Err(err).Msg("list images failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if images == nil {
		images = []*Image{}
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	album, ok := h.ownedAlbum(c)
	if !ok {
		return
	}

	image, err := h.repo.GetImage(c.Request.Context(), c.Param("imageId"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get image failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if image.AlbumID != album.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	if err := h.repo.DeleteImage(c.Request.Context(), image.ID); err != nil {
		log.Error().Err(err).Msg("delete image failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedAlbum loads the album from the path id and enforces that the caller owns it.
// Writes the response itself when the lookup or ownership check fails.
func (h *Handler) ownedAlbum(c *gin.Context) (*Album, bool) {
	album, err := h.repo.GetAlbum(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("get album failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	if !album.IsOwner(identity.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the album owner"})
		return nil, false
	}
	return album, true
}
