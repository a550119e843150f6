package projects

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lovablecline/platform/internal/identity"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// Router builds the gin engine for the project service.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	api := router.Group("/api/projects", identity.Middleware())
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.GET("/mine", h.ListMine)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
	return router
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	now := time.Now()
	project := &Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     identity.UserID(c),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(c.Request.Context(), project); err != nil {
		log.Error().Err(err).Msg("project create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) Get(c *gin.Context) {
	project, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) Update(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	project, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "lookup failed"})
		return
	}
	if !project.IsOwner(identity.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not the project owner"})
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.UpdatedAt = time.Now()
	if err := h.repo.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) Delete(c *gin.Context) {
	project, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "lookup failed"})
		return
	}
	if !project.IsOwner(identity.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not the project owner"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), project.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not delete project"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.repo.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.repo.ListByOwner(c.Request.Context(), identity.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}
