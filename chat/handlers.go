package chat

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lovablecline/platform/internal/identity"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
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

	conversations := router.Group("/api/chat/conversations")
	conversations.Use(identity.Middleware())
	{
		conversations.POST("", h.CreateConversation)
		conversations.GET("", h.ListConversations)
		conversations.GET("/:id", h.GetConversation)
		conversations.POST("/:id/messages", h.PostMessage)
		conversations.GET("/:id/messages", h.ListMessages)
	}

	return router
}

type createConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	conversation := &Conversation{
		ID:        uuid.NewString(),
		Title:     req.Title,
		CreatedBy: identity.UserID(c),
		CreatedAt: h.nowFunc().UTC(),
	}
	if err := h.repo.CreateConversation(c.Request.Context(), conversation); err != nil {
		log.Error().Err(err).Msg("create conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

func (h *Handler) ListConversations(c *gin.Context) {
	conversations, err := h.repo.ListConversations(c.Request.Context(), identity.UserID(c))
	if err != nil {
		log.Error().Err(err).Msg("list conversations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if conversations == nil {
		conversations = []*Conversation{}
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *Handler) GetConversation(c *gin.Context) {
	conversation, err := h.repo.GetConversation(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, conversation)
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	conversationID := c.Param("id")
	if _, err := h.repo.GetConversation(c.Request.Context(), conversationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		log.Error().Err(err).Msg("get conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	message := &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       identity.UserID(c),
		Content:        req.Content,
		CreatedAt:      h.nowFunc().UTC(),
	}
	if err := h.repo.CreateMessage(c.Request.Context(), message); err != nil {
		log.Error().Err(err).Msg("create message failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *Handler) ListMessages(c *gin.Context) {
	offset, limit := pagination(c)
	messages, err := h.repo.ListMessages(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("list messages failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if messages == nil {
		messages = []*Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}
