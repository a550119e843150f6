package chat_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lovablecline/platform/chat"
	fakechatrepo "github.com/lovablecline/platform/chat/repofake"
	"github.com/lovablecline/platform/internal/identity"
)

type chatFixture struct {
	router *gin.Engine
}

func setupChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := chat.NewHandler(fakechatrepo.NewFakeChatRepo())
	return &chatFixture{router: handler.Router()}
}

func (f *chatFixture) request(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(identity.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *chatFixture) createConversation(t *testing.T, userID, title string) chat.Conversation {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/chat/conversations", userID, gin.H{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code)

	var conversation chat.Conversation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conversation))
	return conversation
}

func TestConversationRequiresIdentity(t *testing.T) {
	f := setupChatFixture(t)

	rec := f.request(t, http.MethodPost, "/api/chat/conversations", "", gin.H{"title": "hello"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndListConversations(t *testing.T) {
	f := setupChatFixture(t)

	created := f.createConversation(t, "alice", "plans")
	require.Equal(t, "alice", created.CreatedBy)
	require.Equal(t, "plans", created.Title)
	f.createConversation(t, "bob", "other")

	rec := f.request(t, http.MethodGet, "/api/chat/conversations", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []chat.Conversation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)
}

func TestPostAndListMessages(t *testing.T) {
	f := setupChatFixture(t)
	conversation := f.createConversation(t, "alice", "plans")
	base := "/api/chat/conversations/" + conversation.ID + "/messages"

	for i := 0; i < 3; i++ {
		rec := f.request(t, http.MethodPost, base, "alice", gin.H{"content": fmt.Sprintf("message %d", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.request(t, http.MethodGet, base, "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []chat.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&messages))
	require.Len(t, messages, 3)
	require.Equal(t, "message 0", messages[0].Content)
	require.Equal(t, "alice", messages[0].SenderID)
}

func TestMessagePagination(t *testing.T) {
	f := setupChatFixture(t)
	conversation := f.createConversation(t, "alice", "plans")
	base := "/api/chat/conversations/" + conversation.ID + "/messages"

	for i := 0; i < 5; i++ {
		rec := f.request(t, http.MethodPost, base, "alice", gin.H{"content": fmt.Sprintf("message %d", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.request(t, http.MethodGet, base+"?offset=2&limit=2", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page []chat.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page, 2)
	require.Equal(t, "message 2", page[0].Content)
}

func TestPostMessageToUnknownConversation(t *testing.T) {
	f := setupChatFixture(t)

	rec := f.request(t, http.MethodPost, "/api/chat/conversations/nope/messages", "alice", gin.H{"content": "hi"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
