package fakechatrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/lovablecline/platform/chat"
)

var _ chat.Repo = (*FakeChatRepo)(nil)

type FakeChatRepo struct {
	conversations map[string]*chat.Conversation
	messages      map[string][]*chat.Message
	lock          sync.RWMutex
}

func NewFakeChatRepo() *FakeChatRepo {
	return &FakeChatRepo{
		conversations: make(map[string]*chat.Conversation),
		messages:      make(map[string][]*chat.Message),
	}
}

func (r *FakeChatRepo) CreateConversation(_ context.Context, conversation *chat.Conversation) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *FakeChatRepo) GetConversation(_ context.Context, id string) (*chat.Conversation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	copied := *conversation
	return &copied, nil
}

func (r *FakeChatRepo) ListConversations(_ context.Context, userID string) ([]*chat.Conversation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var result []*chat.Conversation
	for _, conversation := range r.conversations {
		if conversation.CreatedBy == userID {
			copied := *conversation
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *FakeChatRepo) CreateMessage(_ context.Context, message *chat.Message) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &copied)
	return nil
}

func (r *FakeChatRepo) ListMessages(_ context.Context, conversationID string, offset, limit int) ([]*chat.Message, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	all := r.messages[conversationID]
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	result := make([]*chat.Message, 0, end-offset)
	for _, message := range all[offset:end] {
		copied := *message
		result = append(result, &copied)
	}
	return result, nil
}
