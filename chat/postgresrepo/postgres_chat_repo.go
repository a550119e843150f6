package postgreschatrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lovablecline/platform/chat"
)

var _ chat.Repo = (*PostgresChatRepo)(nil)

type PostgresChatRepo struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresChatRepo {
	return &PostgresChatRepo{db: db}
}

func (r *PostgresChatRepo) CreateConversation(ctx context.Context, conversation *chat.Conversation) error {
	query := `
		INSERT INTO conversations (id, title, created_by, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		conversation.ID, conversation.Title, conversation.CreatedBy, conversation.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresChatRepo) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	query := `
		SELECT id, title, created_by, created_at
		FROM conversations
		WHERE id = $1`

	var conversation chat.Conversation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&conversation.ID, &conversation.Title, &conversation.CreatedBy, &conversation.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &conversation, nil
}

func (r *PostgresChatRepo) ListConversations(ctx context.Context, userID string) ([]*chat.Conversation, error) {
	query := `
		SELECT id, title, created_by, created_at
		FROM conversations
		WHERE created_by = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*chat.Conversation
	for rows.Next() {
		var conversation chat.Conversation
		err := rows.Scan(&conversation.ID, &conversation.Title,
			&conversation.CreatedBy, &conversation.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresChatRepo) CreateMessage(ctx context.Context, message *chat.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.ConversationID, message.SenderID, message.Content, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresChatRepo) ListMessages(ctx context.Context, conversationID string, offset, limit int) ([]*chat.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, conversationID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*chat.Message
	for rows.Next() {
		var message chat.Message
		err := rows.Scan(&message.ID, &message.ConversationID,
			&message.SenderID, &message.Content, &message.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
