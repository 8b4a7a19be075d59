package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// FindConversationByPair looks up the conversation between two users,
// treating the pair as unordered. Returns (nil, nil) when none exists.
func (s *Storage) FindConversationByPair(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `
		SELECT id, user_a, user_b, created_at
		FROM conversations
		WHERE (user_a = $1 AND user_b = $2)
		   OR (user_a = $2 AND user_b = $1)
		LIMIT 1
	`

	err := s.db.GetContext(ctx, &conv, query, userA, userB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	return &conv, nil
}

// CreateConversation inserts a new conversation row.
func (s *Storage) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_a, user_b, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, conv.ID, conv.UserA, conv.UserB, conv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

// CreateMessage inserts a message into a conversation.
func (s *Storage) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query, msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}
