package repository

import (
	"context"
	"fmt"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
)

type ChatRepository struct {
	DB mysql.DBInterface
}

func NewChatRepository(db mysql.DBInterface) *ChatRepository {
	return &ChatRepository{
		DB: db,
	}
}

func (r *ChatRepository) Insert(ctx context.Context, msg *entity.ChatMessage) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO chat_messages (message_id, room_id, sender_id, body, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		msg.MessageID,
		msg.RoomID,
		msg.SenderID,
		msg.Body,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// History returns the latest messages of a room in chronological order.
func (r *ChatRepository) History(ctx context.Context, roomID string, limit int) ([]entity.ChatMessage, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var messages []entity.ChatMessage
	query := `
		SELECT message_id, room_id, sender_id, body, created_at
		FROM (
			SELECT message_id, room_id, sender_id, body, created_at
			FROM chat_messages
			WHERE room_id = ?
			ORDER BY created_at DESC
			LIMIT ?
		) latest
		ORDER BY created_at ASC
	`
	if err := db.SelectContext(ctx, &messages, query, roomID, limit); err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return messages, nil
}
