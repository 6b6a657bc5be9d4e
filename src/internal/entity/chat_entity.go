package entity

import "time"

type ChatMessage struct {
	MessageID string    `db:"message_id"`
	RoomID    string    `db:"room_id"`
	SenderID  string    `db:"sender_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
