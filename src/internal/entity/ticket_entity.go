package entity

import (
	"database/sql"
	"time"
)

type SupportTicket struct {
	TicketID      string         `db:"ticket_id"`
	UserID        string         `db:"user_id"`
	Subject       string         `db:"subject"`
	Message       string         `db:"message"`
	Priority      string         `db:"priority"`
	Status        string         `db:"status"`
	AdminResponse sql.NullString `db:"admin_response"`
	AdminNotes    sql.NullString `db:"admin_notes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     *time.Time     `db:"updated_at"`
}
