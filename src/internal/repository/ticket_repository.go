package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
)

type TicketRepository struct {
	DB mysql.DBInterface
}

func NewTicketRepository(db mysql.DBInterface) *TicketRepository {
	return &TicketRepository{
		DB: db,
	}
}

const ticketColumns = `
	ticket_id,
	user_id,
	subject,
	message,
	priority,
	status,
	admin_response,
	admin_notes,
	created_at,
	updated_at
`

func (r *TicketRepository) Insert(ctx context.Context, ticket *entity.SupportTicket) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO support_tickets (ticket_id, user_id, subject, message, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		ticket.TicketID,
		ticket.UserID,
		ticket.Subject,
		ticket.Message,
		ticket.Priority,
		ticket.Status,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*entity.SupportTicket, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var ticket entity.SupportTicket
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE ticket_id = ?`
	if err := db.GetContext(ctx, &ticket, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}

	if _, err := entity.ParseTicketStatus(ticket.Status); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) List(ctx context.Context, status string) ([]entity.SupportTicket, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + ticketColumns + ` FROM support_tickets`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var tickets []entity.SupportTicket
	if err := db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]entity.SupportTicket, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var tickets []entity.SupportTicket
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE user_id = ? ORDER BY created_at DESC`
	if err := db.SelectContext(ctx, &tickets, query, userID); err != nil {
		return nil, fmt.Errorf("list user tickets: %w", err)
	}
	return tickets, nil
}

func (r *TicketRepository) Respond(ctx context.Context, id, response string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE support_tickets
		SET admin_response = ?, updated_at = NOW()
		WHERE ticket_id = ?`,
		response, id)
	if err != nil {
		return fmt.Errorf("respond ticket: %w", err)
	}
	return nil
}

// UpdateStatus is conditional on the current status so concurrent admin
// sessions cannot skip over the transition table.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE support_tickets
		SET status = ?, updated_at = NOW()
		WHERE ticket_id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("update ticket status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
