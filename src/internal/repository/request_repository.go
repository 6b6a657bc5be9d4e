package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
)

type RequestRepository struct {
	DB mysql.DBInterface
}

func NewRequestRepository(db mysql.DBInterface) *RequestRepository {
	return &RequestRepository{
		DB: db,
	}
}

func tableFor(kind entity.RequestKind) string {
	if kind == entity.RequestKindWithdraw {
		return "withdraw_requests"
	}
	return "deposit_requests"
}

const requestColumns = `
	request_id,
	user_id,
	amount,
	phone_number,
	country,
	payment_method,
	instapay_user,
	receipt_image,
	status,
	admin_notes,
	created_at,
	updated_at
`

func (r *RequestRepository) Insert(ctx context.Context, kind entity.RequestKind, req *entity.WalletRequest) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (request_id, user_id, amount, phone_number, country, payment_method, instapay_user, receipt_image, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`, tableFor(kind))

	_, err = db.ExecContext(ctx, query,
		req.RequestID,
		req.UserID,
		req.Amount,
		req.PhoneNumber,
		req.Country,
		req.PaymentMethod,
		req.InstapayUser,
		req.ReceiptImage,
		req.Status,
	)
	if err != nil {
		return fmt.Errorf("insert %s request: %w", kind, err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, kind entity.RequestKind, id string) (*entity.WalletRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var req entity.WalletRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE request_id = ?`, requestColumns, tableFor(kind))
	if err := db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s request: %w", kind, err)
	}

	if _, err := entity.ParseRequestStatus(req.Status); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, kind entity.RequestKind, status string) ([]entity.WalletRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, requestColumns, tableFor(kind))
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var reqs []entity.WalletRequest
	if err := db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("list %s requests: %w", kind, err)
	}
	return reqs, nil
}

// ApproveAndAdjust flips the request to approved and applies the ledger side
// effect in one transaction. The status flip is conditional on pending, so a
// concurrent second approval loses the CAS and nothing is applied twice.
// Withdrawals floor the balance at zero.
func (r *RequestRepository) ApproveAndAdjust(ctx context.Context, kind entity.RequestKind, id, notes string) (*entity.WalletRequest, bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, false, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback()

	table := tableFor(kind)

	var req entity.WalletRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE request_id = ? FOR UPDATE`, requestColumns, table)
	if err := tx.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lock %s request: %w", kind, err)
	}

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET status = ?, admin_notes = ?, updated_at = NOW()
		WHERE request_id = ? AND status = ?`, table),
		string(entity.RequestStatusApproved), notes, id, string(entity.RequestStatusPending))
	if err != nil {
		return nil, false, fmt.Errorf("approve %s request: %w", kind, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		// already approved or rejected by someone else
		return &req, false, nil
	}

	balanceQuery := `
		UPDATE users
		SET wallet_balance = wallet_balance + ?, updated_at = NOW()
		WHERE user_id = ?`
	if kind == entity.RequestKindWithdraw {
		balanceQuery = `
		UPDATE users
		SET wallet_balance = GREATEST(wallet_balance - ?, 0), updated_at = NOW()
		WHERE user_id = ?`
	}
	if _, err := tx.ExecContext(ctx, balanceQuery, req.Amount, req.UserID); err != nil {
		return nil, false, fmt.Errorf("adjust balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit approve tx: %w", err)
	}

	req.Status = string(entity.RequestStatusApproved)
	return &req, true, nil
}

// Reject only flips status and records notes. No balance effect.
func (r *RequestRepository) Reject(ctx context.Context, kind entity.RequestKind, id, notes string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET status = ?, admin_notes = ?, updated_at = NOW()
		WHERE request_id = ? AND status = ?`, tableFor(kind)),
		string(entity.RequestStatusRejected), notes, id, string(entity.RequestStatusPending))
	if err != nil {
		return false, fmt.Errorf("reject %s request: %w", kind, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdateAdminNotes is the only mutation allowed after a decision.
func (r *RequestRepository) UpdateAdminNotes(ctx context.Context, kind entity.RequestKind, id, notes string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET admin_notes = ?, updated_at = NOW()
		WHERE request_id = ?`, tableFor(kind)),
		notes, id)
	if err != nil {
		return fmt.Errorf("update admin notes: %w", err)
	}
	return nil
}
