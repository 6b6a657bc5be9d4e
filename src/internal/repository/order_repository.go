package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
)

type OrderRepository struct {
	DB mysql.DBInterface
}

func NewOrderRepository(db mysql.DBInterface) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

const orderColumns = `
	o.order_id,
	o.buyer_id,
	o.seller_id,
	o.account_id,
	o.game,
	o.title,
	o.price,
	o.status,
	o.account_details,
	o.created_at,
	o.updated_at
`

func (r *OrderRepository) FindOne(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE 1=1`
	args := []interface{}{}
	if filter.OrderID != nil {
		query += ` AND o.order_id = ?`
		args = append(args, *filter.OrderID)
	}
	if filter.BuyerID != nil {
		query += ` AND o.buyer_id = ?`
		args = append(args, *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query += ` AND o.seller_id = ?`
		args = append(args, *filter.SellerID)
	}
	if filter.Status != nil {
		query += ` AND o.status = ?`
		args = append(args, *filter.Status)
	}

	var order entity.Order
	if err := db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	// fail fast on rows carrying a status outside the closed set
	if _, err := entity.ParseOrderStatus(order.Status); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE 1=1`
	args := []interface{}{}
	if filter.BuyerID != nil {
		query += ` AND o.buyer_id = ?`
		args = append(args, *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query += ` AND o.seller_id = ?`
		args = append(args, *filter.SellerID)
	}
	if filter.Status != nil {
		query += ` AND o.status = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY o.created_at DESC`

	var orders []entity.Order
	if err := db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// AttachCredentials moves the order from `from` to `to` and stores the
// credentials payload in the same statement. Returns false when the order was
// not in `from` anymore (lost the race or already delivered).
func (r *OrderRepository) AttachCredentials(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, account_details = ?, updated_at = NOW()
		WHERE order_id = ? AND status = ?`,
		string(to), details, orderID, string(from))
	if err != nil {
		return false, fmt.Errorf("attach credentials: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdateStatus is the compare-and-set transition primitive.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = NOW()
		WHERE order_id = ? AND status = ?`,
		string(to), orderID, string(from))
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// CompleteAndCredit flips awaiting_confirmation to completed and releases the
// escrowed funds to the seller in one transaction. A lost CAS rolls back with
// no balance effect, so a double confirm can never double-credit.
func (r *OrderRepository) CompleteAndCredit(ctx context.Context, orderID, sellerID string, price float64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin complete tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = NOW()
		WHERE order_id = ? AND status = ?`,
		string(entity.OrderStatusCompleted), orderID, string(entity.OrderStatusAwaitingConfirmation))
	if err != nil {
		return false, fmt.Errorf("complete order: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users
		SET wallet_balance = wallet_balance + ?, updated_at = NOW()
		WHERE user_id = ?`,
		price, sellerID); err != nil {
		return false, fmt.Errorf("credit seller: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit complete tx: %w", err)
	}
	return true, nil
}

func (r *OrderRepository) SumCompletedValue(ctx context.Context, userID string) (float64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var total float64
	err = db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(price), 0)
		FROM orders
		WHERE status = ? AND (buyer_id = ? OR seller_id = ?)`,
		string(entity.OrderStatusCompleted), userID, userID)
	if err != nil {
		return 0, fmt.Errorf("sum completed value: %w", err)
	}
	return total, nil
}
