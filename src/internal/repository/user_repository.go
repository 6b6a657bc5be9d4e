package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
)

type UserRepository struct {
	DB mysql.DBInterface
}

func NewUserRepository(db mysql.DBInterface) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	query := `
		SELECT
			user_id,
			full_name,
			email,
			wallet_balance,
			account_level,
			is_disabled,
			created_at,
			updated_at
		FROM users
		WHERE user_id = ?
	`
	if err := db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
