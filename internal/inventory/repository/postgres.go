package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindStock(ctx context.Context, productID string) (*int, error) {
	var stock int
	query := `SELECT GREATEST(stock_quantity, 0) FROM products WHERE id = $1 AND is_active = TRUE`
	err := r.DB.GetContext(ctx, &stock, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}
