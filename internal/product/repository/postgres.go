package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// productRow mirrors the products table. Both price columns are nullable;
// selling_price wins when present.
type productRow struct {
	ID            string              `db:"id"`
	Name          string              `db:"name"`
	SellingPrice  decimal.NullDecimal `db:"selling_price"`
	Price         decimal.NullDecimal `db:"price"`
	StockQuantity int                 `db:"stock_quantity"`
	Category      sql.NullString      `db:"category"`
	Image         sql.NullString      `db:"image"`
}

func (r productRow) toModel() model.Product {
	price := r.SellingPrice
	if !price.Valid {
		price = r.Price
	}
	stock := r.StockQuantity
	if stock < 0 {
		stock = 0
	}
	return model.Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         price,
		StockQuantity: stock,
		Category:      r.Category.String,
		Image:         r.Image.String,
	}
}

const selectProducts = `
    SELECT id, name, selling_price, price, stock_quantity, category, image
    FROM products
`

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	query := selectProducts + ` WHERE is_active = TRUE ORDER BY created_at, id`
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	products := make([]model.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toModel()
	}
	return products, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	query := selectProducts + ` WHERE id = $1 AND is_active = TRUE LIMIT 1`
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p := row.toModel()
	return &p, nil
}
