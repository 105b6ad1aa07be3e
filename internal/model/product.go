package model

import "github.com/shopspring/decimal"

// Product is a catalog entry after source normalization. Price is absent
// (Valid == false) when no candidate field held a parseable number.
type Product struct {
	ID            string              `db:"id" json:"id"`
	Name          string              `db:"name" json:"name"`
	Price         decimal.NullDecimal `db:"price" json:"price"`
	StockQuantity int                 `db:"stock_quantity" json:"stockQuantity"`
	Category      string              `db:"category" json:"category"`
	Image         string              `db:"image" json:"image,omitempty"`
}

func (p *Product) HasPrice() bool {
	return p.Price.Valid
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
