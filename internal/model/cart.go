package model

import "github.com/shopspring/decimal"

type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is the persisted shape of a cart.
type CartState struct {
	Items []CartItem `json:"items"`
	Notes string     `json:"notes"`
}
