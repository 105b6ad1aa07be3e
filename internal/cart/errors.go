package cart

import "errors"

var (
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStockLimit       = errors.New("quantity already at stock limit")
	ErrItemNotFound     = errors.New("item not in cart")
	ErrNothingSelected  = errors.New("no items selected for checkout")
	ErrInvalidItem      = errors.New("invalid cart item")
	ErrHandoffNotFound  = errors.New("checkout handoff not found or expired")
	ErrCorruptCartState = errors.New("stored cart state is unreadable")
)
