package inventory

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the stock source does not know the product.
	ErrNotFound = errors.New("product not found in stock source")
	// ErrNetwork means the stock source could not be reached or answered with
	// a server error. It is never a stock level of zero.
	ErrNetwork = errors.New("stock source unavailable")
)

// StockLookup fetches the current stock level of one product.
type StockLookup interface {
	FetchStock(ctx context.Context, productID string) (int, error)
}
