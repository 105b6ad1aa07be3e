package inventory

import "context"

type Repository interface {
	// FindStock returns the stock level of productID, or nil when the
	// source does not know it.
	FindStock(ctx context.Context, productID string) (*int, error)
}
