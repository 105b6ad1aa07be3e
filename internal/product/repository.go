package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Repository is a catalog source. FindByID returns (nil, nil) when the product does not exist.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
