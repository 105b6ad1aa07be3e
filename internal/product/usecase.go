package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
)

var ErrProductNotFound = errors.New("product not found")

type UseCase interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	Browse(ctx context.Context, q pipeline.FilterQuery, page, pageSize int) (*pipeline.Result, error)
	Index(ctx context.Context) (*pipeline.Index, error)

	// Stock ops
	UpdateStock(ctx context.Context, productID string, stock int) error
	Refresh(ctx context.Context) error
}
