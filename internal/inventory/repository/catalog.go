package repository

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
)

// ProductReader is the slice of product.UseCase the catalog-backed stock
// source needs.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// CatalogRepository answers stock lookups from the configured catalog source.
// Used when no dedicated stock service is configured.
type CatalogRepository struct {
	products ProductReader
}

func NewCatalogRepository(products ProductReader) *CatalogRepository {
	return &CatalogRepository{products: products}
}

func (r *CatalogRepository) FindStock(ctx context.Context, productID string) (*int, error) {
	p, err := r.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}
	stock := p.StockQuantity
	return &stock, nil
}
