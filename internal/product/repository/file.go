package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

// FileRepository serves a catalog exported as a JSON array, re-read on every call.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) FindAll(_ context.Context) ([]model.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return dto.DecodeCatalog(data)
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}
