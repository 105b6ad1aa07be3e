package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

const maxCatalogBody = 32 << 20

// RemoteRepository reads the catalog from an upstream products API
// (GET /api/products, GET /api/products/:id).
type RemoteRepository struct {
	baseURL string
	client  *http.Client
}

func NewRemoteRepository(baseURL string, timeout time.Duration) *RemoteRepository {
	return &RemoteRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *RemoteRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	body, status, err := r.get(ctx, "/api/products")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", status)
	}
	return dto.DecodeCatalog(body)
}

func (r *RemoteRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	body, status, err := r.get(ctx, "/api/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return dto.DecodeProduct(body)
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("catalog source returned status %d", status)
	}
}

func (r *RemoteRepository) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return body, resp.StatusCode, nil
}
