package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
	{"id":"1","name":"Hammer","price":{"$numberDecimal":"50"},"stockQuantity":3,"category":"Hand-Tools"},
	{"id":"2","name":"Nail","SellingPrice":2,"stockQuantity":100,"category":"fastener"}
]`

func TestRemoteRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			_, _ = w.Write([]byte(catalogJSON))
		case "/api/products/1":
			_, _ = w.Write([]byte(`{"id":"1","name":"Hammer","price":50,"stock":3}`))
		case "/api/products/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	repo := NewRemoteRepository(srv.URL+"/", time.Second)
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "50", products[0].Price.Decimal.String())
	assert.Equal(t, "2", products[1].Price.Decimal.String())

	p, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.StockQuantity)

	p, err = repo.FindByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = repo.FindByID(ctx, "broken")
	assert.Error(t, err)
}

func TestFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	repo := NewFileRepository(path)
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	p, err := repo.FindByID(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Nail", p.Name)

	p, err = repo.FindByID(ctx, "9")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewFileRepository(filepath.Join(t.TempDir(), "missing.json")).FindAll(ctx)
	assert.Error(t, err)
}
