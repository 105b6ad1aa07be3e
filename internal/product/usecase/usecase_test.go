package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	products []model.Product
	calls    int
	err      error
}

func (f *fakeRepo) FindAll(_ context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func newRepo() *fakeRepo {
	return &fakeRepo{products: []model.Product{
		{ID: "1", Name: "Hammer", Price: price(50), StockQuantity: 3, Category: "hand-tools"},
		{ID: "2", Name: "Nail", Price: price(2), StockQuantity: 100, Category: "fastener"},
	}}
}

func newUseCase(repo product.Repository, ttl time.Duration) (*productUseCase, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := NewProductUseCase(repo, cache.NewMemory(), ttl, logger.NewNop()).(*productUseCase)
	uc.now = func() time.Time { return now }
	return uc, &now
}

func TestIndexIsCachedWithinTTL(t *testing.T) {
	repo := newRepo()
	uc, now := newUseCase(repo, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ix, err := uc.Index(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, ix.Len())
	}
	assert.Equal(t, 1, repo.Calls())

	// The snapshot expires on the use case clock; the shared cache entry
	// is still live, so the rebuild does not reach the repository.
	*now = now.Add(2 * time.Minute)
	ix, err := uc.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, 1, repo.Calls())
}

func TestBrowse(t *testing.T) {
	uc, _ := newUseCase(newRepo(), time.Minute)
	ctx := context.Background()

	res, err := uc.Browse(ctx, pipeline.FilterQuery{Sort: pipeline.SortPriceAsc}, 1, 12)
	require.NoError(t, err)
	require.Len(t, res.Visible, 2)
	assert.Equal(t, "Nail", res.Visible[0].Name)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)

	_, err = uc.Browse(ctx, pipeline.FilterQuery{
		MinPrice: decimal.NewFromInt(10),
		MaxPrice: price(5),
	}, 1, 12)
	assert.ErrorIs(t, err, pipeline.ErrInvalidPriceRange)

	_, err = uc.Browse(ctx, pipeline.FilterQuery{}, 0, 12)
	assert.ErrorIs(t, err, pipeline.ErrInvalidPage)
}

func TestGetProduct(t *testing.T) {
	uc, _ := newUseCase(newRepo(), time.Minute)

	p, err := uc.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Hammer", p.Name)

	_, err = uc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestUpdateStock(t *testing.T) {
	uc, _ := newUseCase(newRepo(), time.Minute)
	ctx := context.Background()

	before, err := uc.Index(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStock(ctx, "1", 0))

	after, err := uc.Index(ctx)
	require.NoError(t, err)
	p, ok := after.Get("1")
	require.True(t, ok)
	assert.Equal(t, 0, p.StockQuantity)

	old, _ := before.Get("1")
	assert.Equal(t, 3, old.StockQuantity, "earlier snapshots are immutable")

	err = uc.UpdateStock(ctx, "nope", 4)
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	require.NoError(t, uc.UpdateStock(ctx, "2", -5))
	after, _ = uc.Index(ctx)
	p, _ = after.Get("2")
	assert.Equal(t, 0, p.StockQuantity)
}

func TestStaleSnapshotServedOnReloadFailure(t *testing.T) {
	repo := newRepo()
	uc, now := newUseCase(repo, time.Minute)
	ctx := context.Background()

	_, err := uc.Index(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.cache.Delete(ctx, catalogCacheKey))
	repo.mu.Lock()
	repo.err = errors.New("upstream down")
	repo.mu.Unlock()
	*now = now.Add(time.Hour)

	ix, err := uc.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())
}

func TestFirstLoadFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("upstream down")}
	uc, _ := newUseCase(repo, time.Minute)

	_, err := uc.ListProducts(context.Background())
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo := newRepo()
	uc, _ := newUseCase(repo, time.Minute)
	ctx := context.Background()

	_, err := uc.Index(ctx)
	require.NoError(t, err)

	repo.mu.Lock()
	repo.products = append(repo.products, model.Product{ID: "3", Name: "Saw", Price: price(30)})
	repo.mu.Unlock()

	require.NoError(t, uc.Refresh(ctx))
	products, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, 2, repo.Calls())
}
