package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"go.uber.org/zap"
)

const catalogCacheKey = "products:catalog"

type productUseCase struct {
	repo   product.Repository
	cache  cache.Store
	logger logger.ZapLogger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	index    *pipeline.Index
	loadedAt time.Time
}

// NewProductUseCase serves the catalog from an in-process snapshot that is
// rebuilt once it is older than ttl. The shared cache lets several instances
// reuse one upstream fetch.
func NewProductUseCase(repo product.Repository, cache cache.Store, ttl time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	ix, err := uc.Index(ctx)
	if err != nil {
		return nil, err
	}
	return ix.Products(), nil
}

// GetProduct always goes to the source so stock is live.
func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) Browse(ctx context.Context, q pipeline.FilterQuery, page, pageSize int) (*pipeline.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ix, err := uc.Index(ctx)
	if err != nil {
		return nil, err
	}
	res, err := ix.Apply(q, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (uc *productUseCase) Index(ctx context.Context) (*pipeline.Index, error) {
	uc.mu.RLock()
	ix, fresh := uc.index, uc.fresh()
	uc.mu.RUnlock()
	if ix != nil && fresh {
		return ix, nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.index != nil && uc.fresh() {
		return uc.index, nil
	}

	products, err := uc.load(ctx)
	if err != nil {
		if uc.index != nil {
			// Serve the stale snapshot rather than failing every page view.
			uc.logger.Warn("catalog reload failed, serving stale snapshot", zap.Error(err))
			return uc.index, nil
		}
		return nil, err
	}

	uc.index = pipeline.NewIndex(products)
	uc.loadedAt = uc.now()
	uc.logger.Info("catalog snapshot loaded", zap.Int("products", uc.index.Len()))
	return uc.index, nil
}

func (uc *productUseCase) fresh() bool {
	return uc.ttl > 0 && uc.now().Sub(uc.loadedAt) < uc.ttl
}

func (uc *productUseCase) load(ctx context.Context) ([]model.Product, error) {
	// 1. Check Cache
	val, err := uc.cache.Get(ctx, catalogCacheKey)
	if err == nil {
		var products []model.Product
		if err := json.Unmarshal(val, &products); err == nil {
			return products, nil
		}
		uc.logger.Warn("discarding unreadable catalog cache entry")
	} else if !errors.Is(err, cache.ErrMiss) {
		uc.logger.Warn("catalog cache read failed", zap.Error(err))
	}

	// 2. Source
	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// 3. Set Cache
	if data, err := json.Marshal(products); err == nil {
		if err := uc.cache.Set(ctx, catalogCacheKey, data, uc.ttl); err != nil {
			uc.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

// UpdateStock applies a stock change to the current snapshot and drops the
// shared cache entry so other instances refetch.
func (uc *productUseCase) UpdateStock(ctx context.Context, productID string, stock int) error {
	if stock < 0 {
		stock = 0
	}

	uc.mu.Lock()
	if uc.index != nil {
		next, ok := uc.index.WithStock(productID, stock)
		if !ok {
			uc.mu.Unlock()
			return fmt.Errorf("update stock %q: %w", productID, product.ErrProductNotFound)
		}
		uc.index = next
	}
	uc.mu.Unlock()

	if err := uc.cache.Delete(ctx, catalogCacheKey); err != nil {
		uc.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
	return nil
}

// Refresh forces the next read to go back to the source.
func (uc *productUseCase) Refresh(ctx context.Context) error {
	uc.mu.Lock()
	uc.loadedAt = time.Time{}
	uc.mu.Unlock()

	if err := uc.cache.Delete(ctx, catalogCacheKey); err != nil {
		return err
	}
	_, err := uc.Index(ctx)
	return err
}
