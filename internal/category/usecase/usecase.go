package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"go.uber.org/zap"
)

// IndexSource hands out the current catalog snapshot. product.UseCase satisfies it.
type IndexSource interface {
	Index(ctx context.Context) (*pipeline.Index, error)
}

type categoryUseCase struct {
	catalog IndexSource
	logger  logger.ZapLogger
}

func NewCategoryUseCase(catalog IndexSource, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		catalog: catalog,
		logger:  log,
	}
}

func (uc *categoryUseCase) ListBuckets(ctx context.Context) ([]model.BucketCount, error) {
	ix, err := uc.catalog.Index(ctx)
	if err != nil {
		uc.logger.Error("failed to load catalog for bucket counts", zap.Error(err))
		return nil, err
	}

	buckets := category.Buckets()
	counts := make([]model.BucketCount, 0, len(buckets)+1)
	counts = append(counts, model.BucketCount{Bucket: category.BucketAll.String(), Count: ix.Count(category.BucketAll)})
	for _, b := range buckets {
		counts = append(counts, model.BucketCount{Bucket: b.String(), Count: ix.Count(b)})
	}
	return counts, nil
}

func (uc *categoryUseCase) Resolve(slug string) category.Bucket {
	return category.NormalizeRequested(strings.TrimSpace(slug))
}
