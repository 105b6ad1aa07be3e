package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	// ListBuckets returns "all" followed by every concrete bucket in sidebar
	// order, each with its product count.
	ListBuckets(ctx context.Context) ([]model.BucketCount, error)
	Resolve(slug string) Bucket
}
