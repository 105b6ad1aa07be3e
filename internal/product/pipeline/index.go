package pipeline

import (
	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Index is an immutable catalog snapshot with products pre-grouped by bucket,
// so a category-filtered query only scans that bucket. Results are identical
// to Apply over the same catalog.
type Index struct {
	catalog []model.Product
	buckets map[category.Bucket][]int
	byID    map[string]int
}

func NewIndex(catalog []model.Product) *Index {
	ix := &Index{
		catalog: make([]model.Product, len(catalog)),
		buckets: make(map[category.Bucket][]int),
		byID:    make(map[string]int, len(catalog)),
	}
	copy(ix.catalog, catalog)

	for i := range ix.catalog {
		b := category.Normalize(ix.catalog[i].Category)
		ix.buckets[b] = append(ix.buckets[b], i)
		ix.byID[ix.catalog[i].ID] = i
	}
	return ix
}

func (ix *Index) Len() int {
	return len(ix.catalog)
}

// Products returns a copy of the catalog in source order.
func (ix *Index) Products() []model.Product {
	out := make([]model.Product, len(ix.catalog))
	copy(out, ix.catalog)
	return out
}

func (ix *Index) Get(id string) (model.Product, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return ix.catalog[i], true
}

// Count is the number of products in bucket b; BucketAll counts everything.
func (ix *Index) Count(b category.Bucket) int {
	if b == category.BucketAll {
		return len(ix.catalog)
	}
	return len(ix.buckets[b])
}

// WithStock returns a new index where product id carries the given stock.
// The receiver is left untouched.
func (ix *Index) WithStock(id string, stock int) (*Index, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return ix, false
	}
	next := &Index{
		catalog: make([]model.Product, len(ix.catalog)),
		buckets: ix.buckets,
		byID:    ix.byID,
	}
	copy(next.catalog, ix.catalog)
	next.catalog[i].StockQuantity = stock
	return next, true
}

func (ix *Index) candidates(b category.Bucket) []model.Product {
	if b == "" || b == category.BucketAll {
		return ix.catalog
	}
	positions := ix.buckets[b]
	out := make([]model.Product, len(positions))
	for i, pos := range positions {
		out[i] = ix.catalog[pos]
	}
	return out
}

func (ix *Index) Apply(q FilterQuery, page, pageSize int) (Result, error) {
	if page < 1 || pageSize <= 0 {
		return Result{}, ErrInvalidPage
	}
	filtered := Filter(ix.candidates(q.Category), q)
	Sort(filtered, q.Sort)
	return Paginate(filtered, page, pageSize)
}
