// Package pipeline turns a product catalog and a FilterQuery into one page of
// results: filter, then stable sort, then slice.
package pipeline

import (
	"errors"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidPage       = errors.New("page must be at least 1 and page size greater than 0")
	ErrInvalidPriceRange = errors.New("minimum price cannot be greater than maximum price")
)

type SortKey string

const (
	SortNone      SortKey = "none"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortNameAsc   SortKey = "nameAsc"
)

// ParseSortKey accepts both the canonical keys and the storefront's select
// values (all, price-low, price-high, name). Unknown values mean no sorting.
func ParseSortKey(s string) SortKey {
	switch strings.TrimSpace(s) {
	case "priceAsc", "price-low":
		return SortPriceAsc
	case "priceDesc", "price-high":
		return SortPriceDesc
	case "nameAsc", "name":
		return SortNameAsc
	default:
		return SortNone
	}
}

// FilterQuery selects and orders catalog products. MaxPrice.Valid == false
// leaves the upper bound open.
type FilterQuery struct {
	SearchText string
	Category   category.Bucket
	MinPrice   decimal.Decimal
	MaxPrice   decimal.NullDecimal
	Sort       SortKey
}

func (q FilterQuery) Validate() error {
	if q.MaxPrice.Valid && q.MinPrice.GreaterThan(q.MaxPrice.Decimal) {
		return ErrInvalidPriceRange
	}
	return nil
}

type Result struct {
	Visible    []model.Product
	TotalCount int
	TotalPages int
}

// matcher holds the per-query values so the search text is normalized once.
type matcher struct {
	q      FilterQuery
	needle string
}

func newMatcher(q FilterQuery) matcher {
	return matcher{q: q, needle: strings.ToLower(strings.TrimSpace(q.SearchText))}
}

func (m matcher) match(p *model.Product) bool {
	if m.needle != "" && !strings.Contains(strings.ToLower(p.Name), m.needle) {
		return false
	}
	if m.q.Category != "" && m.q.Category != category.BucketAll && category.Normalize(p.Category) != m.q.Category {
		return false
	}
	// Products without a price never satisfy a numeric range.
	if !p.HasPrice() || p.Price.Decimal.LessThan(m.q.MinPrice) {
		return false
	}
	if m.q.MaxPrice.Valid && p.Price.Decimal.GreaterThan(m.q.MaxPrice.Decimal) {
		return false
	}
	return true
}

// Filter keeps the matching products in catalog order. The result never aliases catalog.
func Filter(catalog []model.Product, q FilterQuery) []model.Product {
	m := newMatcher(q)
	out := make([]model.Product, 0)
	for i := range catalog {
		if m.match(&catalog[i]) {
			out = append(out, catalog[i])
		}
	}
	return out
}

// Sort orders products in place. The sort is stable; SortNone is a no-op.
func Sort(products []model.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return priceLess(products[i].Price, products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return priceLess(products[j].Price, products[i].Price)
		})
	case SortNameAsc:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// priceLess orders absent prices after every present one.
func priceLess(a, b decimal.NullDecimal) bool {
	switch {
	case !a.Valid:
		return false
	case !b.Valid:
		return true
	default:
		return a.Decimal.LessThan(b.Decimal)
	}
}

// Paginate slices one page out of products. A page past the end is empty.
func Paginate(products []model.Product, page, pageSize int) (Result, error) {
	if page < 1 || pageSize <= 0 {
		return Result{}, ErrInvalidPage
	}

	total := len(products)
	res := Result{
		Visible:    make([]model.Product, 0),
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return res, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	res.Visible = append(res.Visible, products[start:end]...)
	return res, nil
}

// Apply runs filter, sort and paginate over the full catalog.
func Apply(catalog []model.Product, q FilterQuery, page, pageSize int) (Result, error) {
	if page < 1 || pageSize <= 0 {
		return Result{}, ErrInvalidPage
	}
	filtered := Filter(catalog, q)
	Sort(filtered, q.Sort)
	return Paginate(filtered, page, pageSize)
}
