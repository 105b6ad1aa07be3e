package dto

import (
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ProductFilters is the untyped form of a catalog query, as it arrives from a
// query string or CLI flags.
type ProductFilters struct {
	SearchQuery string
	Category    string // bucket name or legacy slug
	MinPrice    string
	MaxPrice    string
	SortBy      string // all, price-low, price-high, name (or canonical keys)
	Page        int
	PageSize    int
}

// ToFilterQuery converts the filters the way the storefront reads its inputs:
// an unparseable or negative minimum means 0, an unparseable or non-positive
// maximum means no upper bound.
func (f *ProductFilters) ToFilterQuery() (pipeline.FilterQuery, error) {
	q := pipeline.FilterQuery{
		SearchText: strings.TrimSpace(f.SearchQuery),
		Category:   category.NormalizeRequested(strings.TrimSpace(f.Category)),
		MinPrice:   decimal.Zero,
		Sort:       pipeline.ParseSortKey(f.SortBy),
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(f.MinPrice)); err == nil && d.IsPositive() {
		q.MinPrice = d
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(f.MaxPrice)); err == nil && d.IsPositive() {
		q.MaxPrice = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	if err := q.Validate(); err != nil {
		return pipeline.FilterQuery{}, err
	}
	return q, nil
}

// Pagination clamps page to >= 1 and the page size into [1, MaxPageSize],
// falling back to DefaultPageSize.
func (f *ProductFilters) Pagination() (page, pageSize int) {
	page, pageSize = f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// ParseInt reads an optional integer query value.
func ParseInt(s string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return fallback
}

type ProductResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.NullDecimal `json:"price"`
	Stock         int                 `json:"stock"`
	StockQuantity int                 `json:"stockQuantity"`
	Category      string              `json:"category"`
	Bucket        category.Bucket     `json:"bucket"`
	Image         string              `json:"image,omitempty"`
	InStock       bool                `json:"inStock"`
}

func NewProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Stock:         p.StockQuantity,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		Bucket:        category.Normalize(p.Category),
		Image:         p.Image,
		InStock:       p.InStock(),
	}
}

func NewProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}
