package dto

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	productdto "github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

const DefaultImage = "images/sanrico_logo_1.png"

// AddItemRequest is the payload dropped on the cart from a product card.
// Price may be a number, a numeric string or a {"$numberDecimal": ...} wrapper.
type AddItemRequest struct {
	ID            string          `json:"id" binding:"required"`
	Name          string          `json:"name"`
	Price         json.RawMessage `json:"price"`
	Image         string          `json:"image"`
	StockQuantity *int            `json:"stockQuantity"`
	Quantity      json.RawMessage `json:"quantity"`
}

func (r *AddItemRequest) ToInput() (cart.AddInput, error) {
	price, ok := productdto.ParseDecimal(r.Price)
	if !ok || price.IsNegative() {
		return cart.AddInput{}, cart.ErrInvalidItem
	}
	return cart.AddInput{
		ProductID: strings.TrimSpace(r.ID),
		Name:      r.Name,
		Price:     price,
		Image:     r.Image,
		Quantity:  ParseQuantity(r.Quantity),
	}, nil
}

type UpdateQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

// CheckoutRequest carries the selection; a missing selectedIds selects all.
type CheckoutRequest struct {
	SelectedIDs *[]string `json:"selectedIds"`
}

func (r *CheckoutRequest) Selected() []string {
	if r.SelectedIDs == nil {
		return nil
	}
	if *r.SelectedIDs == nil {
		return []string{}
	}
	return *r.SelectedIDs
}

// ParseQuantity reads a typed quantity. Anything that is not a whole number
// of at least 1 becomes 1.
func ParseQuantity(raw json.RawMessage) int {
	d, ok := productdto.ParseDecimal(raw)
	if !ok {
		return 1
	}
	n := d.Floor()
	if n.LessThan(decimal.NewFromInt(1)) {
		return 1
	}
	if n.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return math.MaxInt32
	}
	return int(n.IntPart())
}

// ImagePath resolves a stored image reference to a path the storefront can
// load: absolute and inline images pass through, bare file names live under
// images/.
func ImagePath(image string) string {
	if image == "" {
		return DefaultImage
	}
	if strings.HasPrefix(image, "http") || strings.HasPrefix(image, "data:") || strings.HasPrefix(image, "images/") {
		return image
	}
	return "images/" + image
}

type CartItemView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartItemView  `json:"items"`
	Notes string          `json:"notes"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func NewCartItemViews(items []model.CartItem) []CartItemView {
	out := make([]CartItemView, len(items))
	for i, it := range items {
		out[i] = CartItemView{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    ImagePath(it.Image),
			Subtotal: it.Subtotal(),
		}
	}
	return out
}

func NewCartView(s *cart.Store) CartView {
	return CartView{
		Items: NewCartItemViews(s.Items()),
		Notes: s.Notes(),
		Total: s.Total(),
		Count: s.Count(),
	}
}

type CheckoutResponse struct {
	Token string         `json:"token"`
	Items []CartItemView `json:"items"`
}
