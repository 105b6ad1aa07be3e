package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddInput is a product dropped into the cart together with the stock level
// it was checked against.
type AddInput struct {
	ProductID      string
	Name           string
	Price          decimal.Decimal
	Image          string
	Quantity       int
	AvailableStock int
}

// Reconciliation is the outcome of fitting a requested quantity to stock.
// Clamped is set when the stored quantity differs from Requested.
type Reconciliation struct {
	Item      model.CartItem
	Requested int
	Clamped   bool
}

// Store is one owner's cart. Every mutation persists the whole state under the
// owner key before it becomes visible; a failed save leaves the cart as it was.
type Store struct {
	key    string
	repo   Repository
	logger logger.ZapLogger
	state  model.CartState
}

// LoadStore reads the cart stored under key. Missing or unreadable state
// yields an empty cart; the failure is logged, never returned.
func LoadStore(ctx context.Context, repo Repository, key string, log logger.ZapLogger) *Store {
	s := &Store{key: key, repo: repo, logger: log}

	state, err := repo.Load(ctx, key)
	switch {
	case err != nil && errors.Is(err, ErrCorruptCartState):
		log.Warn("discarding unreadable cart state", zap.String("cart_key", key), zap.Error(err))
	case err != nil:
		log.Error("failed to load cart", zap.String("cart_key", key), zap.Error(err))
	case state != nil:
		s.state = sanitize(*state)
	}
	if s.state.Items == nil {
		s.state.Items = []model.CartItem{}
	}
	return s
}

// sanitize drops lines that could not have been written by this store
// (blank or duplicate ids) and lifts quantities below 1.
func sanitize(state model.CartState) model.CartState {
	out := model.CartState{Notes: state.Notes, Items: make([]model.CartItem, 0, len(state.Items))}
	seen := make(map[string]struct{}, len(state.Items))
	for _, it := range state.Items {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		out.Items = append(out.Items, it)
	}
	return out
}

func (s *Store) Key() string {
	return s.key
}

// Items returns the lines in insertion order.
func (s *Store) Items() []model.CartItem {
	out := make([]model.CartItem, len(s.state.Items))
	copy(out, s.state.Items)
	return out
}

func (s *Store) Item(id string) (model.CartItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.state.Items[i], true
	}
	return model.CartItem{}, false
}

func (s *Store) Notes() string {
	return s.state.Notes
}

func (s *Store) Len() int {
	return len(s.state.Items)
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	n := 0
	for _, it := range s.state.Items {
		n += it.Quantity
	}
	return n
}

func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.state.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Store) IDs() []string {
	ids := make([]string, len(s.state.Items))
	for i, it := range s.state.Items {
		ids[i] = it.ID
	}
	return ids
}

func (s *Store) indexOf(id string) int {
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clone() model.CartState {
	next := model.CartState{Notes: s.state.Notes, Items: make([]model.CartItem, len(s.state.Items))}
	copy(next.Items, s.state.Items)
	return next
}

func (s *Store) commit(ctx context.Context, next model.CartState) error {
	if err := s.repo.Save(ctx, s.key, next); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.state = next
	return nil
}

// AddOrIncrement adds a product or raises the quantity of its existing line,
// never past AvailableStock.
func (s *Store) AddOrIncrement(ctx context.Context, in AddInput) (Reconciliation, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.ProductID == "" || in.Price.IsNegative() {
		return Reconciliation{}, ErrInvalidItem
	}
	if in.AvailableStock <= 0 {
		return Reconciliation{}, ErrOutOfStock
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	next := s.clone()
	var (
		item      model.CartItem
		requested int
	)
	if i := s.indexOf(in.ProductID); i >= 0 {
		requested = next.Items[i].Quantity + in.Quantity
		next.Items[i].Quantity = min(requested, in.AvailableStock)
		item = next.Items[i]
	} else {
		requested = in.Quantity
		item = model.CartItem{
			ID:       in.ProductID,
			Name:     in.Name,
			Price:    in.Price,
			Quantity: min(requested, in.AvailableStock),
			Image:    in.Image,
		}
		next.Items = append(next.Items, item)
	}

	if err := s.commit(ctx, next); err != nil {
		return Reconciliation{}, err
	}
	return Reconciliation{Item: item, Requested: requested, Clamped: item.Quantity != requested}, nil
}

// UpdateQuantity sets a line to requested clamped into [1, stock]. Quantities
// below 1 are treated as 1; the line is never removed.
func (s *Store) UpdateQuantity(ctx context.Context, id string, requested, stock int) (Reconciliation, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Reconciliation{}, ErrItemNotFound
	}
	if stock <= 0 {
		return Reconciliation{}, ErrOutOfStock
	}
	if requested < 1 {
		requested = 1
	}

	next := s.clone()
	next.Items[i].Quantity = max(1, min(requested, stock))
	item := next.Items[i]

	if err := s.commit(ctx, next); err != nil {
		return Reconciliation{}, err
	}
	return Reconciliation{Item: item, Requested: requested, Clamped: item.Quantity != requested}, nil
}

// RemoveItem deletes the line; removing an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := s.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	return s.commit(ctx, next)
}

// Clear empties the lines and the notes.
func (s *Store) Clear(ctx context.Context) error {
	return s.commit(ctx, model.CartState{Items: []model.CartItem{}})
}

func (s *Store) SetNotes(ctx context.Context, notes string) error {
	next := s.clone()
	next.Notes = notes
	return s.commit(ctx, next)
}
