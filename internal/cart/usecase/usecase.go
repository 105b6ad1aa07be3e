package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultHandoffTTL = 30 * time.Minute

type cartUseCase struct {
	repo       cart.Repository
	stock      inventory.StockLookup
	logger     logger.ZapLogger
	handoffTTL time.Duration
}

func NewCartUseCase(repo cart.Repository, stock inventory.StockLookup, handoffTTL time.Duration, log logger.ZapLogger) cart.UseCase {
	if handoffTTL <= 0 {
		handoffTTL = DefaultHandoffTTL
	}
	return &cartUseCase{
		repo:       repo,
		stock:      stock,
		logger:     log,
		handoffTTL: handoffTTL,
	}
}

func (uc *cartUseCase) load(ctx context.Context, key string) *cart.Store {
	return cart.LoadStore(ctx, uc.repo, key, uc.logger)
}

func (uc *cartUseCase) GetCart(ctx context.Context, key string) (*cart.Store, error) {
	return uc.load(ctx, key), nil
}

// AddItem checks live stock before adding; the stock carried by the dropped
// payload is not trusted.
func (uc *cartUseCase) AddItem(ctx context.Context, key string, input cart.AddInput) (*cart.Store, cart.Reconciliation, error) {
	s := uc.load(ctx, key)

	stock, err := uc.stock.FetchStock(ctx, input.ProductID)
	if err != nil {
		return s, cart.Reconciliation{}, fmt.Errorf("add %q: %w", input.ProductID, err)
	}
	input.AvailableStock = stock

	rec, err := s.AddOrIncrement(ctx, input)
	if err != nil {
		return s, cart.Reconciliation{}, fmt.Errorf("add %q: %w", input.ProductID, err)
	}
	return s, rec, nil
}

// UpdateQuantity reconciles a typed quantity against live stock. A failed
// lookup leaves the committed quantity untouched.
func (uc *cartUseCase) UpdateQuantity(ctx context.Context, key, id string, quantity int) (*cart.Store, cart.Reconciliation, error) {
	s := uc.load(ctx, key)
	rec, err := uc.reconcile(ctx, s, id, quantity)
	return s, rec, err
}

func (uc *cartUseCase) reconcile(ctx context.Context, s *cart.Store, id string, quantity int) (cart.Reconciliation, error) {
	if _, ok := s.Item(id); !ok {
		return cart.Reconciliation{}, cart.ErrItemNotFound
	}

	stock, err := uc.stock.FetchStock(ctx, id)
	if err != nil {
		return cart.Reconciliation{}, fmt.Errorf("update %q: %w", id, err)
	}

	rec, err := s.UpdateQuantity(ctx, id, quantity, stock)
	if err != nil {
		return cart.Reconciliation{}, fmt.Errorf("update %q: %w", id, err)
	}
	if rec.Clamped {
		uc.logger.Debug("quantity clamped to stock",
			zap.String("product_id", id),
			zap.Int("requested", rec.Requested),
			zap.Int("stock", stock),
		)
	}
	return rec, nil
}

// Increment adds one unit unless the line already holds all available stock.
func (uc *cartUseCase) Increment(ctx context.Context, key, id string) (*cart.Store, cart.Reconciliation, error) {
	s := uc.load(ctx, key)
	it, ok := s.Item(id)
	if !ok {
		return s, cart.Reconciliation{}, cart.ErrItemNotFound
	}

	stock, err := uc.stock.FetchStock(ctx, id)
	if err != nil {
		return s, cart.Reconciliation{}, fmt.Errorf("increment %q: %w", id, err)
	}
	if it.Quantity >= stock {
		return s, cart.Reconciliation{Item: it, Requested: it.Quantity + 1}, cart.ErrStockLimit
	}

	rec, err := s.UpdateQuantity(ctx, id, it.Quantity+1, stock)
	if err != nil {
		return s, cart.Reconciliation{}, fmt.Errorf("increment %q: %w", id, err)
	}
	return s, rec, nil
}

// Decrement removes one unit but never goes below 1; a line at 1 is left alone.
func (uc *cartUseCase) Decrement(ctx context.Context, key, id string) (*cart.Store, cart.Reconciliation, error) {
	s := uc.load(ctx, key)
	it, ok := s.Item(id)
	if !ok {
		return s, cart.Reconciliation{}, cart.ErrItemNotFound
	}
	if it.Quantity <= 1 {
		return s, cart.Reconciliation{Item: it, Requested: it.Quantity}, nil
	}
	rec, err := uc.reconcile(ctx, s, id, it.Quantity-1)
	return s, rec, err
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, key, id string) (*cart.Store, error) {
	s := uc.load(ctx, key)
	return s, s.RemoveItem(ctx, id)
}

func (uc *cartUseCase) Clear(ctx context.Context, key string) (*cart.Store, error) {
	s := uc.load(ctx, key)
	return s, s.Clear(ctx)
}

func (uc *cartUseCase) SetNotes(ctx context.Context, key, notes string) (*cart.Store, error) {
	s := uc.load(ctx, key)
	return s, s.SetNotes(ctx, notes)
}

func (uc *cartUseCase) Checkout(ctx context.Context, key string, selectedIDs []string) (string, []model.CartItem, error) {
	s := uc.load(ctx, key)
	items := s.Items()

	sel := cart.NewSelection(s.IDs())
	if selectedIDs != nil {
		sel.SelectAll(selectedIDs)
	}
	selected, err := sel.Checkout(items)
	if err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	if err := uc.repo.SaveHandoff(ctx, token, selected, uc.handoffTTL); err != nil {
		uc.logger.Error("failed to store checkout handoff", zap.String("cart_key", key), zap.Error(err))
		return "", nil, fmt.Errorf("failed to store checkout handoff: %w", err)
	}

	uc.logger.Info("checkout handoff created",
		zap.String("cart_key", key),
		zap.Int("items", len(selected)),
	)
	return token, selected, nil
}

func (uc *cartUseCase) GetCheckout(ctx context.Context, token string) ([]model.CartItem, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, cart.ErrHandoffNotFound
	}
	return uc.repo.LoadHandoff(ctx, token)
}
