package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const handoffPrefix = "checkoutItems:"

// KVRepository keeps carts as JSON {items, notes} in a keyed store. Carts do
// not expire; handoffs do.
type KVRepository struct {
	store cache.Store
}

func NewKVRepository(store cache.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Load(ctx context.Context, key string) (*model.CartState, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", cart.ErrCorruptCartState, err)
	}
	return &state, nil
}

func (r *KVRepository) Save(ctx context.Context, key string, state model.CartState) error {
	if state.Items == nil {
		state.Items = []model.CartItem{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, data, 0)
}

func (r *KVRepository) SaveHandoff(ctx context.Context, token string, items []model.CartItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, handoffPrefix+token, data, ttl)
}

func (r *KVRepository) LoadHandoff(ctx context.Context, token string) ([]model.CartItem, error) {
	data, err := r.store.Get(ctx, handoffPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, cart.ErrHandoffNotFound
		}
		return nil, err
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode checkout handoff: %w", err)
	}
	return items, nil
}
