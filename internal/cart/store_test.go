package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo stores carts as JSON, like the real repositories do.
type memRepo struct {
	data    map[string][]byte
	saveErr error
	loadErr error
	saves   int
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string][]byte)}
}

func (r *memRepo) Load(_ context.Context, key string) (*model.CartState, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	raw, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	var s model.CartState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCartState, err)
	}
	return &s, nil
}

func (r *memRepo) Save(_ context.Context, key string, s model.CartState) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.data[key] = raw
	r.saves++
	return nil
}

func (r *memRepo) SaveHandoff(context.Context, string, []model.CartItem, time.Duration) error {
	return nil
}

func (r *memRepo) LoadHandoff(context.Context, string) ([]model.CartItem, error) {
	return nil, ErrHandoffNotFound
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func hammer(qty, stock int) AddInput {
	return AddInput{ProductID: "1", Name: "Hammer", Price: decimal.NewFromInt(50), Quantity: qty, AvailableStock: stock}
}

func nail(qty, stock int) AddInput {
	return AddInput{ProductID: "2", Name: "Nail", Price: decimal.RequireFromString("2.50"), Quantity: qty, AvailableStock: stock}
}

func newStore(t *testing.T) (*Store, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return LoadStore(context.Background(), repo, "cart_u1", logger.NewNop()), repo
}

func TestAddOrIncrement(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	rec, err := s.AddOrIncrement(ctx, hammer(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Item.Quantity)
	assert.False(t, rec.Clamped)

	rec, err = s.AddOrIncrement(ctx, hammer(5, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Item.Quantity)
	assert.Equal(t, 6, rec.Requested)
	assert.True(t, rec.Clamped)

	rec, err = s.AddOrIncrement(ctx, nail(0, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Item.Quantity, "sub-1 quantities are coerced to 1")

	require.Len(t, s.Items(), 2)
	assert.Equal(t, []string{"1", "2"}, s.IDs())
	assert.Equal(t, 3, repo.saves)
	assert.True(t, decimal.RequireFromString("152.50").Equal(s.Total()))
	assert.Equal(t, 4, s.Count())
}

func TestAddOrIncrementOutOfStock(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	_, err := s.AddOrIncrement(ctx, hammer(1, 0))
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Zero(t, s.Len())
	assert.Zero(t, repo.saves)

	_, err = s.AddOrIncrement(ctx, AddInput{ProductID: " ", Price: decimal.NewFromInt(1), Quantity: 1, AvailableStock: 1})
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = s.AddOrIncrement(ctx, AddInput{ProductID: "x", Price: decimal.NewFromInt(-1), Quantity: 1, AvailableStock: 1})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, err := s.AddOrIncrement(ctx, hammer(1, 3))
	require.NoError(t, err)

	rec, err := s.UpdateQuantity(ctx, "1", 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Item.Quantity)
	assert.True(t, rec.Clamped)

	rec, err = s.UpdateQuantity(ctx, "1", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Item.Quantity)
	assert.False(t, rec.Clamped)

	for _, requested := range []int{0, -4} {
		rec, err = s.UpdateQuantity(ctx, "1", requested, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Item.Quantity)
		assert.False(t, rec.Clamped)
	}

	_, err = s.UpdateQuantity(ctx, "missing", 1, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateQuantityOutOfStockLeavesCartUnchanged(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	_, err := s.AddOrIncrement(ctx, hammer(2, 3))
	require.NoError(t, err)
	saves := repo.saves

	_, err = s.UpdateQuantity(ctx, "1", 1, 0)
	assert.ErrorIs(t, err, ErrOutOfStock)

	it, ok := s.Item("1")
	require.True(t, ok)
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, saves, repo.saves)
}

func TestUpdateQuantityStaysInRange(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, err := s.AddOrIncrement(ctx, hammer(1, 1))
	require.NoError(t, err)

	for stock := 1; stock <= 6; stock++ {
		for requested := -2; requested <= 8; requested++ {
			rec, err := s.UpdateQuantity(ctx, "1", requested, stock)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rec.Item.Quantity, 1)
			assert.LessOrEqual(t, rec.Item.Quantity, stock)
		}
	}
}

func TestRemoveClearAndNotes(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, _ = s.AddOrIncrement(ctx, hammer(1, 3))
	_, _ = s.AddOrIncrement(ctx, nail(1, 3))

	require.NoError(t, s.SetNotes(ctx, "ring twice"))
	require.NoError(t, s.RemoveItem(ctx, "1"))
	require.NoError(t, s.RemoveItem(ctx, "1"))
	assert.Equal(t, []string{"2"}, s.IDs())
	assert.Equal(t, "ring twice", s.Notes())

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Notes())
	assert.True(t, s.Total().IsZero())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	_, _ = s.AddOrIncrement(ctx, nail(4, 10))
	_, _ = s.AddOrIncrement(ctx, AddInput{ProductID: "3", Name: "Roller", Price: decimal.RequireFromString("12.99"), Image: "images/roller.png", Quantity: 1, AvailableStock: 5})
	_, _ = s.AddOrIncrement(ctx, hammer(2, 3))
	require.NoError(t, s.SetNotes(ctx, "call first"))

	loaded := LoadStore(ctx, repo, "cart_u1", logger.NewNop())
	if diff := cmp.Diff(s.Items(), loaded.Items(), decimalEqual); diff != "" {
		t.Errorf("items differ after reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, "call first", loaded.Notes())

	guest := LoadStore(ctx, repo, "cart_guest_u1", logger.NewNop())
	assert.Zero(t, guest.Len())
}

func TestLoadStoreNeverFails(t *testing.T) {
	repo := newMemRepo()
	ctx := context.Background()

	repo.data["cart_u1"] = []byte("not json")
	s := LoadStore(ctx, repo, "cart_u1", logger.NewNop())
	assert.Zero(t, s.Len())
	assert.NotNil(t, s.Items())

	repo.data["cart_u2"] = []byte(`{"items":[{"id":"1","name":"A","price":"1","quantity":0},{"id":"1","quantity":3},{"id":"","quantity":1}],"notes":"n"}`)
	s = LoadStore(ctx, repo, "cart_u2", logger.NewNop())
	require.Equal(t, 1, s.Len())
	it, _ := s.Item("1")
	assert.Equal(t, 1, it.Quantity)

	repo.loadErr = errors.New("redis: connection refused")
	s = LoadStore(ctx, repo, "cart_u1", logger.NewNop())
	assert.Zero(t, s.Len())
}

func TestFailedSaveLeavesCartUnchanged(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	_, err := s.AddOrIncrement(ctx, hammer(1, 3))
	require.NoError(t, err)

	repo.saveErr = errors.New("redis: timeout")
	_, err = s.AddOrIncrement(ctx, nail(1, 3))
	assert.Error(t, err)
	_, err = s.UpdateQuantity(ctx, "1", 3, 3)
	assert.Error(t, err)
	assert.Error(t, s.Clear(ctx))

	assert.Equal(t, []string{"1"}, s.IDs())
	it, _ := s.Item("1")
	assert.Equal(t, 1, it.Quantity)
}
