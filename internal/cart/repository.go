package cart

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// Load returns nil, nil when nothing is stored under key and
	// ErrCorruptCartState when the stored value cannot be decoded.
	Load(ctx context.Context, key string) (*model.CartState, error)
	Save(ctx context.Context, key string, state model.CartState) error

	// Checkout handoff
	SaveHandoff(ctx context.Context, token string, items []model.CartItem, ttl time.Duration) error
	LoadHandoff(ctx context.Context, token string) ([]model.CartItem, error)
}
