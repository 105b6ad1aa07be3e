package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// UseCase operates on the cart stored under an owner key (see auth.Identity.CartKey).
// Mutations return the cart as it stands afterwards, also on failure, so the
// caller can always render it.
type UseCase interface {
	GetCart(ctx context.Context, key string) (*Store, error)
	AddItem(ctx context.Context, key string, input AddInput) (*Store, Reconciliation, error)
	UpdateQuantity(ctx context.Context, key, id string, quantity int) (*Store, Reconciliation, error)
	Increment(ctx context.Context, key, id string) (*Store, Reconciliation, error)
	Decrement(ctx context.Context, key, id string) (*Store, Reconciliation, error)
	RemoveItem(ctx context.Context, key, id string) (*Store, error)
	Clear(ctx context.Context, key string) (*Store, error)
	SetNotes(ctx context.Context, key, notes string) (*Store, error)

	// Checkout stores the selected lines under a fresh token. A nil
	// selectedIDs selects the whole cart.
	Checkout(ctx context.Context, key string, selectedIDs []string) (string, []model.CartItem, error)
	GetCheckout(ctx context.Context, token string) ([]model.CartItem, error)
}
