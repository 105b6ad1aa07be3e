// Package notify turns cart and stock outcomes into the short toasts the
// storefront shows after each action.
package notify

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

type Toast struct {
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

const (
	MsgItemAdded       = "Item added to cart"
	MsgItemRemoved     = "Item removed from cart"
	MsgCartCleared     = "Cart cleared"
	MsgNotesUpdated    = "Notes updated"
	MsgOutOfStock      = "This product is out of stock."
	MsgStockLimit      = "Sorry, this item is out of stock!"
	MsgUpdateFailed    = "Error updating quantity. Please try again."
	MsgNothingSelected = "Please select at least one item to checkout."
	MsgItemNotFound    = "This item is no longer in your cart."
	MsgCheckoutReady   = "Proceeding to checkout"
)

func New(t Type, message string) *Toast {
	return &Toast{Message: message, Type: t}
}

func Success(message string) *Toast { return New(TypeSuccess, message) }
func Info(message string) *Toast    { return New(TypeInfo, message) }

// Clamped reports a quantity that was lowered to the available stock.
func Clamped(quantity int) *Toast {
	return New(TypeWarning, fmt.Sprintf("Quantity adjusted to %d (stock limit reached)", quantity))
}

// FromError maps a cart or stock failure to a toast. Unknown errors get the
// generic retry message; internal error text is never shown.
func FromError(err error) *Toast {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cart.ErrOutOfStock):
		return New(TypeWarning, MsgOutOfStock)
	case errors.Is(err, cart.ErrStockLimit):
		return New(TypeWarning, MsgStockLimit)
	case errors.Is(err, cart.ErrNothingSelected):
		return New(TypeInfo, MsgNothingSelected)
	case errors.Is(err, cart.ErrItemNotFound):
		return New(TypeError, MsgItemNotFound)
	case errors.Is(err, inventory.ErrNotFound):
		return New(TypeError, MsgOutOfStock)
	default:
		return New(TypeError, MsgUpdateFailed)
	}
}
