package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type ctxKey struct{}

// Identity is who owns the cart for a request: a signed-in user, or a guest
// session when UserID is empty.
type Identity struct {
	UserID  string
	GuestID string
}

func (id Identity) IsGuest() bool {
	return id.UserID == ""
}

// CartKey is the storage key of the identity's cart. Guests get their own
// namespace so a guest id can never collide with a user id.
func (id Identity) CartKey() string {
	if id.UserID != "" {
		return "cart_" + id.UserID
	}
	return "cart_guest_" + id.GuestID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// GetUserID reads the user set by the HTTP middleware, falling back to the
// x-user-id metadata forwarded by the gateway on gRPC calls.
func GetUserID(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok && id.UserID != "" {
		return id.UserID
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-user-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
