// Package reqctx carries the authenticated caller through a request context.
package reqctx

import "context"

type identityKey struct{}

// Identity is the user and login session a request acts for.
type Identity struct {
	UserID    uint
	SessionID string
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != 0
}
