// ABOUTME: Context propagation for verified and provisional identities
// ABOUTME: Provides WithIdentity/FromContext used by middleware and handlers

package auth

import (
	"context"
)

// identityKey is the key type for storing an Identity in context.Context.
type identityKey struct{}

// provisionalKey is the key type for storing a ProvisionalIdentity.
type provisionalKey struct{}

// WithIdentity returns a new context with the verified identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the verified identity, returning nil if not present.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// WithProvisional returns a new context with a provisional identity attached.
func WithProvisional(ctx context.Context, id *ProvisionalIdentity) context.Context {
	return context.WithValue(ctx, provisionalKey{}, id)
}

// ProvisionalFromContext retrieves the provisional identity, returning nil
// if not present. A provisional identity is only suitable for rendering
// decisions, never for authorizing writes.
func ProvisionalFromContext(ctx context.Context) *ProvisionalIdentity {
	id, _ := ctx.Value(provisionalKey{}).(*ProvisionalIdentity)
	return id
}
