// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them. The package stays free of
// net/http so the engine and stores can import it without pulling transport
// code along.
//
// Usage in services (read values):
//
//	addr := requestcontext.WalletAddress(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithWalletAddress(ctx, "0xabc")
package requestcontext

import (
	"context"
	"time"

	id "inkind/pkg/domain"
)

type (
	walletAddressKey struct{}
	requestIDKey     struct{}
	requestTimeKey   struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyWalletAddress = walletAddressKey{}
	ContextKeyRequestID     = requestIDKey{}
	ContextKeyRequestTime   = requestTimeKey{}
)

// WalletAddress retrieves the authenticated caller address from the context.
// Returns the zero address if not set.
func WalletAddress(ctx context.Context) id.Address {
	if addr, ok := ctx.Value(ContextKeyWalletAddress).(id.Address); ok {
		return addr
	}
	return ""
}

// WithWalletAddress injects a caller address into the context.
func WithWalletAddress(ctx context.Context, addr id.Address) context.Context {
	return context.WithValue(ctx, ContextKeyWalletAddress, addr)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, tests without an
// injected clock).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full middleware chain and for workers that need a
// consistent time within a batch.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
