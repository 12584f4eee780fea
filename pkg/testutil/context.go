package testutil

import (
	"context"
	"net/http"

	id "inkind/pkg/domain"
	"inkind/pkg/requestcontext"
)

// WithWallet adds an authenticated wallet address to the request context.
// This simulates what the wallet session middleware would do for
// authenticated requests.
func WithWallet(req *http.Request, address id.Address) *http.Request {
	if address.IsZero() {
		return req
	}
	return req.WithContext(requestcontext.WithWalletAddress(req.Context(), address))
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	if requestID == "" {
		return req
	}
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), key, value))
}
