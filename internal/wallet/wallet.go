// Package wallet abstracts the wallet-connection collaborator. The rest of
// the system receives an Identity as an explicit dependency instead of
// reaching for ambient connection state.
package wallet

import (
	"context"

	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
	"inkind/pkg/requestcontext"
)

// Identity resolves the caller's ledger address for the current operation.
type Identity interface {
	Address(ctx context.Context) (id.Address, error)
}

// FromContext resolves the address injected by the session middleware. This
// is the production identity: the wallet collaborator authenticates the
// caller at the HTTP boundary and middleware carries the address inward.
type FromContext struct{}

func (FromContext) Address(ctx context.Context) (id.Address, error) {
	addr := requestcontext.WalletAddress(ctx)
	if addr.IsZero() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "no wallet connected")
	}
	return addr, nil
}

// Static always answers with one fixed address. Used by tests and by
// single-actor tooling.
type Static struct {
	Addr id.Address
}

func (s Static) Address(context.Context) (id.Address, error) {
	if s.Addr.IsZero() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "no wallet connected")
	}
	return s.Addr, nil
}
