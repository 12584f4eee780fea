package view

import (
	"context"

	id "inkind/pkg/domain"
)

// Store persists view entries. Implementations must be safe for concurrent
// use; the engine's per-donation locking serializes writers per record, not
// per store.
type Store interface {
	Get(ctx context.Context, donationID id.DonationID) (Entry, bool, error)
	Put(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, donationID id.DonationID) error
}
