package audit

import (
	"context"

	id "inkind/pkg/domain"
)

// Store persists audit events. Append-only; nothing updates or deletes.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDonation(ctx context.Context, donationID id.DonationID) ([]Event, error)
}
