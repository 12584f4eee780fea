// Package ledger wraps the external append-only donation ledger behind a
// typed client. The ledger holds the only authoritative copy of every
// donation record; everything this process keeps is a cache of it.
//
// All operations are asynchronous network calls submitted at most once. A
// write's settlement is not guaranteed to reach the caller: the transport can
// time out after the ledger already applied the transition. Callers must
// treat ErrUnavailable on a write as "outcome unknown", never as failure.
package ledger

import (
	"context"
	"errors"

	campaignmodels "inkind/internal/campaign/models"
	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
	"inkind/pkg/platform/sentinel"
)

// Client is the typed boundary to the donation ledger. Implementations carry
// the caller identity as an injected capability and stamp every write with it;
// the ledger re-checks roles and state itself and its verdict is final,
// independent of any local policy check.
type Client interface {
	// Pledge creates one donation record and returns the ledger-assigned id.
	Pledge(ctx context.Context, campaignID id.CampaignID, descriptor models.MaterialDescriptor) (id.DonationID, error)

	// UpdateStatus submits a status transition. trackingCode is only
	// meaningful on the transition into in-transit and may be empty.
	UpdateStatus(ctx context.Context, donationID id.DonationID, status models.Status, trackingCode string) error

	// Verify moves a pledged donation to verified, appending the note.
	Verify(ctx context.Context, donationID id.DonationID, note string) error

	// MarkDelivered moves an in-transit donation to delivered.
	MarkDelivered(ctx context.Context, donationID id.DonationID) error

	// GetDonation reads the authoritative record.
	GetDonation(ctx context.Context, donationID id.DonationID) (models.Donation, error)

	// GetCampaignDonations reads a finite snapshot of a campaign's
	// donations. Not a live stream; callers re-read to refresh.
	GetCampaignDonations(ctx context.Context, campaignID id.CampaignID) ([]models.Donation, error)

	// GetCampaign and GetCampaigns read the campaign records donations
	// hang off of.
	GetCampaign(ctx context.Context, campaignID id.CampaignID) (campaignmodels.Campaign, error)
	GetCampaigns(ctx context.Context) ([]campaignmodels.Campaign, error)
}

// IsRejected reports a ledger-side veto: the write was evaluated and refused.
// Terminal for the attempt; retrying cannot help.
func IsRejected(err error) bool {
	return errors.Is(err, sentinel.ErrRejected)
}

// IsNotFound reports a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

// IsUnavailable reports a transport failure. For reads this is retryable;
// for writes the outcome is unknown and must be reconciled, not retried.
func IsUnavailable(err error) bool {
	return errors.Is(err, sentinel.ErrUnavailable)
}
