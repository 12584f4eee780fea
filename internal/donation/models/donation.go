package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "inkind/pkg/domain"
)

// Status classifies a donation's position in its lifecycle. It is the only
// mutable field on a donation; everything else is fixed at pledge time.
type Status string

const (
	StatusPledged   Status = "pledged"
	StatusVerified  Status = "verified"
	StatusInTransit Status = "in-transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPledged, StatusVerified, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the lifecycle ends at s. Terminal records persist
// for audit; they just accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// VerificationNote is one owner-recorded verification entry. Notes are
// append-only: the ledger never edits or truncates them.
type VerificationNote struct {
	Note     string     `json:"note"`
	Verifier id.Address `json:"verifier"`
	At       time.Time  `json:"at"`
}

// Donation is the local copy of one ledger donation record.
//
// Invariants:
//   - Status only moves along the policy graph; cancelled is the one escape.
//   - TrackingCode is never set before verified and never cleared once set.
//   - VerificationNotes only grows.
//   - The ledger holds the only authoritative copy; every Donation value here
//     is a cache entry and must be treated as stale until reconciled.
type Donation struct {
	ID         id.DonationID `json:"id"`
	CampaignID id.CampaignID `json:"campaign_id"`
	Donor      id.Address    `json:"donor"`

	ItemType       string          `json:"item_type"`
	Description    string          `json:"description"`
	Quantity       uint64          `json:"quantity"`
	Unit           string          `json:"unit"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Location       string          `json:"location"`
	ImageRef       string          `json:"image_ref,omitempty"`

	Status            Status             `json:"status"`
	TrackingCode      string             `json:"tracking_code,omitempty"`
	VerificationNotes []VerificationNote `json:"verification_notes,omitempty"`

	// ExpiryDate is advisory only; the state machine does not enforce it.
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	PledgedAt  time.Time  `json:"pledged_at"`
}

// Clone returns a deep copy so optimistic mutations never alias the cached
// known-good record.
func (d Donation) Clone() Donation {
	out := d
	if d.VerificationNotes != nil {
		out.VerificationNotes = make([]VerificationNote, len(d.VerificationNotes))
		copy(out.VerificationNotes, d.VerificationNotes)
	}
	if d.ExpiryDate != nil {
		t := *d.ExpiryDate
		out.ExpiryDate = &t
	}
	return out
}
