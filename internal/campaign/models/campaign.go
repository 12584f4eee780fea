package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "inkind/pkg/domain"
)

// Campaign is the read-model view of one ledger campaign. The lifecycle
// engine only needs Owner for role derivation; the rest feeds the dashboard.
type Campaign struct {
	ID          id.CampaignID `json:"id"`
	Owner       id.Address    `json:"owner"`
	Title       string        `json:"title"`
	Description string        `json:"description"`

	// Target and AmountCollected are monetary figures in human-decimal
	// form; the monetary donation flow itself lives outside this service.
	Target          decimal.Decimal `json:"target"`
	AmountCollected decimal.Decimal `json:"amount_collected"`

	Deadline time.Time `json:"deadline"`
	ImageRef string    `json:"image_ref,omitempty"`

	AcceptsMaterialDonations bool            `json:"accepts_material_donations"`
	MaterialDonationIDs      []id.DonationID `json:"material_donation_ids,omitempty"`
}
