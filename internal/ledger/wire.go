package ledger

import (
	"fmt"
	"time"

	campaignmodels "inkind/internal/campaign/models"
	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
)

// Wire types mirror the gateway's JSON. Numeric ledger fields arrive as
// decimal strings because JSON numbers lose precision past 2^53; conversion
// to platform types checks bounds explicitly.

type wireDonation struct {
	ID             string `json:"id"`
	CampaignID     string `json:"campaign_id"`
	Donor          string `json:"donor"`
	ItemType       string `json:"item_type"`
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
	EstimatedValue string `json:"estimated_value"`
	Location       string `json:"location"`
	ImageRef       string `json:"image_ref"`
	Status         string `json:"status"`
	TrackingCode   string `json:"tracking_code"`

	// The contract stores verification data as parallel arrays.
	Verifiers              []string `json:"verifiers"`
	VerificationNotes      []string `json:"verification_notes"`
	VerificationTimestamps []string `json:"verification_timestamps"`

	ExpiryDate string `json:"expiry_date"` // unix seconds, "0" when unset
	PledgedAt  string `json:"pledged_at"`  // unix seconds
}

func (w wireDonation) toDonation() (models.Donation, error) {
	donationID, err := parseUint64("id", w.ID)
	if err != nil {
		return models.Donation{}, err
	}
	campaignID, err := parseUint64("campaign_id", w.CampaignID)
	if err != nil {
		return models.Donation{}, err
	}
	quantity, err := parseUint64("quantity", w.Quantity)
	if err != nil {
		return models.Donation{}, err
	}
	value, err := FromNative(w.EstimatedValue)
	if err != nil {
		return models.Donation{}, fmt.Errorf("estimated_value: %w", err)
	}
	status := models.Status(w.Status)
	if !status.Valid() {
		return models.Donation{}, fmt.Errorf("unknown status %q", w.Status)
	}
	notes, err := zipNotes(w.Verifiers, w.VerificationNotes, w.VerificationTimestamps)
	if err != nil {
		return models.Donation{}, err
	}
	pledgedAt, err := parseUnix("pledged_at", w.PledgedAt)
	if err != nil {
		return models.Donation{}, err
	}

	donation := models.Donation{
		ID:                id.DonationID(donationID),
		CampaignID:        id.CampaignID(campaignID),
		Donor:             id.Address(w.Donor),
		ItemType:          w.ItemType,
		Description:       w.Description,
		Quantity:          quantity,
		Unit:              w.Unit,
		EstimatedValue:    value,
		Location:          w.Location,
		ImageRef:          w.ImageRef,
		Status:            status,
		TrackingCode:      w.TrackingCode,
		VerificationNotes: notes,
		PledgedAt:         pledgedAt,
	}

	if w.ExpiryDate != "" && w.ExpiryDate != "0" {
		expiry, err := parseUnix("expiry_date", w.ExpiryDate)
		if err != nil {
			return models.Donation{}, err
		}
		donation.ExpiryDate = &expiry
	}

	return donation, nil
}

// zipNotes folds the contract's parallel arrays into note records. Array
// lengths must agree; a mismatch means a corrupt read.
func zipNotes(verifiers, notes, timestamps []string) ([]models.VerificationNote, error) {
	if len(notes) != len(timestamps) || (len(verifiers) > 0 && len(verifiers) != len(notes)) {
		return nil, fmt.Errorf("verification arrays disagree: %d verifiers, %d notes, %d timestamps",
			len(verifiers), len(notes), len(timestamps))
	}
	out := make([]models.VerificationNote, 0, len(notes))
	for i, note := range notes {
		at, err := parseUnix("verification_timestamps", timestamps[i])
		if err != nil {
			return nil, err
		}
		entry := models.VerificationNote{Note: note, At: at}
		if i < len(verifiers) {
			entry.Verifier = id.Address(verifiers[i])
		}
		out = append(out, entry)
	}
	return out, nil
}

func parseUnix(field, raw string) (time.Time, error) {
	secs, err := parseUint64(field, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

type wireCampaign struct {
	ID                       string   `json:"id"`
	Owner                    string   `json:"owner"`
	Title                    string   `json:"title"`
	Description              string   `json:"description"`
	Target                   string   `json:"target"`
	AmountCollected          string   `json:"amount_collected"`
	Deadline                 string   `json:"deadline"` // unix seconds
	ImageRef                 string   `json:"image_ref"`
	AcceptsMaterialDonations bool     `json:"accepts_material_donations"`
	MaterialDonationIDs      []string `json:"material_donation_ids"`
}

func (w wireCampaign) toCampaign() (campaignmodels.Campaign, error) {
	campaignID, err := parseUint64("id", w.ID)
	if err != nil {
		return campaignmodels.Campaign{}, err
	}
	target, err := FromNative(w.Target)
	if err != nil {
		return campaignmodels.Campaign{}, fmt.Errorf("target: %w", err)
	}
	collected, err := FromNative(w.AmountCollected)
	if err != nil {
		return campaignmodels.Campaign{}, fmt.Errorf("amount_collected: %w", err)
	}
	deadline, err := parseUnix("deadline", w.Deadline)
	if err != nil {
		return campaignmodels.Campaign{}, err
	}

	donationIDs := make([]id.DonationID, 0, len(w.MaterialDonationIDs))
	for _, raw := range w.MaterialDonationIDs {
		n, err := parseUint64("material_donation_ids", raw)
		if err != nil {
			return campaignmodels.Campaign{}, err
		}
		donationIDs = append(donationIDs, id.DonationID(n))
	}

	return campaignmodels.Campaign{
		ID:                       id.CampaignID(campaignID),
		Owner:                    id.Address(w.Owner),
		Title:                    w.Title,
		Description:              w.Description,
		Target:                   target,
		AmountCollected:          collected,
		Deadline:                 deadline,
		ImageRef:                 w.ImageRef,
		AcceptsMaterialDonations: w.AcceptsMaterialDonations,
		MaterialDonationIDs:      donationIDs,
	}, nil
}

type wirePledgeRequest struct {
	CampaignID     string `json:"campaign_id"`
	From           string `json:"from"`
	ItemType       string `json:"item_type"`
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
	EstimatedValue string `json:"estimated_value"`
	Location       string `json:"location"`
	ImageRef       string `json:"image_ref,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
}

type wireStatusRequest struct {
	From         string `json:"from"`
	Status       string `json:"status"`
	TrackingCode string `json:"tracking_code,omitempty"`
}

type wireVerifyRequest struct {
	From string `json:"from"`
	Note string `json:"note"`
}

type wireDeliveredRequest struct {
	From string `json:"from"`
}

type wireError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
