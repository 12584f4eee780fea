package audit

import (
	"time"

	"github.com/google/uuid"

	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
)

// Phase marks where in a transition's life an event was emitted. One
// user-visible transition produces a requested event, an optimistic event,
// and exactly one of settled, rolled_back, or stale.
type Phase string

const (
	PhaseRequested  Phase = "requested"
	PhaseOptimistic Phase = "optimistic"
	PhaseSettled    Phase = "settled"
	PhaseRolledBack Phase = "rolled_back"
	PhaseStale      Phase = "stale"
)

// Event records one observation of the donation lifecycle. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID     `json:"id"`
	DonationID id.DonationID `json:"donation_id"`
	CampaignID id.CampaignID `json:"campaign_id"`
	Actor      id.Address    `json:"actor"`
	From       models.Status `json:"from"`
	To         models.Status `json:"to"`
	Phase      Phase         `json:"phase"`
	Reason     string        `json:"reason,omitempty"`
	At         time.Time     `json:"at"`
}
