package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	campaignmodels "inkind/internal/campaign/models"
	"inkind/internal/donation/models"
	"inkind/internal/donation/policy"
	"inkind/internal/wallet"
	id "inkind/pkg/domain"
	"inkind/pkg/platform/sentinel"
)

// Memory is an in-process ledger with the contract's authoritative role and
// state checks. Tests and the dev server run against it; fault switches let
// tests produce the failure modes a real ledger exhibits, including the
// central one: a write that settles while its confirmation is lost.
type Memory struct {
	identity wallet.Identity

	mu           sync.Mutex
	campaigns    map[id.CampaignID]campaignmodels.Campaign
	donations    map[id.DonationID]*models.Donation
	nextDonation uint64
	nextCampaign uint64

	nowFn   func() time.Time
	latency time.Duration

	rejectNextWrite    string
	dropNextSettlement bool
	failNextRead       bool
}

// MemoryOption configures the fake ledger.
type MemoryOption func(*Memory)

// WithClock fixes the ledger clock for deterministic timestamps.
func WithClock(nowFn func() time.Time) MemoryOption {
	return func(m *Memory) { m.nowFn = nowFn }
}

// WithLatency makes every call sleep, mimicking network round trips.
func WithLatency(d time.Duration) MemoryOption {
	return func(m *Memory) { m.latency = d }
}

// NewMemory constructs an empty fake ledger acting on behalf of the injected
// identity.
func NewMemory(identity wallet.Identity, opts ...MemoryOption) *Memory {
	m := &Memory{
		identity:  identity,
		campaigns: make(map[id.CampaignID]campaignmodels.Campaign),
		donations: make(map[id.DonationID]*models.Donation),
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddCampaign seeds a campaign record and returns its assigned id.
func (m *Memory) AddCampaign(c campaignmodels.Campaign) id.CampaignID {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = id.CampaignID(m.nextCampaign)
	m.nextCampaign++
	m.campaigns[c.ID] = c
	return c.ID
}

// RejectNextWrite makes the next write fail with a ledger veto.
func (m *Memory) RejectNextWrite(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectNextWrite = reason
}

// DropNextSettlement applies the next write but loses its confirmation, the
// ambiguous outcome a transport timeout produces.
func (m *Memory) DropNextSettlement() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropNextSettlement = true
}

// FailNextRead makes the next read fail with a transport error.
func (m *Memory) FailNextRead() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNextRead = true
}

func (m *Memory) Pledge(ctx context.Context, campaignID id.CampaignID, descriptor models.MaterialDescriptor) (id.DonationID, error) {
	m.sleep()
	actor, err := m.identity.Address(ctx)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if msg := m.consumeReject(); msg != "" {
		return 0, fmt.Errorf("pledge: %s: %w", msg, sentinel.ErrRejected)
	}

	campaign, ok := m.campaigns[campaignID]
	if !ok {
		return 0, fmt.Errorf("pledge: campaign %s: %w", campaignID, sentinel.ErrNotFound)
	}
	if !campaign.AcceptsMaterialDonations {
		return 0, fmt.Errorf("pledge: campaign does not accept material donations: %w", sentinel.ErrRejected)
	}
	if descriptor.ItemType == "" || descriptor.Quantity == 0 {
		return 0, fmt.Errorf("pledge: malformed descriptor: %w", sentinel.ErrRejected)
	}

	donationID := id.DonationID(m.nextDonation)
	m.nextDonation++

	donation := models.Donation{
		ID:             donationID,
		CampaignID:     campaignID,
		Donor:          actor,
		ItemType:       descriptor.ItemType,
		Description:    descriptor.Description,
		Quantity:       descriptor.Quantity,
		Unit:           descriptor.Unit,
		EstimatedValue: descriptor.EstimatedValue,
		Location:       descriptor.Location,
		ImageRef:       descriptor.ImageRef,
		Status:         models.StatusPledged,
		ExpiryDate:     descriptor.ExpiryDate,
		PledgedAt:      m.nowFn().UTC(),
	}
	m.donations[donationID] = &donation

	campaign.MaterialDonationIDs = append(campaign.MaterialDonationIDs, donationID)
	m.campaigns[campaignID] = campaign

	if m.consumeDrop() {
		return 0, fmt.Errorf("pledge: confirmation lost: %w", sentinel.ErrUnavailable)
	}
	return donationID, nil
}

func (m *Memory) UpdateStatus(ctx context.Context, donationID id.DonationID, status models.Status, trackingCode string) error {
	m.sleep()
	actor, err := m.identity.Address(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if msg := m.consumeReject(); msg != "" {
		return fmt.Errorf("update status: %s: %w", msg, sentinel.ErrRejected)
	}

	// The contract exposes dedicated entry points for verification and
	// delivery; the generic status call only moves goods in transit or
	// cancels.
	if status != models.StatusInTransit && status != models.StatusCancelled {
		return fmt.Errorf("update status: %s requires its dedicated call: %w", status, sentinel.ErrRejected)
	}

	donation, campaign, err := m.lookup(donationID)
	if err != nil {
		return err
	}
	if err := m.authorize(actor, donation, campaign, status); err != nil {
		return err
	}

	donation.Status = status
	if status == models.StatusInTransit && trackingCode != "" {
		donation.TrackingCode = trackingCode
	}

	if m.consumeDrop() {
		return fmt.Errorf("update status: confirmation lost: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func (m *Memory) Verify(ctx context.Context, donationID id.DonationID, note string) error {
	m.sleep()
	actor, err := m.identity.Address(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if msg := m.consumeReject(); msg != "" {
		return fmt.Errorf("verify: %s: %w", msg, sentinel.ErrRejected)
	}

	// The contract normalizes note whitespace before storing it, which is
	// exactly the kind of side effect an optimistic update cannot predict.
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("verify: note is required: %w", sentinel.ErrRejected)
	}

	donation, campaign, err := m.lookup(donationID)
	if err != nil {
		return err
	}
	if err := m.authorize(actor, donation, campaign, models.StatusVerified); err != nil {
		return err
	}

	donation.Status = models.StatusVerified
	donation.VerificationNotes = append(donation.VerificationNotes, models.VerificationNote{
		Note:     note,
		Verifier: actor,
		At:       m.nowFn().UTC(),
	})

	if m.consumeDrop() {
		return fmt.Errorf("verify: confirmation lost: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func (m *Memory) MarkDelivered(ctx context.Context, donationID id.DonationID) error {
	m.sleep()
	actor, err := m.identity.Address(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if msg := m.consumeReject(); msg != "" {
		return fmt.Errorf("mark delivered: %s: %w", msg, sentinel.ErrRejected)
	}

	donation, campaign, err := m.lookup(donationID)
	if err != nil {
		return err
	}
	if err := m.authorize(actor, donation, campaign, models.StatusDelivered); err != nil {
		return err
	}

	donation.Status = models.StatusDelivered

	if m.consumeDrop() {
		return fmt.Errorf("mark delivered: confirmation lost: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func (m *Memory) GetDonation(_ context.Context, donationID id.DonationID) (models.Donation, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumeFailRead() {
		return models.Donation{}, fmt.Errorf("get donation: %w", sentinel.ErrUnavailable)
	}
	donation, ok := m.donations[donationID]
	if !ok {
		return models.Donation{}, fmt.Errorf("get donation %s: %w", donationID, sentinel.ErrNotFound)
	}
	return donation.Clone(), nil
}

func (m *Memory) GetCampaignDonations(_ context.Context, campaignID id.CampaignID) ([]models.Donation, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumeFailRead() {
		return nil, fmt.Errorf("get campaign donations: %w", sentinel.ErrUnavailable)
	}
	if _, ok := m.campaigns[campaignID]; !ok {
		return nil, fmt.Errorf("get campaign donations %s: %w", campaignID, sentinel.ErrNotFound)
	}

	var out []models.Donation
	for _, donation := range m.donations {
		if donation.CampaignID == campaignID {
			out = append(out, donation.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetCampaign(_ context.Context, campaignID id.CampaignID) (campaignmodels.Campaign, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumeFailRead() {
		return campaignmodels.Campaign{}, fmt.Errorf("get campaign: %w", sentinel.ErrUnavailable)
	}
	campaign, ok := m.campaigns[campaignID]
	if !ok {
		return campaignmodels.Campaign{}, fmt.Errorf("get campaign %s: %w", campaignID, sentinel.ErrNotFound)
	}
	return campaign, nil
}

func (m *Memory) GetCampaigns(_ context.Context) ([]campaignmodels.Campaign, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumeFailRead() {
		return nil, fmt.Errorf("get campaigns: %w", sentinel.ErrUnavailable)
	}
	out := make([]campaignmodels.Campaign, 0, len(m.campaigns))
	for _, campaign := range m.campaigns {
		out = append(out, campaign)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// authorize re-runs the role and state rules. This check, not the client-side
// one, is the authority.
func (m *Memory) authorize(actor id.Address, donation *models.Donation, campaign campaignmodels.Campaign, target models.Status) error {
	role := policy.RoleFor(actor, donation.Donor, campaign.Owner)
	if err := policy.Validate(donation.Status, target, role); err != nil {
		return fmt.Errorf("%v: %w", err, sentinel.ErrRejected)
	}
	return nil
}

func (m *Memory) lookup(donationID id.DonationID) (*models.Donation, campaignmodels.Campaign, error) {
	donation, ok := m.donations[donationID]
	if !ok {
		return nil, campaignmodels.Campaign{}, fmt.Errorf("donation %s: %w", donationID, sentinel.ErrNotFound)
	}
	campaign := m.campaigns[donation.CampaignID]
	return donation, campaign, nil
}

func (m *Memory) consumeReject() string {
	msg := m.rejectNextWrite
	m.rejectNextWrite = ""
	return msg
}

func (m *Memory) consumeDrop() bool {
	dropped := m.dropNextSettlement
	m.dropNextSettlement = false
	return dropped
}

func (m *Memory) consumeFailRead() bool {
	failed := m.failNextRead
	m.failNextRead = false
	return failed
}

func (m *Memory) sleep() {
	if m.latency > 0 {
		time.Sleep(m.latency)
	}
}
