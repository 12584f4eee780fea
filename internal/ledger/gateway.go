package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	campaignmodels "inkind/internal/campaign/models"
	"inkind/internal/donation/models"
	"inkind/internal/wallet"
	id "inkind/pkg/domain"
	"inkind/pkg/platform/circuit"
	"inkind/pkg/platform/sentinel"
)

// Gateway talks to the contract relay over HTTP JSON. The relay holds the
// transaction plumbing; this client submits typed calls stamped with the
// injected wallet identity and maps relay failures onto sentinel errors.
//
// A circuit breaker tracks relay health. While open, reads fail fast except
// for a periodic probe; writes always go through, because a suppressed write
// and an ambiguous write look identical to the engine and suppressing them
// would buy nothing.
type Gateway struct {
	baseURL  string
	http     *http.Client
	identity wallet.Identity

	breaker    *circuit.Breaker
	probeEvery time.Duration
	probeMu    sync.Mutex
	lastProbe  time.Time
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithBreaker replaces the default relay breaker.
func WithBreaker(b *circuit.Breaker) GatewayOption {
	return func(g *Gateway) { g.breaker = b }
}

// WithProbeInterval sets how often an open circuit lets one read through.
func WithProbeInterval(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.probeEvery = d }
}

// NewGateway constructs a relay-backed ledger client. The identity is an
// explicit dependency: there is no ambient wallet state to reach for.
func NewGateway(baseURL string, timeout time.Duration, identity wallet.Identity, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		identity:   identity,
		breaker:    circuit.New("ledger-relay"),
		probeEvery: 5 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Gateway) Pledge(ctx context.Context, campaignID id.CampaignID, descriptor models.MaterialDescriptor) (id.DonationID, error) {
	from, err := g.identity.Address(ctx)
	if err != nil {
		return 0, err
	}
	value, err := ToNative(descriptor.EstimatedValue)
	if err != nil {
		return 0, fmt.Errorf("pledge: %w", err)
	}
	req := wirePledgeRequest{
		CampaignID:     campaignID.String(),
		From:           from.String(),
		ItemType:       descriptor.ItemType,
		Description:    descriptor.Description,
		Quantity:       strconv.FormatUint(descriptor.Quantity, 10),
		Unit:           descriptor.Unit,
		EstimatedValue: value,
		Location:       descriptor.Location,
		ImageRef:       descriptor.ImageRef,
	}
	if descriptor.ExpiryDate != nil {
		req.ExpiryDate = strconv.FormatInt(descriptor.ExpiryDate.Unix(), 10)
	}

	var resp struct {
		DonationID string `json:"donation_id"`
	}
	if err := g.do(ctx, http.MethodPost, "/donations", req, &resp); err != nil {
		return 0, err
	}
	donationID, err := parseUint64("donation_id", resp.DonationID)
	if err != nil {
		return 0, err
	}
	return id.DonationID(donationID), nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, donationID id.DonationID, status models.Status, trackingCode string) error {
	from, err := g.identity.Address(ctx)
	if err != nil {
		return err
	}
	req := wireStatusRequest{From: from.String(), Status: status.String(), TrackingCode: trackingCode}
	return g.do(ctx, http.MethodPost, "/donations/"+donationID.String()+"/status", req, nil)
}

func (g *Gateway) Verify(ctx context.Context, donationID id.DonationID, note string) error {
	from, err := g.identity.Address(ctx)
	if err != nil {
		return err
	}
	req := wireVerifyRequest{From: from.String(), Note: note}
	return g.do(ctx, http.MethodPost, "/donations/"+donationID.String()+"/verify", req, nil)
}

func (g *Gateway) MarkDelivered(ctx context.Context, donationID id.DonationID) error {
	from, err := g.identity.Address(ctx)
	if err != nil {
		return err
	}
	req := wireDeliveredRequest{From: from.String()}
	return g.do(ctx, http.MethodPost, "/donations/"+donationID.String()+"/delivered", req, nil)
}

func (g *Gateway) GetDonation(ctx context.Context, donationID id.DonationID) (models.Donation, error) {
	var wire wireDonation
	if err := g.do(ctx, http.MethodGet, "/donations/"+donationID.String(), nil, &wire); err != nil {
		return models.Donation{}, err
	}
	return wire.toDonation()
}

func (g *Gateway) GetCampaignDonations(ctx context.Context, campaignID id.CampaignID) ([]models.Donation, error) {
	var wires []wireDonation
	if err := g.do(ctx, http.MethodGet, "/campaigns/"+campaignID.String()+"/donations", nil, &wires); err != nil {
		return nil, err
	}
	out := make([]models.Donation, 0, len(wires))
	for _, w := range wires {
		donation, err := w.toDonation()
		if err != nil {
			return nil, err
		}
		out = append(out, donation)
	}
	return out, nil
}

func (g *Gateway) GetCampaign(ctx context.Context, campaignID id.CampaignID) (campaignmodels.Campaign, error) {
	var wire wireCampaign
	if err := g.do(ctx, http.MethodGet, "/campaigns/"+campaignID.String(), nil, &wire); err != nil {
		return campaignmodels.Campaign{}, err
	}
	return wire.toCampaign()
}

func (g *Gateway) GetCampaigns(ctx context.Context) ([]campaignmodels.Campaign, error) {
	var wires []wireCampaign
	if err := g.do(ctx, http.MethodGet, "/campaigns", nil, &wires); err != nil {
		return nil, err
	}
	out := make([]campaignmodels.Campaign, 0, len(wires))
	for _, w := range wires {
		c, err := w.toCampaign()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// do submits one request and maps the relay's answer onto sentinel errors.
// Transport failures surface as ErrUnavailable: for writes the relay may
// have applied the call before the connection died, so the caller must not
// interpret this as failure.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	if method == http.MethodGet && !g.allowRead() {
		return fmt.Errorf("%s %s: relay circuit open: %w", method, path, sentinel.ErrUnavailable)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.breaker.RecordFailure()
		return fmt.Errorf("%s %s: %v: %w", method, path, err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		g.breaker.RecordSuccess()
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		g.breaker.RecordSuccess()
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Rejections and misses still prove the relay is answering.
		g.breaker.RecordSuccess()
		var wireErr wireError
		_ = json.NewDecoder(resp.Body).Decode(&wireErr)
		msg := wireErr.Message
		if msg == "" {
			msg = wireErr.Error
		}
		return fmt.Errorf("%s %s: %s: %w", method, path, msg, sentinel.ErrRejected)
	default:
		g.breaker.RecordFailure()
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, sentinel.ErrUnavailable)
	}
}

// allowRead reports whether a read may hit the relay right now. An open
// circuit lets one probe read through per probe interval so recovery is
// observed without hammering a down relay.
func (g *Gateway) allowRead() bool {
	if !g.breaker.IsOpen() {
		return true
	}
	g.probeMu.Lock()
	defer g.probeMu.Unlock()
	if time.Since(g.lastProbe) >= g.probeEvery {
		g.lastProbe = time.Now()
		return true
	}
	return false
}
