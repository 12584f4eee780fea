package view

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"inkind/internal/ledger"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
	"inkind/pkg/requestcontext"
)

// View owns the read model. Reads fall through to the ledger on a miss,
// Refresh forces a reconcile, and subscribers hear about every entry change.
type View struct {
	store  Store
	ledger ledger.Client
	logger *slog.Logger

	sf singleflight.Group

	mu      sync.Mutex
	subs    map[id.DonationID]map[int]func(Entry)
	nextSub int
}

func New(store Store, client ledger.Client, logger *slog.Logger) *View {
	return &View{
		store:  store,
		ledger: client,
		logger: logger,
		subs:   make(map[id.DonationID]map[int]func(Entry)),
	}
}

// Get returns the local entry, reading through to the ledger when the view
// has none.
func (v *View) Get(ctx context.Context, donationID id.DonationID) (Entry, error) {
	entry, ok, err := v.store.Get(ctx, donationID)
	if err != nil {
		return Entry{}, dErrors.Wrap(dErrors.CodeInternal, "read view entry", err)
	}
	if ok {
		return entry, nil
	}
	return v.Refresh(ctx, donationID)
}

// Refresh reconciles one entry against the ledger. The authoritative record
// replaces the local entry wholesale; no field survives locally. Concurrent
// refreshes of the same donation collapse into one ledger read.
func (v *View) Refresh(ctx context.Context, donationID id.DonationID) (Entry, error) {
	result, err, _ := v.sf.Do(donationID.String(), func() (any, error) {
		return v.reconcile(ctx, donationID)
	})
	if err != nil {
		return Entry{}, err
	}
	return result.(Entry), nil
}

func (v *View) reconcile(ctx context.Context, donationID id.DonationID) (Entry, error) {
	donation, err := v.ledger.GetDonation(ctx, donationID)
	switch {
	case err == nil:
		entry := Entry{Donation: donation, UpdatedAt: requestcontext.Now(ctx).UTC()}
		if err := v.store.Put(ctx, entry); err != nil {
			return Entry{}, dErrors.Wrap(dErrors.CodeInternal, "store reconciled entry", err)
		}
		v.notify(entry)
		return entry, nil

	case ledger.IsNotFound(err):
		if delErr := v.store.Delete(ctx, donationID); delErr != nil {
			v.logger.Warn("drop missing view entry failed", "donation_id", donationID, "error", delErr)
		}
		return Entry{}, dErrors.Wrap(dErrors.CodeNotFound, "donation not on ledger", err)

	default:
		// The read failed, the local entry is now unconfirmed. Keep it
		// but flag it so the engine refuses to build on it.
		v.markStale(ctx, donationID, err.Error())
		return Entry{}, dErrors.Wrap(dErrors.CodeNetwork, "reconcile read failed", err)
	}
}

// Apply replaces the entry and notifies subscribers. The engine uses it for
// optimistic updates and rollbacks; it never consults the ledger.
func (v *View) Apply(ctx context.Context, entry Entry) error {
	entry.UpdatedAt = requestcontext.Now(ctx).UTC()
	if err := v.store.Put(ctx, entry); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "store view entry", err)
	}
	v.notify(entry)
	return nil
}

// MarkStale flags the entry without touching its donation snapshot.
func (v *View) MarkStale(ctx context.Context, donationID id.DonationID, reason string) {
	v.markStale(ctx, donationID, reason)
}

func (v *View) markStale(ctx context.Context, donationID id.DonationID, reason string) {
	entry, ok, err := v.store.Get(ctx, donationID)
	if err != nil || !ok {
		return
	}
	entry.Stale = true
	entry.LastError = reason
	entry.UpdatedAt = requestcontext.Now(ctx).UTC()
	if err := v.store.Put(ctx, entry); err != nil {
		v.logger.Warn("mark stale failed", "donation_id", donationID, "error", err)
		return
	}
	v.notify(entry)
}

// Subscribe registers a callback for one donation's entry changes. The
// returned function unsubscribes. Callbacks run on the mutating goroutine
// outside the view lock and must not block.
func (v *View) Subscribe(donationID id.DonationID, fn func(Entry)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.subs[donationID] == nil {
		v.subs[donationID] = make(map[int]func(Entry))
	}
	token := v.nextSub
	v.nextSub++
	v.subs[donationID][token] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs[donationID], token)
		if len(v.subs[donationID]) == 0 {
			delete(v.subs, donationID)
		}
	}
}

func (v *View) notify(entry Entry) {
	v.mu.Lock()
	callbacks := make([]func(Entry), 0, len(v.subs[entry.Donation.ID]))
	for _, fn := range v.subs[entry.Donation.ID] {
		callbacks = append(callbacks, fn)
	}
	v.mu.Unlock()

	for _, fn := range callbacks {
		fn(entry)
	}
}

// CampaignDonations reads a campaign's donation snapshot from the ledger and
// folds every record into the view.
func (v *View) CampaignDonations(ctx context.Context, campaignID id.CampaignID) ([]Entry, error) {
	donations, err := v.ledger.GetCampaignDonations(ctx, campaignID)
	switch {
	case ledger.IsNotFound(err):
		return nil, dErrors.Wrap(dErrors.CodeNotFound, "campaign not on ledger", err)
	case err != nil:
		return nil, dErrors.Wrap(dErrors.CodeNetwork, "campaign donations read failed", err)
	}

	entries := make([]Entry, 0, len(donations))
	now := requestcontext.Now(ctx).UTC()
	for _, donation := range donations {
		entry := Entry{Donation: donation, UpdatedAt: now}
		if err := v.store.Put(ctx, entry); err != nil {
			return nil, dErrors.Wrap(dErrors.CodeInternal, "store view entry", err)
		}
		v.notify(entry)
		entries = append(entries, entry)
	}
	return entries, nil
}
