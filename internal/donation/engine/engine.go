// Package engine drives donation lifecycle transitions: optimistic local
// updates, ledger writes, and the reconciliation that makes the local view
// converge on the ledger's truth.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inkind/internal/audit"
	"inkind/internal/donation/metrics"
	"inkind/internal/donation/models"
	"inkind/internal/donation/policy"
	"inkind/internal/donation/view"
	"inkind/internal/ledger"
	"inkind/internal/wallet"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

// Extra carries the optional inputs a transition may need.
type Extra struct {
	// TrackingCode is accepted on the move to in-transit and ignored
	// elsewhere. Once set on the ledger it is never cleared.
	TrackingCode string
	// Note is required on the move to verified.
	Note string
}

// Engine owns every donation mutation. One transition at a time per
// donation: a second request while one is in flight is answered with busy,
// never queued.
type Engine struct {
	ledger   ledger.Client
	view     *view.View
	identity wallet.Identity
	audit    *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	inflight map[id.DonationID]struct{}
}

func New(client ledger.Client, v *view.View, identity wallet.Identity, publisher *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		ledger:   client,
		view:     v,
		identity: identity,
		audit:    publisher,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("inkind/donation/engine"),
		inflight: make(map[id.DonationID]struct{}),
	}
}

// Pledge creates a donation record on the ledger and folds it into the view.
func (e *Engine) Pledge(ctx context.Context, campaignID id.CampaignID, descriptor models.MaterialDescriptor) (*models.Donation, error) {
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	actor, err := e.identity.Address(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "donation.pledge",
		trace.WithAttributes(attribute.String("campaign_id", campaignID.String())))
	defer span.End()

	start := time.Now()
	donationID, err := e.ledger.Pledge(ctx, campaignID, descriptor)
	e.metrics.ObserveLedgerWrite(start)
	switch {
	case ledger.IsRejected(err):
		return nil, dErrors.Wrap(dErrors.CodeWriteRejected, "ledger refused the pledge", err)
	case ledger.IsNotFound(err):
		return nil, dErrors.Wrap(dErrors.CodeNotFound, "campaign not on ledger", err)
	case err != nil:
		// The pledge may or may not have landed; with no id assigned
		// there is no local entry to flag, so the caller re-lists the
		// campaign to find out.
		return nil, dErrors.Wrap(dErrors.CodeNetwork, "pledge outcome unknown", err)
	}

	e.audit.Emit(audit.Event{
		DonationID: donationID,
		CampaignID: campaignID,
		Actor:      actor,
		To:         models.StatusPledged,
		Phase:      audit.PhaseSettled,
	})
	e.metrics.RecordTransition(models.StatusPledged.String(), "settled")

	entry, err := e.view.Refresh(ctx, donationID)
	if err != nil {
		// Pledge applied; only the read back failed.
		return nil, err
	}
	donation := entry.Donation
	return &donation, nil
}

// RequestTransition moves one donation to the target status.
//
// The local policy check rejects doomed requests without a ledger call. A
// permitted request mutates the view optimistically, writes to the ledger,
// and reconciles with a fresh read; the reconciled record replaces the
// optimistic guess wholesale. A ledger veto rolls the view back to the last
// known-good record. An ambiguous failure leaves the entry flagged stale, and
// stale entries must reconcile before the engine accepts another transition.
func (e *Engine) RequestTransition(ctx context.Context, donationID id.DonationID, target models.Status, role policy.Role, extra Extra) (*models.Donation, error) {
	actor, err := e.identity.Address(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(target, &extra); err != nil {
		return nil, err
	}

	if !e.acquire(donationID) {
		e.metrics.BusyRejections.Inc()
		return nil, dErrors.New(dErrors.CodeBusy, "a transition for this donation is already in flight")
	}
	defer e.release(donationID)

	ctx, span := e.tracer.Start(ctx, "donation.transition",
		trace.WithAttributes(
			attribute.String("donation_id", donationID.String()),
			attribute.String("target", target.String()),
		))
	defer span.End()

	entry, err := e.view.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if entry.Stale {
		entry, err = e.view.Refresh(ctx, donationID)
		if err != nil {
			return nil, err
		}
	}
	knownGood := entry
	knownGood.Donation = entry.Donation.Clone()

	if err := policy.Validate(entry.Donation.Status, target, role); err != nil {
		e.metrics.RecordTransition(target.String(), "policy_rejected")
		return nil, err
	}

	base := audit.Event{
		DonationID: donationID,
		CampaignID: entry.Donation.CampaignID,
		Actor:      actor,
		From:       entry.Donation.Status,
		To:         target,
	}
	e.emit(base, audit.PhaseRequested, "")

	// Optimistic update: the view shows the expected outcome while the
	// write is in flight. Subscribers render it immediately.
	speculative := entry
	speculative.Donation = entry.Donation.Clone()
	speculative.Donation.Status = target
	if target == models.StatusInTransit && extra.TrackingCode != "" {
		speculative.Donation.TrackingCode = extra.TrackingCode
	}
	if target == models.StatusVerified {
		speculative.Donation.VerificationNotes = append(speculative.Donation.VerificationNotes, models.VerificationNote{
			Note:     extra.Note,
			Verifier: actor,
			At:       time.Now().UTC(),
		})
	}
	if err := e.view.Apply(ctx, speculative); err != nil {
		return nil, err
	}
	e.emit(base, audit.PhaseOptimistic, "")

	start := time.Now()
	writeErr := e.write(ctx, donationID, target, extra)
	e.metrics.ObserveLedgerWrite(start)

	switch {
	case ledger.IsRejected(writeErr):
		// Definitive veto: the guess was wrong, restore the record the
		// ledger last confirmed.
		if err := e.view.Apply(ctx, knownGood); err != nil {
			e.logger.Error("rollback failed", "donation_id", donationID, "error", err)
		}
		e.metrics.Rollbacks.Inc()
		e.metrics.RecordTransition(target.String(), "write_rejected")
		e.emit(base, audit.PhaseRolledBack, writeErr.Error())
		return nil, dErrors.Wrap(dErrors.CodeWriteRejected, "ledger refused the transition", writeErr)

	case ledger.IsNotFound(writeErr):
		if err := e.view.Apply(ctx, knownGood); err != nil {
			e.logger.Error("rollback failed", "donation_id", donationID, "error", err)
		}
		e.metrics.Rollbacks.Inc()
		e.metrics.RecordTransition(target.String(), "not_found")
		e.emit(base, audit.PhaseRolledBack, writeErr.Error())
		return nil, dErrors.Wrap(dErrors.CodeNotFound, "donation not on ledger", writeErr)

	case writeErr != nil:
		// Ambiguous: the ledger may have applied the write before the
		// failure. Never roll back here, the optimistic state could be
		// the truth. Flag the entry until a read settles it.
		e.view.MarkStale(ctx, donationID, writeErr.Error())
		e.metrics.StaleMarks.Inc()
		e.metrics.RecordTransition(target.String(), "stale")
		e.emit(base, audit.PhaseStale, writeErr.Error())
		return nil, dErrors.Wrap(dErrors.CodeNetwork, "write outcome unknown; entry flagged stale", writeErr)
	}

	reconcileStart := time.Now()
	settled, err := e.view.Refresh(ctx, donationID)
	e.metrics.ObserveReconcile(reconcileStart)
	if err != nil {
		// The write settled but the read back did not. Refresh already
		// flagged the entry stale.
		e.metrics.StaleMarks.Inc()
		e.metrics.RecordTransition(target.String(), "stale")
		e.emit(base, audit.PhaseStale, err.Error())
		return nil, err
	}

	e.metrics.RecordTransition(target.String(), "settled")
	e.emit(base, audit.PhaseSettled, "")
	donation := settled.Donation
	return &donation, nil
}

// write dispatches the transition onto the ledger call that carries it.
func (e *Engine) write(ctx context.Context, donationID id.DonationID, target models.Status, extra Extra) error {
	switch target {
	case models.StatusVerified:
		return e.ledger.Verify(ctx, donationID, extra.Note)
	case models.StatusDelivered:
		return e.ledger.MarkDelivered(ctx, donationID)
	default:
		return e.ledger.UpdateStatus(ctx, donationID, target, extra.TrackingCode)
	}
}

func validateInput(target models.Status, extra *Extra) error {
	if !target.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown target status")
	}
	if target == models.StatusPledged {
		return dErrors.New(dErrors.CodeValidation, "pledged is the initial status, not a transition target")
	}
	if target == models.StatusVerified {
		extra.Note = strings.TrimSpace(extra.Note)
		if extra.Note == "" {
			return dErrors.New(dErrors.CodeValidation, "verification requires a non-empty note")
		}
	}
	return nil
}

func (e *Engine) emit(base audit.Event, phase audit.Phase, reason string) {
	base.Phase = phase
	base.Reason = reason
	e.audit.Emit(base)
}

func (e *Engine) acquire(donationID id.DonationID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[donationID]; busy {
		return false
	}
	e.inflight[donationID] = struct{}{}
	return true
}

func (e *Engine) release(donationID id.DonationID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, donationID)
}
