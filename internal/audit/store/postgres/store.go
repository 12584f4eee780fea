// Package postgres persists audit events to a donation_audit_events table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkind/internal/audit"
	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts one event. Inserts are idempotent on the event id so a
// replayed channel drain cannot duplicate rows.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO donation_audit_events (
			id, donation_id, campaign_id, actor,
			from_status, to_status, phase, reason, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.DonationID.String(),
		event.CampaignID.String(),
		event.Actor.String(),
		event.From.String(),
		event.To.String(),
		string(event.Phase),
		event.Reason,
		event.At,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByDonation returns a donation's events in emission order.
func (s *Store) ListByDonation(ctx context.Context, donationID id.DonationID) ([]audit.Event, error) {
	query := `
		SELECT id, donation_id, campaign_id, actor,
			   from_status, to_status, phase, reason, occurred_at
		FROM donation_audit_events
		WHERE donation_id = $1
		ORDER BY occurred_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, donationID.String())
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			eventID  uuid.UUID
			donation string
			campaign string
			actor    string
			from, to string
			phase    string
		)
		if err := rows.Scan(&eventID, &donation, &campaign, &actor, &from, &to, &phase, &event.Reason, &event.At); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		donationID, err := id.ParseDonationID(donation)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		campaignID, err := id.ParseCampaignID(campaign)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = eventID
		event.DonationID = donationID
		event.CampaignID = campaignID
		event.Actor = id.Address(actor)
		event.From = models.Status(from)
		event.To = models.Status(to)
		event.Phase = audit.Phase(phase)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
