package audit

import (
	"context"
	"log/slog"
)

// Sink receives settled transition events for downstream consumers. The
// Kafka publisher implements it; nil means no external fan-out.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes audit events from the publisher's channel and persists
// them. Settled transitions additionally fan out to the sink. Store and sink
// failures are logged, not propagated: the lifecycle must never stall on its
// own audit trail.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed",
					"event_id", event.ID,
					"donation_id", event.DonationID,
					"error", err)
			}
			if w.sink != nil && event.Phase == PhaseSettled {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.Error("audit publish failed",
						"event_id", event.ID,
						"donation_id", event.DonationID,
						"error", err)
				}
			}
		}
	}
}
