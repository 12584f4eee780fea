// Package memory provides an in-memory audit store for tests and the dev
// server.
package memory

import (
	"context"
	"sync"

	"inkind/internal/audit"
	id "inkind/pkg/domain"
)

type Store struct {
	mu     sync.RWMutex
	events map[id.DonationID][]audit.Event
}

func New() *Store {
	return &Store{events: make(map[id.DonationID][]audit.Event)}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.DonationID] = append(s.events[event.DonationID], event)
	return nil
}

func (s *Store) ListByDonation(_ context.Context, donationID id.DonationID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.events[donationID]
	out := make([]audit.Event, len(events))
	copy(out, events)
	return out, nil
}
