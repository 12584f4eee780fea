package view

import (
	"context"
	"sync"

	id "inkind/pkg/domain"
)

// MemoryStore is the in-process Store. Suitable for single-instance
// deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[id.DonationID]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[id.DonationID]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, donationID id.DonationID) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[donationID]
	if !ok {
		return Entry{}, false, nil
	}
	entry.Donation = entry.Donation.Clone()
	return entry, true, nil
}

func (s *MemoryStore) Put(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Donation = entry.Donation.Clone()
	s.entries[entry.Donation.ID] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, donationID id.DonationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, donationID)
	return nil
}
