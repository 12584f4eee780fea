// Package view keeps the client-side read model of donation records. Every
// entry is a cache of the ledger's copy; the engine mutates entries
// optimistically and reconciliation replaces them wholesale.
package view

import (
	"time"

	"inkind/internal/donation/models"
)

// Entry is one donation's local state plus the bookkeeping the reconciler
// needs. Stale means the ledger may hold a newer record than this one: an
// ambiguous write or a failed reconcile read left the entry unconfirmed, and
// the engine refuses transitions on it until a fresh read lands.
type Entry struct {
	Donation models.Donation `json:"donation"`
	Stale    bool            `json:"stale"`

	// LastError carries the message of the failure that marked the entry
	// stale. Cleared on the next successful reconcile.
	LastError string    `json:"last_error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
