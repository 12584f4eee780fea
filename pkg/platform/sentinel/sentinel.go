package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The ledger client and cache
// stores return these (optionally wrapped) so services can translate them
// into coded domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist on the ledger or in a store
// - ErrRejected: the ledger evaluated the write and refused it
// - ErrUnavailable: transport failure or timeout; write outcome is unknown
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrRejected    = errors.New("rejected")
	ErrUnavailable = errors.New("unavailable")
)
