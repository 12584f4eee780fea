// Package domain holds the primitive identifier types shared across modules.
// They are domain primitives that enforce validity at parse time so handlers
// and services never pass raw strings around.
package domain

import (
	"fmt"
	"strconv"
)

// DonationID identifies a single material donation record on the ledger.
// The ledger assigns it at pledge time; it is unset before the pledge write
// is confirmed.
type DonationID uint64

// ParseDonationID validates and returns a DonationID from its decimal string
// form (route parameters, query strings).
func ParseDonationID(s string) (DonationID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid donation id %q: %w", s, err)
	}
	return DonationID(n), nil
}

func (id DonationID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// CampaignID identifies a campaign on the ledger.
type CampaignID uint64

// ParseCampaignID validates and returns a CampaignID from its decimal string form.
func ParseCampaignID(s string) (CampaignID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid campaign id %q: %w", s, err)
	}
	return CampaignID(n), nil
}

func (id CampaignID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Address is a ledger account address in the ledger's canonical casing.
// Comparisons are exact string equality: the ledger returns addresses in one
// canonical form and role checks must match it byte for byte, so addresses
// are never case-folded after they cross the boundary.
type Address string

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}

// Equal compares two addresses in canonical form.
func (a Address) Equal(other Address) bool {
	return a == other
}

func (a Address) String() string {
	return string(a)
}
