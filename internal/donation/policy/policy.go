// Package policy holds the pure donation lifecycle rules: which role may move
// a donation from one status to another. It owns no state and never touches
// the ledger; the ledger re-checks the same rules and remains the authority.
// The local check only exists to reject doomed requests before a network
// round trip.
package policy

import (
	"errors"
	"fmt"

	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

// Role describes the caller's relationship to a donation.
type Role string

const (
	// RoleOwner is the campaign creator receiving the goods.
	RoleOwner Role = "owner"
	// RoleDonor is the pledging actor shipping the goods.
	RoleDonor Role = "donor"
	// RoleOther is any other observer; observers never transition anything.
	RoleOther Role = "other"
)

// RoleFor derives the caller's role by exact address comparison against the
// donation's donor and the campaign's owner, in the ledger's canonical casing.
func RoleFor(caller, donor, owner id.Address) Role {
	switch {
	case caller.IsZero():
		return RoleOther
	case caller.Equal(owner):
		return RoleOwner
	case caller.Equal(donor):
		return RoleDonor
	default:
		return RoleOther
	}
}

// Rejection reasons carried in policy error metadata.
const (
	ReasonWrongRole         = "wrong_role"
	ReasonIllegalTransition = "illegal_transition"
	ReasonTerminalState     = "terminal_state"
)

// transitions is the whole lifecycle graph. Cancellation is the one escape
// hatch and is donor-initiated from every non-terminal status.
var transitions = map[models.Status]map[models.Status]Role{
	models.StatusPledged: {
		models.StatusVerified:  RoleOwner,
		models.StatusCancelled: RoleDonor,
	},
	models.StatusVerified: {
		models.StatusInTransit: RoleDonor,
		models.StatusCancelled: RoleDonor,
	},
	models.StatusInTransit: {
		models.StatusDelivered: RoleOwner,
		models.StatusCancelled: RoleDonor,
	},
}

// Validate checks whether role may move a donation from current to requested.
// It returns nil or a CodePolicyRejected error whose metadata names the
// reason. Pure: same inputs, same answer, no I/O.
func Validate(current, requested models.Status, role Role) error {
	if current.Terminal() {
		return rejection(ReasonTerminalState, current, requested,
			fmt.Sprintf("donation is %s; no further transitions are allowed", current))
	}

	edges, ok := transitions[current]
	if !ok {
		return rejection(ReasonIllegalTransition, current, requested,
			fmt.Sprintf("unknown status %q", current))
	}

	allowedRole, ok := edges[requested]
	if !ok {
		return rejection(ReasonIllegalTransition, current, requested,
			fmt.Sprintf("cannot move from %s to %s", current, requested))
	}

	if role != allowedRole {
		return rejection(ReasonWrongRole, current, requested,
			fmt.Sprintf("only the %s may move a donation from %s to %s", allowedRole, current, requested))
	}

	return nil
}

// AllowedTransitions lists the statuses the role may request from current.
// Presentation surfaces use it to decide which actions to render.
func AllowedTransitions(current models.Status, role Role) []models.Status {
	edges, ok := transitions[current]
	if !ok {
		return nil
	}
	var out []models.Status
	for target, allowedRole := range edges {
		if role == allowedRole {
			out = append(out, target)
		}
	}
	return out
}

func rejection(reason string, current, requested models.Status, message string) error {
	return dErrors.WithMetadata(dErrors.CodePolicyRejected, message, map[string]string{
		"reason": reason,
		"from":   current.String(),
		"to":     requested.String(),
	})
}

// ReasonOf extracts the rejection reason from a policy error, or "" when err
// is not a policy rejection.
func ReasonOf(err error) string {
	var coded *dErrors.Error
	if !errors.As(err, &coded) || coded.Code != dErrors.CodePolicyRejected {
		return ""
	}
	return coded.Metadata["reason"]
}
