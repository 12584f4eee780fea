package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

func TestValidate_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from models.Status
		to   models.Status
		role Role
	}{
		{models.StatusPledged, models.StatusVerified, RoleOwner},
		{models.StatusPledged, models.StatusCancelled, RoleDonor},
		{models.StatusVerified, models.StatusInTransit, RoleDonor},
		{models.StatusVerified, models.StatusCancelled, RoleDonor},
		{models.StatusInTransit, models.StatusDelivered, RoleOwner},
		{models.StatusInTransit, models.StatusCancelled, RoleDonor},
	}
	for _, tc := range allowed {
		t.Run(string(tc.from)+"->"+string(tc.to)+" by "+string(tc.role), func(t *testing.T) {
			assert.NoError(t, Validate(tc.from, tc.to, tc.role))
		})
	}
}

func TestValidate_EverythingElseIsRejected(t *testing.T) {
	statuses := []models.Status{
		models.StatusPledged, models.StatusVerified, models.StatusInTransit,
		models.StatusDelivered, models.StatusCancelled,
	}
	roles := []Role{RoleOwner, RoleDonor, RoleOther}

	allowed := map[[3]string]bool{
		{"pledged", "verified", "owner"}:     true,
		{"pledged", "cancelled", "donor"}:    true,
		{"verified", "in-transit", "donor"}:  true,
		{"verified", "cancelled", "donor"}:   true,
		{"in-transit", "delivered", "owner"}: true,
		{"in-transit", "cancelled", "donor"}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			for _, role := range roles {
				if allowed[[3]string{from.String(), to.String(), string(role)}] {
					continue
				}
				err := Validate(from, to, role)
				require.Error(t, err, "%s->%s by %s must be rejected", from, to, role)
				assert.True(t, dErrors.HasCode(err, dErrors.CodePolicyRejected))
			}
		}
	}
}

func TestValidate_Reasons(t *testing.T) {
	t.Run("terminal state wins over everything", func(t *testing.T) {
		err := Validate(models.StatusDelivered, models.StatusCancelled, RoleDonor)
		require.Error(t, err)
		assert.Equal(t, ReasonTerminalState, ReasonOf(err))

		err = Validate(models.StatusCancelled, models.StatusVerified, RoleOwner)
		require.Error(t, err)
		assert.Equal(t, ReasonTerminalState, ReasonOf(err))
	})

	t.Run("missing edge is illegal transition", func(t *testing.T) {
		// No skipping intermediate states.
		err := Validate(models.StatusPledged, models.StatusDelivered, RoleOwner)
		require.Error(t, err)
		assert.Equal(t, ReasonIllegalTransition, ReasonOf(err))
	})

	t.Run("existing edge with wrong actor is wrong role", func(t *testing.T) {
		err := Validate(models.StatusPledged, models.StatusVerified, RoleDonor)
		require.Error(t, err)
		assert.Equal(t, ReasonWrongRole, ReasonOf(err))

		err = Validate(models.StatusVerified, models.StatusInTransit, RoleOther)
		require.Error(t, err)
		assert.Equal(t, ReasonWrongRole, ReasonOf(err))
	})

	t.Run("reason of non-policy error is empty", func(t *testing.T) {
		assert.Empty(t, ReasonOf(dErrors.New(dErrors.CodeBusy, "busy")))
		assert.Empty(t, ReasonOf(nil))
	})
}

func TestRoleFor(t *testing.T) {
	owner := id.Address("0xOwner")
	donor := id.Address("0xDonor")

	assert.Equal(t, RoleOwner, RoleFor(owner, donor, owner))
	assert.Equal(t, RoleDonor, RoleFor(donor, donor, owner))
	assert.Equal(t, RoleOther, RoleFor(id.Address("0xStranger"), donor, owner))
	assert.Equal(t, RoleOther, RoleFor(id.Address(""), donor, owner))

	// Casing is canonical: a case-variant address is a different caller.
	assert.Equal(t, RoleOther, RoleFor(id.Address("0xowner"), donor, owner))
}

func TestAllowedTransitions(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.Status{models.StatusVerified},
		AllowedTransitions(models.StatusPledged, RoleOwner))
	assert.ElementsMatch(t,
		[]models.Status{models.StatusInTransit, models.StatusCancelled},
		AllowedTransitions(models.StatusVerified, RoleDonor))
	assert.Empty(t, AllowedTransitions(models.StatusDelivered, RoleOwner))
	assert.Empty(t, AllowedTransitions(models.StatusPledged, RoleOther))
}
