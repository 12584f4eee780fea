package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkind/internal/donation/models"
	id "inkind/pkg/domain"
)

func validWireDonation() wireDonation {
	return wireDonation{
		ID:             "7",
		CampaignID:     "2",
		Donor:          "0xDonorAddress",
		ItemType:       "blankets",
		Description:    "wool blankets",
		Quantity:       "40",
		Unit:           "pieces",
		EstimatedValue: "2500000000000000000",
		Location:       "warehouse 3",
		Status:         "verified",
		Verifiers:      []string{"0xOwnerAddress"},
		VerificationNotes:      []string{"checked on arrival"},
		VerificationTimestamps: []string{"1700000000"},
		PledgedAt:              "1699990000",
	}
}

func TestWireDonationToDonation(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		donation, err := validWireDonation().toDonation()
		require.NoError(t, err)

		assert.Equal(t, id.DonationID(7), donation.ID)
		assert.Equal(t, id.CampaignID(2), donation.CampaignID)
		assert.Equal(t, id.Address("0xDonorAddress"), donation.Donor)
		assert.Equal(t, uint64(40), donation.Quantity)
		assert.Equal(t, "2.5", donation.EstimatedValue.String())
		assert.Equal(t, models.StatusVerified, donation.Status)
		assert.Equal(t, time.Unix(1699990000, 0).UTC(), donation.PledgedAt)
		assert.Nil(t, donation.ExpiryDate)

		require.Len(t, donation.VerificationNotes, 1)
		note := donation.VerificationNotes[0]
		assert.Equal(t, "checked on arrival", note.Note)
		assert.Equal(t, id.Address("0xOwnerAddress"), note.Verifier)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), note.At)
	})

	t.Run("zero expiry means unset", func(t *testing.T) {
		w := validWireDonation()
		w.ExpiryDate = "0"
		donation, err := w.toDonation()
		require.NoError(t, err)
		assert.Nil(t, donation.ExpiryDate)
	})

	t.Run("non-zero expiry is mapped", func(t *testing.T) {
		w := validWireDonation()
		w.ExpiryDate = "1800000000"
		donation, err := w.toDonation()
		require.NoError(t, err)
		require.NotNil(t, donation.ExpiryDate)
		assert.Equal(t, time.Unix(1800000000, 0).UTC(), *donation.ExpiryDate)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		w := validWireDonation()
		w.Status = "teleported"
		_, err := w.toDonation()
		require.Error(t, err)
	})

	t.Run("rejects mismatched verification arrays", func(t *testing.T) {
		w := validWireDonation()
		w.VerificationTimestamps = nil
		_, err := w.toDonation()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verification arrays disagree")
	})
}

func TestZipNotes(t *testing.T) {
	t.Run("tolerates missing verifiers", func(t *testing.T) {
		notes, err := zipNotes(nil, []string{"a", "b"}, []string{"1700000000", "1700000001"})
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.True(t, notes[0].Verifier.IsZero())
	})

	t.Run("rejects verifier count mismatch", func(t *testing.T) {
		_, err := zipNotes([]string{"0xA"}, []string{"a", "b"}, []string{"1700000000", "1700000001"})
		require.Error(t, err)
	})
}
