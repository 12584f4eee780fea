package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDonationID(t *testing.T) {
	t.Run("valid decimal string", func(t *testing.T) {
		id, err := ParseDonationID("42")
		require.NoError(t, err)
		assert.Equal(t, DonationID(42), id)
		assert.Equal(t, "42", id.String())
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseDonationID("abc")
		assert.Error(t, err)
	})

	t.Run("rejects negative input", func(t *testing.T) {
		_, err := ParseDonationID("-1")
		assert.Error(t, err)
	})

	t.Run("rejects overflow", func(t *testing.T) {
		_, err := ParseDonationID("18446744073709551616") // 2^64
		assert.Error(t, err)
	})
}

func TestParseCampaignID(t *testing.T) {
	id, err := ParseCampaignID("7")
	require.NoError(t, err)
	assert.Equal(t, CampaignID(7), id)

	_, err = ParseCampaignID("")
	assert.Error(t, err)
}

func TestAddressEqual(t *testing.T) {
	a := Address("0xAbC123")
	assert.True(t, a.Equal(Address("0xAbC123")))

	// Canonical casing matters: same hex digits, different case, different address.
	assert.False(t, a.Equal(Address("0xabc123")))
	assert.False(t, Address("").Equal(a))
	assert.True(t, Address("").IsZero())
}
