package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-signing-key", "inkind", time.Hour)

	t.Run("round trips the wallet address", func(t *testing.T) {
		token, err := svc.IssueToken("0xDonorAddress")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id.Address("0xDonorAddress"), claims.WalletAddress)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewJWTService("test-signing-key", "inkind", -time.Minute)
		token, err := expired.IssueToken("0xDonorAddress")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		other := NewJWTService("other-key", "inkind", time.Hour)
		token, err := other.IssueToken("0xDonorAddress")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
