//go:build integration

package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"inkind/internal/donation/models"
	"inkind/internal/donation/view"
	id "inkind/pkg/domain"
	"inkind/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *view.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = view.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeEntry(donationID id.DonationID) view.Entry {
	return view.Entry{
		Donation: models.Donation{
			ID:             donationID,
			CampaignID:     3,
			Donor:          id.Address("0xAbCd000000000000000000000000000000000001"),
			ItemType:       "blankets",
			Description:    "wool blankets",
			Quantity:       40,
			Unit:           "piece",
			EstimatedValue: decimal.RequireFromString("2.5"),
			Location:       "warehouse 7",
			Status:         models.StatusPledged,
			PledgedAt:      time.Unix(1700000000, 0).UTC(),
		},
		UpdatedAt: time.Unix(1700000100, 0).UTC(),
	}
}

func (s *RedisStoreSuite) TestPutGetRoundtrip() {
	ctx := context.Background()
	entry := makeEntry(11)

	s.Require().NoError(s.store.Put(ctx, entry))

	got, ok, err := s.store.Get(ctx, 11)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(entry.Donation.ID, got.Donation.ID)
	s.Equal(entry.Donation.Status, got.Donation.Status)
	s.True(entry.Donation.EstimatedValue.Equal(got.Donation.EstimatedValue))
	s.True(entry.UpdatedAt.Equal(got.UpdatedAt))
	s.False(got.Stale)
}

func (s *RedisStoreSuite) TestGetMiss() {
	got, ok, err := s.store.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.False(ok)
	s.Zero(got)
}

func (s *RedisStoreSuite) TestPutOverwritesWholesale() {
	ctx := context.Background()
	entry := makeEntry(7)
	s.Require().NoError(s.store.Put(ctx, entry))

	entry.Donation.Status = models.StatusVerified
	entry.Donation.VerificationNotes = []models.VerificationNote{{
		Note:     "inspected on site",
		Verifier: id.Address("0xOwner00000000000000000000000000000000001"),
		At:       time.Unix(1700000200, 0).UTC(),
	}}
	entry.Stale = true
	entry.LastError = "write outcome unknown"
	s.Require().NoError(s.store.Put(ctx, entry))

	got, ok, err := s.store.Get(ctx, 7)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(models.StatusVerified, got.Donation.Status)
	s.Require().Len(got.Donation.VerificationNotes, 1)
	s.Equal("inspected on site", got.Donation.VerificationNotes[0].Note)
	s.True(got.Stale)
	s.Equal("write outcome unknown", got.LastError)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, makeEntry(5)))
	s.Require().NoError(s.store.Delete(ctx, 5))

	_, ok, err := s.store.Get(ctx, 5)
	s.Require().NoError(err)
	s.False(ok)

	// Deleting an absent entry is not an error.
	s.Require().NoError(s.store.Delete(ctx, 5))
}

func (s *RedisStoreSuite) TestEntriesExpire() {
	ctx := context.Background()
	short := view.NewRedisStore(s.redis.Client, view.WithTTL(time.Second))
	s.Require().NoError(short.Put(ctx, makeEntry(13)))

	s.Require().Eventually(func() bool {
		_, ok, err := short.Get(ctx, 13)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
