package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkind/internal/donation/models"
	"inkind/internal/wallet"
	id "inkind/pkg/domain"
	"inkind/pkg/platform/circuit"
	"inkind/pkg/platform/sentinel"
)

const testDonor = id.Address("0xDonorAddress")

func newTestGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(srv.URL, 5*time.Second, wallet.Static{Addr: testDonor})
}

func TestGatewayPledge(t *testing.T) {
	t.Run("submits caller identity and decodes the assigned id", func(t *testing.T) {
		var captured wirePledgeRequest
		gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/donations", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_ = json.NewEncoder(w).Encode(map[string]string{"donation_id": "9"})
		}))

		descriptor := models.MaterialDescriptor{
			ItemType: "rice",
			Quantity: 100,
			Unit:     "kg",
		}
		donationID, err := gw.Pledge(context.Background(), 3, descriptor)
		require.NoError(t, err)
		assert.Equal(t, id.DonationID(9), donationID)
		assert.Equal(t, testDonor.String(), captured.From)
		assert.Equal(t, "3", captured.CampaignID)
		assert.Equal(t, "100", captured.Quantity)
	})

	t.Run("relay veto maps to rejection", func(t *testing.T) {
		gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(wireError{Message: "campaign closed"})
		}))

		_, err := gw.Pledge(context.Background(), 3, models.MaterialDescriptor{ItemType: "rice", Quantity: 1, Unit: "kg"})
		require.Error(t, err)
		assert.True(t, IsRejected(err))
		assert.Contains(t, err.Error(), "campaign closed")
	})
}

func TestGatewayUpdateStatus(t *testing.T) {
	t.Run("sends tracking code with the transition", func(t *testing.T) {
		var captured wireStatusRequest
		gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/donations/4/status", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.WriteHeader(http.StatusOK)
		}))

		err := gw.UpdateStatus(context.Background(), 4, models.StatusInTransit, "TRK-100")
		require.NoError(t, err)
		assert.Equal(t, "in-transit", captured.Status)
		assert.Equal(t, "TRK-100", captured.TrackingCode)
		assert.Equal(t, testDonor.String(), captured.From)
	})
}

func TestGatewayErrorMapping(t *testing.T) {
	t.Run("404 maps to not found", func(t *testing.T) {
		gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		_, err := gw.GetDonation(context.Background(), 99)
		assert.True(t, IsNotFound(err))
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		err := gw.MarkDelivered(context.Background(), 4)
		assert.True(t, IsUnavailable(err))
	})

	t.Run("transport failure maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		gw := NewGateway(srv.URL, time.Second, wallet.Static{Addr: testDonor})

		err := gw.Verify(context.Background(), 4, "inspected")
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}

func TestGatewayBreaker(t *testing.T) {
	t.Run("open circuit fails reads fast", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)
		gw := NewGateway(srv.URL, time.Second, wallet.Static{Addr: testDonor},
			WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2))),
			WithProbeInterval(time.Hour),
		)

		_, err := gw.GetDonation(context.Background(), 1)
		assert.True(t, IsUnavailable(err))
		_, err = gw.GetDonation(context.Background(), 1)
		assert.True(t, IsUnavailable(err))
		require.Equal(t, 2, hits)

		// Circuit is open now; further reads never reach the relay.
		_, err = gw.GetDonation(context.Background(), 1)
		assert.True(t, IsUnavailable(err))
		assert.Equal(t, 2, hits)
	})

	t.Run("writes bypass the open circuit", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)
		breaker := circuit.New("test", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(1))
		breaker.RecordFailure()
		require.True(t, breaker.IsOpen())
		gw := NewGateway(srv.URL, time.Second, wallet.Static{Addr: testDonor},
			WithBreaker(breaker),
			WithProbeInterval(time.Hour),
		)

		require.NoError(t, gw.MarkDelivered(context.Background(), 4))
		assert.Equal(t, 1, hits)
		assert.False(t, breaker.IsOpen())
	})

	t.Run("probe read closes a recovered circuit", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_ = json.NewEncoder(w).Encode([]wireCampaign{})
		}))
		t.Cleanup(srv.Close)
		breaker := circuit.New("test", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(1))
		breaker.RecordFailure()
		gw := NewGateway(srv.URL, time.Second, wallet.Static{Addr: testDonor},
			WithBreaker(breaker),
			WithProbeInterval(0),
		)

		_, err := gw.GetCampaigns(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, hits)
		assert.False(t, breaker.IsOpen())
	})
}

func TestGatewayGetDonation(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/donations/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(wireDonation{
			ID:             "7",
			CampaignID:     "2",
			Donor:          testDonor.String(),
			ItemType:       "tents",
			Quantity:       "12",
			Unit:           "pieces",
			EstimatedValue: "3000000000000000000",
			Status:         "pledged",
			PledgedAt:      "1700000000",
		})
	}))

	donation, err := gw.GetDonation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, id.DonationID(7), donation.ID)
	assert.Equal(t, models.StatusPledged, donation.Status)
	assert.Equal(t, "3", donation.EstimatedValue.String())
}
