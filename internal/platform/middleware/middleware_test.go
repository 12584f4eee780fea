package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkind/internal/platform/middleware"
	id "inkind/pkg/domain"
	"inkind/pkg/requestcontext"
	"inkind/pkg/testutil"
)

const walletAlice = id.Address("0xA11ce00000000000000000000000000000000001")

type stubValidator struct {
	claims *middleware.SessionClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*middleware.SessionClaims, error) {
	return s.claims, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireWallet(t *testing.T) {
	captureWallet := func(got *id.Address) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = requestcontext.WalletAddress(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	}

	t.Run("valid token injects the caller address", func(t *testing.T) {
		validator := &stubValidator{claims: &middleware.SessionClaims{WalletAddress: walletAlice}}
		var got id.Address
		handler := middleware.RequireWallet(validator, testLogger())(captureWallet(&got))

		req := testutil.NewRequest(t, http.MethodPost, "/donations/1/transition")
		req.Header.Set("Authorization", "Bearer some-token")
		rr := testutil.DoRequest(handler, req)

		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Equal(t, walletAlice, got)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		validator := &stubValidator{claims: &middleware.SessionClaims{WalletAddress: walletAlice}}
		handler := middleware.RequireWallet(validator, testLogger())(captureWallet(new(id.Address)))

		rr := testutil.DoRequest(handler, testutil.NewRequest(t, http.MethodPost, "/donations/1/transition"))

		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		validator := &stubValidator{err: errors.New("token has expired")}
		handler := middleware.RequireWallet(validator, testLogger())(captureWallet(new(id.Address)))

		req := testutil.NewRequest(t, http.MethodPost, "/donations/1/transition")
		req.Header.Set("Authorization", "Bearer stale-token")
		rr := testutil.DoRequest(handler, req)

		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("context-injected wallet does not bypass the token check", func(t *testing.T) {
		validator := &stubValidator{err: errors.New("no session")}
		var got id.Address
		handler := middleware.RequireWallet(validator, testLogger())(captureWallet(&got))

		req := testutil.WithWallet(testutil.NewRequest(t, http.MethodPost, "/donations/1/transition"), walletAlice)
		rr := testutil.DoRequest(handler, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		assert.True(t, got.IsZero())
	})
}

func TestRequestID(t *testing.T) {
	echo := func(got *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = requestcontext.RequestID(r.Context())
		})
	}

	t.Run("caller-supplied id is preserved", func(t *testing.T) {
		var got string
		rr := testutil.DoRequest(middleware.RequestID(echo(&got)), func() *http.Request {
			req := testutil.NewRequest(t, http.MethodGet, "/campaigns")
			req.Header.Set("X-Request-ID", "req-123")
			return req
		}())

		assert.Equal(t, "req-123", got)
		assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	})

	t.Run("id is generated when absent", func(t *testing.T) {
		var got string
		rr := testutil.DoRequest(middleware.RequestID(echo(&got)), testutil.NewRequest(t, http.MethodGet, "/campaigns"))

		require.NotEmpty(t, got)
		assert.Equal(t, got, rr.Header().Get("X-Request-ID"))
	})
}

func TestRecovery(t *testing.T) {
	handler := middleware.Recovery(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := testutil.DoRequest(handler, testutil.NewRequest(t, http.MethodGet, "/campaigns"))

	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal")
}
