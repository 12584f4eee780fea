package shared_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkind/internal/transport/http/shared"
	dErrors "inkind/pkg/domain-errors"
	"inkind/pkg/testutil"
)

func writeErr(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteError(w, err)
	})
}

func TestWriteError(t *testing.T) {
	t.Run("coded error maps to status and envelope", func(t *testing.T) {
		err := dErrors.New(dErrors.CodeNotFound, "donation 9 not found")
		rr := testutil.DoRequest(writeErr(err), testutil.NewRequest(t, http.MethodGet, "/donations/9"))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
		body := testutil.UnmarshalResponse[shared.ErrorBody](t, rr)
		assert.Equal(t, "donation 9 not found", body.Message)
	})

	t.Run("metadata survives the envelope", func(t *testing.T) {
		err := dErrors.WithMetadata(dErrors.CodePolicyRejected, "transition rejected", map[string]string{
			"reason": "wrong_role",
			"from":   "pledged",
			"to":     "verified",
		})
		rr := testutil.DoRequest(writeErr(err), testutil.NewRequest(t, http.MethodPost, "/donations/9/transition"))

		testutil.AssertStatus(t, rr, http.StatusConflict)
		body := testutil.UnmarshalResponse[shared.ErrorBody](t, rr)
		assert.Equal(t, "policy_rejected", body.Error)
		assert.Equal(t, "wrong_role", body.Metadata["reason"])
		assert.Equal(t, "pledged", body.Metadata["from"])
	})

	t.Run("uncoded error renders as internal", func(t *testing.T) {
		rr := testutil.DoRequest(writeErr(errors.New("pq: connection reset")), testutil.NewRequest(t, http.MethodGet, "/donations/9"))

		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal")
		body := testutil.UnmarshalResponse[shared.ErrorBody](t, rr)
		assert.Empty(t, body.Message)
	})

	t.Run("wrapped coded error keeps its code", func(t *testing.T) {
		cause := errors.New("dial tcp: i/o timeout")
		err := dErrors.Wrap(dErrors.CodeNetwork, "pledge outcome unknown", cause)
		rr := testutil.DoRequest(writeErr(err), testutil.NewRequest(t, http.MethodPost, "/campaigns/1/donations"))

		testutil.AssertStatusAndError(t, rr, http.StatusBadGateway, "network_error")
	})
}

func TestWriteJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusCreated, map[string]any{"id": "7"})
	})
	rr := testutil.DoRequest(handler, testutil.NewRequest(t, http.MethodPost, "/campaigns/1/donations"))

	testutil.AssertStatus(t, rr, http.StatusCreated)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	testutil.AssertJSONContains(t, rr, "id", "7")
}
