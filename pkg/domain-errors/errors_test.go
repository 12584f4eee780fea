package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct coded error", func(t *testing.T) {
		err := New(CodeBusy, "transition already in flight")
		assert.True(t, HasCode(err, CodeBusy))
		assert.False(t, HasCode(err, CodeNetwork))
	})

	t.Run("wrapped coded error", func(t *testing.T) {
		err := fmt.Errorf("request transition: %w", New(CodeWriteRejected, "ledger veto"))
		assert.True(t, HasCode(err, CodeWriteRejected))
	})

	t.Run("uncoded error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeNetwork, "ledger write", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeNetwork, CodeOf(err))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:     http.StatusBadRequest,
		CodeBadRequest:     http.StatusBadRequest,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodePolicyRejected: http.StatusConflict,
		CodeWriteRejected:  http.StatusConflict,
		CodeNotFound:       http.StatusNotFound,
		CodeBusy:           http.StatusTooManyRequests,
		CodeNetwork:        http.StatusBadGateway,
		CodeInternal:       http.StatusInternalServerError,
		Code("unknown"):    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
