package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestStatusError_MapsSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
		{http.StatusGatewayTimeout, ErrGatewayTimeout},
		{http.StatusTeapot, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := &StatusError{StatusCode: tt.status, Message: "m"}
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.want.Error()+": m", err.Error())
		})
	}
}

func TestStatusError_NoMessage(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusNotFound}
	assert.Equal(t, "not found", err.Error())
}

func TestMapTransportError(t *testing.T) {
	assert.ErrorIs(t, mapTransportError("x", errors.New("connection refused")), ErrNetwork)
	assert.ErrorIs(t, mapTransportError("x", fmt.Errorf("wrap: %w", timeoutErr{})), ErrTimeout)
	assert.ErrorIs(t, mapTransportError("x", context.DeadlineExceeded), ErrTimeout)

	cancelled := mapTransportError("x", context.Canceled)
	assert.ErrorIs(t, cancelled, context.Canceled)
	assert.NotErrorIs(t, cancelled, ErrNetwork)
}
