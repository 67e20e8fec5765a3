package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/app"
)

// UserMessage returns the sentence shown to the user for err.
//
// Service errors with a specific meaning are checked first, then the HTTP
// status carried by the adapter, then transport failures. A server message
// is preferred over the generic status sentence for 400 responses.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return app.MsgFixFormErrors
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return app.BackendInvalidCredentials
	case errors.Is(err, ErrAccountDisabled):
		return app.BackendAccountDisabled
	case errors.Is(err, ErrMissingCredentials):
		return app.BackendMissingCredentials
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrNotAuthenticated):
		return app.MsgUnauthorized
	case errors.Is(err, adapter.ErrUnsupportedFile):
		return app.MsgUnsupportedFile
	case errors.Is(err, ErrNoFileProvided):
		return app.BackendNoFileProvided
	case errors.Is(err, ErrBatchRunning), errors.Is(err, ErrCSVTooShort), errors.Is(err, ErrUnsupportedFormat):
		return err.Error()
	}

	var statusErr *adapter.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusBadRequest:
			if statusErr.Message != "" && statusErr.Message != http.StatusText(http.StatusBadRequest) {
				return statusErr.Message
			}
			return app.MsgBadRequest
		case statusErr.StatusCode == http.StatusUnauthorized:
			return app.MsgUnauthorized
		case statusErr.StatusCode == http.StatusForbidden:
			return app.MsgForbidden
		case statusErr.StatusCode == http.StatusNotFound:
			return app.MsgNotFound
		case statusErr.StatusCode == http.StatusRequestEntityTooLarge:
			return app.MsgPayloadTooLarge
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return app.MsgTooManyRequests
		case statusErr.StatusCode == http.StatusInternalServerError:
			return app.MsgServerError
		case statusErr.StatusCode >= http.StatusBadGateway && statusErr.StatusCode <= http.StatusGatewayTimeout:
			return app.MsgServiceUnavailable
		}
	}

	switch {
	case errors.Is(err, adapter.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return app.MsgTimeout
	case errors.Is(err, adapter.ErrNetwork):
		return app.MsgNetwork
	}

	return app.MsgUnexpected
}
