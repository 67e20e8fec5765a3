package adapter

import (
	"errors"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrNetwork means the request never got an HTTP response.
	ErrNetwork = errors.New("network error")
	// ErrTimeout means the request deadline expired on the client side.
	ErrTimeout = errors.New("request timeout")

	ErrUnsupportedFile  = errors.New("only .docx files are allowed")
	ErrInvalidResponse  = errors.New("invalid response")
	ErrEmptyCredentials = errors.New("username and password are required")
)

// StatusError is a non-2xx response. It unwraps to the sentinel matching
// StatusCode, so both errors.Is(err, ErrNotFound) and errors.As(err,
// &statusErr) work.
type StatusError struct {
	StatusCode int
	// Message is the server's {"error"} or {"detail"} text, or the raw body.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.kind().Error()
	}
	return e.kind().Error() + ": " + e.Message
}

func (e *StatusError) Unwrap() error {
	return e.kind()
}

func (e *StatusError) kind() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	case http.StatusGatewayTimeout:
		return ErrGatewayTimeout
	default:
		return ErrUnexpectedStatus
	}
}
