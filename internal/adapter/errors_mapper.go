package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &StatusError{StatusCode: resp.StatusCode(), Message: errorMessage(resp)}
}

// errorMessage prefers {"error"}, then {"detail"}, then the raw body and
// finally the status text.
func errorMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Detail != "" {
			return eb.Detail
		}
	}

	if body != "" && !strings.HasPrefix(body, "<") {
		return body
	}
	return http.StatusText(resp.StatusCode())
}

// mapTransportError classifies a failure that produced no HTTP response.
// Caller cancellation is passed through untouched so it is never retried.
func mapTransportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s request: %w", op, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s request: %w", ErrTimeout, op, err)
	}

	return fmt.Errorf("%w: %s request: %w", ErrNetwork, op, err)
}
