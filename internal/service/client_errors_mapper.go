// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The adapter error stays in the chain so callers can still
// match on the HTTP status.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *adapter.StatusError
	msg := ""
	if errors.As(err, &statusErr) {
		msg = statusErr.Message
	}

	switch {
	case errors.Is(err, adapter.ErrEmptyCredentials):
		return fmt.Errorf("%w: %w", ErrMissingCredentials, err)

	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.BackendMissingCredentials:
			return fmt.Errorf("%w: %w", ErrMissingCredentials, err)
		case app.BackendNoFileProvided:
			return fmt.Errorf("%w: %w", ErrNoFileProvided, err)
		case app.BackendOnlyDocx:
			return fmt.Errorf("%w: %w", adapter.ErrUnsupportedFile, err)
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.BackendInvalidCredentials:
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		case app.BackendAccountDisabled:
			return fmt.Errorf("%w: %w", ErrAccountDisabled, err)
		case app.BackendInvalidRefreshToken, app.BackendInvalidToken:
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}

	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	}

	return err
}
