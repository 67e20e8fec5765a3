package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrMissingCredentials = errors.New("username and password are required")

	ErrTemplateNotFound = errors.New("template not found")
	ErrNoFileProvided   = errors.New("no file provided")

	ErrUnsupportedFormat = errors.New("unsupported report format")

	ErrBatchRunning  = errors.New("batch generation is already running")
	ErrBatchCanceled = errors.New("batch generation canceled")
	ErrItemNotFound  = errors.New("batch item not found")
	ErrCSVTooShort   = errors.New("CSV must have header and data rows")
)

// FieldValidationError is returned when a submission is refused because
// some fields failed validation. Nothing was sent to the server.
type FieldValidationError struct {
	Fields models.FieldErrors
}

func (e *FieldValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
