package validators

import (
	"errors"
	"sort"
	"strings"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrInvalidForm     = errors.New("form has invalid fields")
)

// FieldsError carries per-field messages. It matches [ErrInvalidForm] with
// errors.Is.
type FieldsError struct {
	Fields models.FieldErrors
}

func (e *FieldsError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return ErrInvalidForm.Error() + ": " + strings.Join(names, ", ")
}

func (e *FieldsError) Unwrap() error {
	return ErrInvalidForm
}
