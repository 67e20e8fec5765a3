package form

import (
	"fmt"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

// Validator checks a value set against its placeholders.
type Validator interface {
	ValidateForm(placeholders []models.Placeholder, values models.FormValues) models.FieldErrors
}

// ValueStore holds the values and per-field errors of the active form.
// It is owned by a single screen and is not safe for concurrent use.
type ValueStore struct {
	placeholders []models.Placeholder
	values       models.FormValues
	errors       models.FieldErrors
}

// NewValueStore returns an empty store. Call Reset once a template is known.
func NewValueStore() *ValueStore {
	return &ValueStore{
		values: models.FormValues{},
		errors: models.FieldErrors{},
	}
}

// Reset reinitialises the store for a new template or provider. Previous
// values and errors are discarded.
func (s *ValueStore) Reset(placeholders []models.Placeholder, provider string, now time.Time) {
	s.placeholders = append([]models.Placeholder(nil), placeholders...)
	s.values = InitialValues(placeholders, provider, now)
	s.errors = models.FieldErrors{}
}

// Placeholders returns the placeholders the store was last reset with.
func (s *ValueStore) Placeholders() []models.Placeholder {
	return append([]models.Placeholder(nil), s.placeholders...)
}

// Set stores one value and clears that field's error.
func (s *ValueStore) Set(name string, value any) {
	s.values[name] = value
	delete(s.errors, name)
}

// Get returns the value stored for name.
func (s *ValueStore) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Text returns the value for name formatted for a text input.
func (s *ValueStore) Text(name string) string {
	v, ok := s.values[name]
	if !ok || v == nil {
		return ""
	}
	if str, isStr := v.(string); isStr {
		return str
	}
	return fmt.Sprint(v)
}

// Values returns a copy of the current values.
func (s *ValueStore) Values() models.FormValues {
	return s.values.Clone()
}

// Errors returns a copy of the current field errors.
func (s *ValueStore) Errors() models.FieldErrors {
	out := make(models.FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Error returns the error message for name, or "".
func (s *ValueStore) Error(name string) string {
	return s.errors[name]
}

// SetErrors replaces all field errors.
func (s *ValueStore) SetErrors(errs models.FieldErrors) {
	s.errors = models.FieldErrors{}
	for k, v := range errs {
		s.errors[k] = v
	}
}

// Validate runs v over the current values and stores the result. Values are
// kept either way so a failed submission loses no input.
func (s *ValueStore) Validate(v Validator) bool {
	errs := v.ValidateForm(s.placeholders, s.values.Clone())
	s.SetErrors(errs)
	return !errs.HasErrors()
}
