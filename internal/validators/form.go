package validators

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// FormInput is the value accepted by [FormValidator.Validate].
type FormInput struct {
	Placeholders []models.Placeholder
	Values       models.FormValues
}

// FormValidator checks placeholder form values.
//
// Hidden and optional fields are never required. A present value is also
// checked against its type: dates must be real YYYY-MM-DD days, enums must
// be one of the declared values and numbers must parse. Every violation is
// collected; nothing short-circuits.
type FormValidator struct{}

// NewFormValidator returns a [FormValidator].
func NewFormValidator() *FormValidator {
	return &FormValidator{}
}

// Validate implements [Validator]. obj must be a [FormInput] or *FormInput.
// When fields are given only those placeholders are checked. The returned
// error is a *[FieldsError] when any field fails.
func (v *FormValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var in FormInput
	switch value := obj.(type) {
	case FormInput:
		in = value
	case *FormInput:
		in = *value
	default:
		return ErrUnsupportedType
	}

	placeholders := in.Placeholders
	if len(fields) > 0 {
		placeholders = make([]models.Placeholder, 0, len(fields))
		for _, p := range in.Placeholders {
			if slices.Contains(fields, p.Name) {
				placeholders = append(placeholders, p)
			}
		}
	}

	if errs := v.ValidateForm(placeholders, in.Values); errs.HasErrors() {
		return &FieldsError{Fields: errs}
	}
	return nil
}

// ValidateForm returns the message of every failing field keyed by
// placeholder name. The result is empty, never nil, when all fields pass.
func (v *FormValidator) ValidateForm(placeholders []models.Placeholder, values models.FormValues) models.FieldErrors {
	errs := models.FieldErrors{}

	for _, p := range placeholders {
		if p.Hidden {
			continue
		}

		value, present := values[p.Name]
		if isMissing(value, present) {
			if !p.Optional {
				errs[p.Name] = requiredMessage(p)
			}
			continue
		}

		if msg := checkType(p, value); msg != "" {
			errs[p.Name] = msg
		}
	}

	return errs
}

func isMissing(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func checkType(p models.Placeholder, value any) string {
	label := form.Label(p)

	switch p.EffectiveType() {
	case models.PlaceholderDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be a valid date", label)
		}
		if _, err := time.Parse(form.ISODateLayout, s); err != nil {
			return fmt.Sprintf("%s must be a valid date", label)
		}
	case models.PlaceholderEnum:
		s, ok := value.(string)
		if len(p.Values) > 0 && (!ok || !slices.Contains(p.Values, s)) {
			return fmt.Sprintf("%s must be one of: %s", label, strings.Join(p.Values, ", "))
		}
	case models.PlaceholderNumber:
		if !isNumber(value) {
			return fmt.Sprintf("%s must be a number", label)
		}
	}

	return ""
}

func isNumber(value any) bool {
	switch n := value.(type) {
	case int, int32, int64:
		return true
	case float32:
		return isFinite(float64(n))
	case float64:
		return isFinite(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil && isFinite(f)
	default:
		return false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func requiredMessage(p models.Placeholder) string {
	return fmt.Sprintf("%s is required", form.Label(p))
}
