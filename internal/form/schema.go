// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package form

import (
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// ISODateLayout is the storage format of date values inside the form.
const ISODateLayout = "2006-01-02"

// ResolvePlaceholder returns the effective variant of p for the current
// provider context. The input is never modified.
//
// For the PROVIDER placeholder: a known provider hides the field, otherwise a
// non-empty meta.Provider list promotes it to an enum over that list, which
// takes precedence over any values declared on the placeholder itself.
func ResolvePlaceholder(p models.Placeholder, meta models.TemplateMeta, provider string) models.Placeholder {
	out := p.Clone()
	out.Type = out.EffectiveType()

	if out.Name != models.ProviderPlaceholder {
		return out
	}

	if provider != "" {
		out.Hidden = true
		return out
	}

	if len(meta.Provider) > 0 {
		out.Type = models.PlaceholderEnum
		out.Values = append([]string(nil), meta.Provider...)
	}

	return out
}

// ResolvePlaceholders applies [ResolvePlaceholder] to every placeholder and
// returns a new slice in the same order.
func ResolvePlaceholders(placeholders []models.Placeholder, meta models.TemplateMeta, provider string) []models.Placeholder {
	out := make([]models.Placeholder, 0, len(placeholders))
	for _, p := range placeholders {
		out = append(out, ResolvePlaceholder(p, meta, provider))
	}
	return out
}

// DeriveInitialValue returns the default value of p.
//
// The PROVIDER placeholder takes provider when one is known. Otherwise dates
// default to now shifted by p.Offset days, booleans to false, enums to their
// first value, and numbers and strings to the empty string. The empty string
// is the unset sentinel for numbers, never 0.
func DeriveInitialValue(p models.Placeholder, provider string, now time.Time) any {
	if p.Name == models.ProviderPlaceholder && provider != "" {
		return provider
	}

	switch p.EffectiveType() {
	case models.PlaceholderDate:
		return now.AddDate(0, 0, p.Offset).Format(ISODateLayout)
	case models.PlaceholderBoolean:
		return false
	case models.PlaceholderEnum:
		if len(p.Values) > 0 {
			return p.Values[0]
		}
		return ""
	default:
		return ""
	}
}

// InitialValues builds a fresh value set for placeholders.
func InitialValues(placeholders []models.Placeholder, provider string, now time.Time) models.FormValues {
	values := make(models.FormValues, len(placeholders))
	for _, p := range placeholders {
		values[p.Name] = DeriveInitialValue(p, provider, now)
	}
	return values
}

// Label returns the display label of p: the explicit label, or the
// title-cased placeholder name.
func Label(p models.Placeholder) string {
	if p.Label != "" {
		return p.Label
	}
	return utils.SnakeToTitle(p.Name)
}
