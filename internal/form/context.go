package form

import (
	"regexp"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

var (
	isoDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	germanDatePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// ToContext converts stored form values into the generator payload.
//
// Values are shallow-copied. Date placeholders holding a YYYY-MM-DD string
// are rewritten as DD.MM.YYYY; nothing else changes. Apply it once, right
// before the request: a DD.MM.YYYY value no longer matches and is passed
// through unchanged on a second pass.
func ToContext(placeholders []models.Placeholder, values models.FormValues) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}

	for _, p := range placeholders {
		if p.EffectiveType() != models.PlaceholderDate {
			continue
		}
		s, ok := out[p.Name].(string)
		if !ok || s == "" {
			continue
		}
		out[p.Name] = ISOToGermanDate(s)
	}

	return out
}

// NormalizeDates returns a copy of values in which date placeholders written
// as DD.MM.YYYY are stored as YYYY-MM-DD, the layout the form uses.
func NormalizeDates(placeholders []models.Placeholder, values models.FormValues) models.FormValues {
	out := values.Clone()
	for _, p := range placeholders {
		if p.EffectiveType() != models.PlaceholderDate {
			continue
		}
		if s, ok := out[p.Name].(string); ok {
			out[p.Name] = GermanToISODate(s)
		}
	}
	return out
}

// ISOToGermanDate rewrites YYYY-MM-DD as DD.MM.YYYY. Other input is returned
// unchanged.
func ISOToGermanDate(s string) string {
	if !isoDatePattern.MatchString(s) {
		return s
	}
	return s[8:10] + "." + s[5:7] + "." + s[0:4]
}

// GermanToISODate rewrites DD.MM.YYYY as YYYY-MM-DD. Other input is returned
// unchanged.
func GermanToISODate(s string) string {
	if !germanDatePattern.MatchString(s) {
		return s
	}
	return s[6:10] + "-" + s[3:5] + "-" + s[0:2]
}
