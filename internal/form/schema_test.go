package form

import (
	"testing"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/models"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

// ── DeriveInitialValue ──────────────────────────────────────────────────────

func TestDeriveInitialValue(t *testing.T) {
	tests := []struct {
		name     string
		p        models.Placeholder
		provider string
		want     any
	}{
		{name: "boolean is false", p: models.Placeholder{Name: "B", Type: models.PlaceholderBoolean}, want: false},
		{name: "number is unset", p: models.Placeholder{Name: "N", Type: models.PlaceholderNumber}, want: ""},
		{name: "string is empty", p: models.Placeholder{Name: "S", Type: models.PlaceholderString}, want: ""},
		{name: "enum takes first value", p: models.Placeholder{Name: "E", Type: models.PlaceholderEnum, Values: []string{"x", "y"}}, want: "x"},
		{name: "enum without values", p: models.Placeholder{Name: "E", Type: models.PlaceholderEnum}, want: ""},
		{name: "date today", p: models.Placeholder{Name: "D", Type: models.PlaceholderDate}, want: "2024-03-05"},
		{name: "date plus offset", p: models.Placeholder{Name: "D", Type: models.PlaceholderDate, Offset: 7}, want: "2024-03-12"},
		{name: "date negative offset crosses month", p: models.Placeholder{Name: "D", Type: models.PlaceholderDate, Offset: -5}, want: "2024-02-29"},
		{name: "provider override", p: models.Placeholder{Name: models.ProviderPlaceholder, Type: models.PlaceholderEnum, Values: []string{"a"}}, provider: "acme", want: "acme"},
		{name: "provider without override behaves by type", p: models.Placeholder{Name: models.ProviderPlaceholder, Type: models.PlaceholderEnum, Values: []string{"a"}}, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveInitialValue(tt.p, tt.provider, fixedNow))
		})
	}
}

func TestDeriveInitialValue_BooleanNeverNil(t *testing.T) {
	for _, offset := range []int{0, 3, -1} {
		got := DeriveInitialValue(models.Placeholder{Name: "B", Type: models.PlaceholderBoolean, Offset: offset}, "", fixedNow)
		assert.Equal(t, false, got)
	}
}

// ── ResolvePlaceholder ──────────────────────────────────────────────────────

func TestResolvePlaceholder_ProviderOverrideHides(t *testing.T) {
	orig := models.Placeholder{Name: models.ProviderPlaceholder, Type: models.PlaceholderString}
	got := ResolvePlaceholder(orig, models.TemplateMeta{Provider: []string{"a", "b"}}, "acme")

	assert.True(t, got.Hidden)
	assert.False(t, orig.Hidden, "input placeholder must stay untouched")
}

func TestResolvePlaceholder_MetaProvidersPromoteToEnum(t *testing.T) {
	orig := models.Placeholder{Name: models.ProviderPlaceholder, Type: models.PlaceholderEnum, Values: []string{"literal"}}
	meta := models.TemplateMeta{Provider: []string{"acme", "globex"}}

	got := ResolvePlaceholder(orig, meta, "")

	assert.Equal(t, models.PlaceholderEnum, got.Type)
	assert.Equal(t, []string{"acme", "globex"}, got.Values)
	assert.Equal(t, []string{"literal"}, orig.Values)

	got.Values[0] = "mutated"
	assert.Equal(t, "acme", meta.Provider[0], "resolved values must not alias metadata")
}

func TestResolvePlaceholder_NonProviderUnchanged(t *testing.T) {
	orig := models.Placeholder{Name: "CITY", Values: []string{"a"}}
	got := ResolvePlaceholder(orig, models.TemplateMeta{Provider: []string{"x"}}, "acme")

	assert.Equal(t, models.PlaceholderEnum, got.Type)
	assert.Equal(t, []string{"a"}, got.Values)
	assert.False(t, got.Hidden)
}

func TestResolvePlaceholder_NoMetaProvidersKeepsDeclaration(t *testing.T) {
	orig := models.Placeholder{Name: models.ProviderPlaceholder, Type: models.PlaceholderString}
	got := ResolvePlaceholder(orig, models.TemplateMeta{}, "")

	assert.Equal(t, models.PlaceholderString, got.Type)
	assert.False(t, got.Hidden)
}

// ── InitialValues / Label ───────────────────────────────────────────────────

func TestInitialValues(t *testing.T) {
	placeholders := []models.Placeholder{
		{Name: "NAME"},
		{Name: "SIGNED", Type: models.PlaceholderBoolean},
		{Name: "DUE", Type: models.PlaceholderDate, Offset: 1},
	}

	got := InitialValues(placeholders, "", fixedNow)

	assert.Equal(t, models.FormValues{"NAME": "", "SIGNED": false, "DUE": "2024-03-06"}, got)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Due Date", Label(models.Placeholder{Name: "DUE_DATE"}))
	assert.Equal(t, "Custom", Label(models.Placeholder{Name: "DUE_DATE", Label: "Custom"}))
}
