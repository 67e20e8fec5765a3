package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/mock"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

var catalogFixture = []models.TemplateItem{
	{Filename: "invoice.docx", Meta: models.TemplateMeta{
		Name: "Invoice", Provider: []string{"ACME"}, Category: []string{"finance"}, Tags: []string{"billing", "monthly"}, Creator: "Dana",
	}},
	{Filename: "nda_template.docx", Meta: models.TemplateMeta{
		Provider: []string{"Globex", "ACME"}, Category: []string{"legal"}, Tags: []string{"contract"},
	}},
	{Filename: "offer_letter.docx", Meta: models.TemplateMeta{
		Name: "Offer Letter", Category: []string{"hr"}, Creator: "Sam",
	}},
}

func filenames(items []models.TemplateItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Filename)
	}
	return out
}

func TestCatalogFilter(t *testing.T) {
	svc := NewClientCatalogService(nil, logger.Nop())

	tests := []struct {
		name   string
		filter TemplateFilter
		want   []string
	}{
		{name: "zero filter", filter: TemplateFilter{}, want: []string{"invoice.docx", "nda_template.docx", "offer_letter.docx"}},
		{name: "provider", filter: TemplateFilter{Provider: "ACME"}, want: []string{"invoice.docx", "nda_template.docx"}},
		{name: "category", filter: TemplateFilter{Category: "legal"}, want: []string{"nda_template.docx"}},
		{name: "provider and category", filter: TemplateFilter{Provider: "Globex", Category: "finance"}, want: []string{}},
		{name: "search filename", filter: TemplateFilter{Search: "NDA"}, want: []string{"nda_template.docx"}},
		{name: "search meta name", filter: TemplateFilter{Search: "offer let"}, want: []string{"offer_letter.docx"}},
		{name: "search tags", filter: TemplateFilter{Search: "billing mon"}, want: []string{"invoice.docx"}},
		{name: "search creator", filter: TemplateFilter{Search: "sam"}, want: []string{"offer_letter.docx"}},
		{name: "tags all required", filter: TemplateFilter{Tags: []string{"billing", "contract"}}, want: []string{}},
		{name: "tag", filter: TemplateFilter{Tags: []string{"contract"}}, want: []string{"nda_template.docx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filenames(svc.Filter(catalogFixture, tt.filter)))
		})
	}
}

func TestCatalogFacets(t *testing.T) {
	svc := NewClientCatalogService(nil, logger.Nop())

	f := svc.Facets(catalogFixture)

	assert.Equal(t, []string{"ACME", "Globex"}, f.Providers)
	assert.Equal(t, []string{"finance", "hr", "legal"}, f.Categories)
	assert.Equal(t, []string{"billing", "contract", "monthly"}, f.Tags)
	assert.True(t, TemplateFilter{}.IsZero())
}

func TestCatalogRank(t *testing.T) {
	svc := NewClientCatalogService(nil, logger.Nop())

	assert.Equal(t, catalogFixture, svc.Rank(catalogFixture, "  "))

	ranked := svc.Rank(catalogFixture, "offr")
	require.NotEmpty(t, ranked)
	assert.Equal(t, "offer_letter.docx", ranked[0].Filename)

	assert.Empty(t, svc.Rank(catalogFixture, "zzzz"))
}

func TestCatalogList(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	svc := NewClientCatalogService(a, logger.Nop())

	a.EXPECT().ListTemplates(gomock.Any()).Return(catalogFixture, nil)
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)

	a.EXPECT().ListTemplates(gomock.Any()).Return(nil, &adapter.StatusError{StatusCode: http.StatusServiceUnavailable})
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)
}

func TestTemplateDisplayName(t *testing.T) {
	assert.Equal(t, "Invoice", TemplateDisplayName(catalogFixture[0]))
	assert.Equal(t, "Nda Template", TemplateDisplayName(catalogFixture[1]))
	assert.Equal(t, ".docx", TemplateDisplayName(models.TemplateItem{Filename: ".docx"}))
}
