package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

var catalogItems = []models.TemplateItem{
	{Filename: "invoice.docx", Meta: models.TemplateMeta{Name: "Invoice", Provider: []string{"ACME"}, Category: []string{"finance"}}},
	{Filename: "nda_template.docx", Meta: models.TemplateMeta{Provider: []string{"Globex", "ACME"}, Category: []string{"legal"}}},
	{Filename: "offer_letter.docx", Meta: models.TemplateMeta{Name: "Offer Letter", Category: []string{"hr"}}},
}

func loadedCatalog(t *testing.T, provider string) *CatalogModel {
	t.Helper()

	services, _ := newTestServices(t, t.TempDir())
	m := NewCatalogModel(context.Background(), services, provider)
	m.Update(templatesLoadedMsg{items: catalogItems})
	return m
}

func visibleNames(m *CatalogModel) []string {
	out := make([]string, 0, len(m.visible))
	for _, it := range m.visible {
		out = append(out, it.Filename)
	}
	return out
}

func TestCatalogModel_Loaded(t *testing.T) {
	m := loadedCatalog(t, "")

	assert.Len(t, m.visible, 3)
	assert.Equal(t, []string{"ACME", "Globex"}, m.facets.Providers)

	view := m.View()
	assert.Contains(t, view, "Offer Letter")
	assert.Contains(t, view, "Provider: All")
}

func TestCatalogModel_Search(t *testing.T) {
	m := loadedCatalog(t, "")

	m.Update(keyRunes("/"))
	require.True(t, m.searching)
	typeText(m, "nda")
	assert.Equal(t, []string{"nda_template.docx"}, visibleNames(m))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Len(t, m.visible, 1)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.visible, 3)
}

func TestCatalogModel_FuzzyFallback(t *testing.T) {
	m := loadedCatalog(t, "")

	m.Update(keyRunes("/"))
	typeText(m, "offr")

	require.NotEmpty(t, m.visible)
	assert.Equal(t, "offer_letter.docx", m.visible[0].Filename)
}

func TestCatalogModel_ProviderFacet(t *testing.T) {
	m := loadedCatalog(t, "")

	m.Update(keyRunes("p"))
	assert.Equal(t, "ACME", m.selectedProvider())
	assert.Equal(t, []string{"invoice.docx", "nda_template.docx"}, visibleNames(m))

	m.Update(keyRunes("p"))
	assert.Equal(t, []string{"nda_template.docx"}, visibleNames(m))

	m.Update(keyRunes("p"))
	assert.Empty(t, m.selectedProvider())
	assert.Len(t, m.visible, 3)
}

func TestCatalogModel_ProviderOverride(t *testing.T) {
	m := loadedCatalog(t, "Globex")

	m.Update(keyRunes("p"))

	assert.Equal(t, "Globex", m.selectedProvider())
	assert.Equal(t, []string{"nda_template.docx"}, visibleNames(m))
}

func TestCatalogModel_OpenPassesTemplate(t *testing.T) {
	m := loadedCatalog(t, "")
	m.Update(keyRunes("p"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{
		Page:    pageForm,
		Payload: openTemplateMsg{Filename: "invoice.docx", Provider: "ACME"},
	}, cmd())

	m.Update(keyRunes("j"))
	_, cmd = m.Update(keyRunes("b"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{
		Page:    pageBatch,
		Payload: openTemplateMsg{Filename: "nda_template.docx", Provider: "ACME"},
	}, cmd())
}

func TestCatalogModel_RecentShortcut(t *testing.T) {
	m := loadedCatalog(t, "")
	m.Update(recentLoadedMsg{recent: []models.RecentTemplate{
		{Filename: "offer_letter.docx", Name: "Offer Letter"},
		{Filename: "invoice.docx", Name: "Invoice", Provider: "ACME"},
	}})

	_, cmd := m.Update(keyRunes("2"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{
		Page:    pageForm,
		Payload: openTemplateMsg{Filename: "invoice.docx", Provider: "ACME"},
	}, cmd())

	_, cmd = m.Update(keyRunes("5"))
	assert.Nil(t, cmd)
}

func TestCatalogModel_SidebarToggle(t *testing.T) {
	m := loadedCatalog(t, "")

	_, cmd := m.Update(keyRunes("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.sidebarCollapsed)
	assert.Nil(t, cmd())
	assert.True(t, m.services.Preferences.SidebarCollapsed(context.Background()))
}
