// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

const allFacet = "All"

// CatalogModel lists the templates. The list is narrowed by the provider and
// category facets and by the search box; the recent sidebar offers the last
// opened templates.
type CatalogModel struct {
	ctx      context.Context
	services *service.ClientServices
	provider string
	now      func() time.Time

	items   []models.TemplateItem
	visible []models.TemplateItem
	facets  service.TemplateFacets
	idx     int
	loading bool

	search    textinput.Model
	searching bool

	providerIdx int
	categoryIdx int

	recent           []models.RecentTemplate
	sidebarCollapsed bool

	preview *previewRenderer
	spinner spinner.Model
	status  string
	errMsg  string
}

// NewCatalogModel creates the catalog page. provider is the deployment
// provider override; when set the provider facet is fixed to it.
func NewCatalogModel(ctx context.Context, services *service.ClientServices, provider string) *CatalogModel {
	search := textinput.New()
	search.Placeholder = "search templates"
	search.Prompt = "/ "
	search.Width = 40

	return &CatalogModel{
		ctx:      ctx,
		services: services,
		provider: provider,
		now:      time.Now,
		search:   search,
		preview:  newPreviewRenderer(48),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init loads the catalog and the recent list.
func (m *CatalogModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.cmdLoad(), m.cmdLoadRecent(), m.spinner.Tick)
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m, cmdSessionExpired
			}
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.items
		m.facets = m.services.Catalog.Facets(msg.items)
		m.clampFacets()
		m.refilter()
		return m, nil

	case recentLoadedMsg:
		m.recent = msg.recent
		m.sidebarCollapsed = msg.collapsed
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *CatalogModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		return m, nil
	case msg.Type == tea.KeyUp:
		m.move(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.move(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *CatalogModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		m.move(-1)
	case key.Matches(msg, keys.down):
		m.move(1)
	case key.Matches(msg, keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.esc):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
	case key.Matches(msg, keys.enter):
		return m, m.open(pageForm)
	case key.Matches(msg, keys.batch):
		return m, m.open(pageBatch)
	case key.Matches(msg, keys.validate):
		return m, func() tea.Msg { return NavigateTo{Page: pageValidator} }
	case key.Matches(msg, keys.provider):
		if m.provider == "" {
			m.providerIdx = (m.providerIdx + 1) % (len(m.facets.Providers) + 1)
			m.refilter()
		}
	case key.Matches(msg, keys.category):
		m.categoryIdx = (m.categoryIdx + 1) % (len(m.facets.Categories) + 1)
		m.refilter()
	case key.Matches(msg, keys.sidebar):
		m.sidebarCollapsed = !m.sidebarCollapsed
		return m, m.cmdSaveSidebar(m.sidebarCollapsed)
	case key.Matches(msg, keys.reload):
		return m, m.Init()
	case key.Matches(msg, keys.clear):
		m.services.Recent.Clear(m.ctx)
		m.recent = nil
		m.status = "Recent templates cleared"
		return m, cmdClearStatus()
	case key.Matches(msg, keys.recent):
		n := int(msg.Runes[0] - '1')
		if n < len(m.recent) {
			r := m.recent[n]
			provider := r.Provider
			if m.provider != "" {
				provider = m.provider
			}
			return m, navigateWithTemplate(pageForm, r.Filename, provider)
		}
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m *CatalogModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Provider: %s   Category: %s\n", m.selectedProviderLabel(), m.selectedCategoryLabel())
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading templates...")
	case len(m.visible) == 0 && len(m.items) == 0 && m.errMsg == "":
		b.WriteString("No templates available.")
	case len(m.visible) == 0:
		b.WriteString("No templates match the current filter.")
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString(statusLine(m.status, m.errMsg))

	body := b.String()
	var panes []string
	if !m.sidebarCollapsed {
		panes = append(panes, sidebarStyle.Render(m.renderRecent()))
	}
	panes = append(panes, body)
	if item, ok := m.current(); ok && !m.loading {
		panes = append(panes, previewStyle.Render(m.preview.Render(item)))
	}

	hot := "enter: open │ b: batch │ v: validate │ /: search │ p/c: provider/category │ s: sidebar │ 1-5: recent │ x: clear recent │ r: reload │ L: logout │ ?: about │ q: quit"
	return renderPage("TEMPLATES", lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(panes)...), hot)
}

func (m *CatalogModel) renderList() string {
	var b strings.Builder
	for i, item := range m.visible {
		line := fmt.Sprintf("%s %s", cursor(i == m.idx), fitText(service.TemplateDisplayName(item), 40))
		if m.services.Recent.IsRecent(m.ctx, item.Filename) {
			line += helpStyle.Render("  (recent)")
		}
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *CatalogModel) renderRecent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(helpStyle.Render("nothing yet"))
		return b.String()
	}
	now := m.now()
	for i, r := range m.recent {
		fmt.Fprintf(&b, "%d %s\n", i+1, fitText(valueOrDash(r.Name), 24))
		fmt.Fprintf(&b, "  %s\n", helpStyle.Render(utils.FormatTimeAgo(r.AccessedTime(), now)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// refilter recomputes the visible list: exact substring matches first and,
// when the query matches nothing literally, a fuzzy ranking.
func (m *CatalogModel) refilter() {
	query := strings.TrimSpace(m.search.Value())
	facet := service.TemplateFilter{
		Provider: m.selectedProvider(),
		Category: m.selectedCategory(),
	}

	withQuery := facet
	withQuery.Search = query
	visible := m.services.Catalog.Filter(m.items, withQuery)
	if len(visible) == 0 && query != "" {
		visible = m.services.Catalog.Rank(m.services.Catalog.Filter(m.items, facet), query)
	}

	m.visible = visible
	if m.idx >= len(m.visible) {
		m.idx = len(m.visible) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *CatalogModel) clampFacets() {
	if m.providerIdx > len(m.facets.Providers) {
		m.providerIdx = 0
	}
	if m.categoryIdx > len(m.facets.Categories) {
		m.categoryIdx = 0
	}
}

func (m *CatalogModel) move(delta int) {
	next := m.idx + delta
	if next >= 0 && next < len(m.visible) {
		m.idx = next
	}
}

func (m *CatalogModel) current() (models.TemplateItem, bool) {
	if m.idx < 0 || m.idx >= len(m.visible) {
		return models.TemplateItem{}, false
	}
	return m.visible[m.idx], true
}

func (m *CatalogModel) selectedProvider() string {
	if m.provider != "" {
		return m.provider
	}
	if m.providerIdx == 0 || m.providerIdx > len(m.facets.Providers) {
		return ""
	}
	return m.facets.Providers[m.providerIdx-1]
}

func (m *CatalogModel) selectedCategory() string {
	if m.categoryIdx == 0 || m.categoryIdx > len(m.facets.Categories) {
		return ""
	}
	return m.facets.Categories[m.categoryIdx-1]
}

func (m *CatalogModel) selectedProviderLabel() string {
	if p := m.selectedProvider(); p != "" {
		return p
	}
	return allFacet
}

func (m *CatalogModel) selectedCategoryLabel() string {
	if c := m.selectedCategory(); c != "" {
		return c
	}
	return allFacet
}

func (m *CatalogModel) open(page string) tea.Cmd {
	item, ok := m.current()
	if !ok {
		return nil
	}
	return navigateWithTemplate(page, item.Filename, m.selectedProvider())
}

func navigateWithTemplate(page, filename, provider string) tea.Cmd {
	return func() tea.Msg {
		return NavigateTo{Page: page, Payload: openTemplateMsg{Filename: filename, Provider: provider}}
	}
}

func (m *CatalogModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		items, err := services.Catalog.List(ctx)
		return templatesLoadedMsg{items: items, err: withSession(ctx, services.Session, err)}
	}
}

func (m *CatalogModel) cmdLoadRecent() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		return recentLoadedMsg{
			recent:    services.Recent.List(ctx),
			collapsed: services.Preferences.SidebarCollapsed(ctx),
		}
	}
}

func (m *CatalogModel) cmdSaveSidebar(collapsed bool) tea.Cmd {
	ctx := m.ctx
	prefs := m.services.Preferences
	return func() tea.Msg {
		_ = prefs.SetSidebarCollapsed(ctx, collapsed)
		return nil
	}
}

func (m *CatalogModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		_ = session.Logout(ctx)
		return LogoutResult{}
	}
}

func joinWithGap(panes []string) []string {
	out := make([]string, 0, len(panes)*2)
	for i, p := range panes {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
