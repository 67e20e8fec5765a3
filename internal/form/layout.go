package form

import "github.com/YuvrajShekhar/docmanager-client/models"

// UngroupedLabel is the section label of fields without a layout entry when
// the template defines other groups.
const UngroupedLabel = "Other"

// Layout is the renderable arrangement of a form.
type Layout struct {
	// Groups is the layout directive exactly as received.
	Groups []models.LayoutGroup
	// Ungrouped holds visible placeholders not named in any group row.
	Ungrouped []models.Placeholder

	byName map[string]models.Placeholder
}

// Section is one resolved group ready to render.
type Section struct {
	Label string
	Rows  [][]models.Placeholder
}

// ResolveLayout arranges placeholders according to groups.
func ResolveLayout(placeholders []models.Placeholder, groups []models.LayoutGroup) Layout {
	byName := make(map[string]models.Placeholder, len(placeholders))
	for _, p := range placeholders {
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = p
		}
	}

	referenced := make(map[string]struct{})
	for _, g := range groups {
		for _, row := range g.Rows {
			for _, name := range row {
				referenced[name] = struct{}{}
			}
		}
	}

	var ungrouped []models.Placeholder
	for _, p := range placeholders {
		if p.Hidden {
			continue
		}
		if _, ok := referenced[p.Name]; ok {
			continue
		}
		ungrouped = append(ungrouped, p)
	}

	return Layout{Groups: groups, Ungrouped: ungrouped, byName: byName}
}

// Sections resolves group rows into placeholders.
//
// Names without a placeholder and hidden placeholders render nothing. A name
// listed more than once renders at its first occurrence only. Empty rows and
// groups are dropped. Ungrouped fields come last, one per row.
func (l Layout) Sections() []Section {
	var sections []Section
	seen := make(map[string]struct{})

	for _, g := range l.Groups {
		section := Section{Label: g.Group}
		for _, row := range g.Rows {
			var fields []models.Placeholder
			for _, name := range row {
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}

				p, ok := l.byName[name]
				if !ok || p.Hidden {
					continue
				}
				fields = append(fields, p)
			}
			if len(fields) > 0 {
				section.Rows = append(section.Rows, fields)
			}
		}
		if len(section.Rows) > 0 {
			sections = append(sections, section)
		}
	}

	if len(l.Ungrouped) > 0 {
		rest := Section{}
		if len(sections) > 0 {
			rest.Label = UngroupedLabel
		}
		for _, p := range l.Ungrouped {
			rest.Rows = append(rest.Rows, []models.Placeholder{p})
		}
		sections = append(sections, rest)
	}

	return sections
}

// Fields returns the rendered fields in display order.
func (l Layout) Fields() []models.Placeholder {
	var out []models.Placeholder
	for _, s := range l.Sections() {
		for _, row := range s.Rows {
			out = append(out, row...)
		}
	}
	return out
}
