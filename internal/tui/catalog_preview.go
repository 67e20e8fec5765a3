package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// previewRenderer renders the template details pane as markdown. Rendered
// output is cached per filename.
type previewRenderer struct {
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newPreviewRenderer(width int) *previewRenderer {
	p := &previewRenderer{cache: make(map[string]string)}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		p.renderer = r
	}
	return p
}

// Render returns the preview of item. Without a working renderer the raw
// markdown is returned.
func (p *previewRenderer) Render(item models.TemplateItem) string {
	if out, ok := p.cache[item.Filename]; ok {
		return out
	}

	md := templateMarkdown(item)
	out := md
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(md); err == nil {
			out = strings.TrimSpace(rendered)
		}
	}

	p.cache[item.Filename] = out
	return out
}

func templateMarkdown(item models.TemplateItem) string {
	var b strings.Builder
	meta := item.Meta

	fmt.Fprintf(&b, "## %s\n\n", service.TemplateDisplayName(item))
	if meta.Description != "" {
		b.WriteString(meta.Description)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "- **File:** `%s`\n", item.Filename)
	writeMetaLine(&b, "Provider", strings.Join(meta.Provider, ", "))
	writeMetaLine(&b, "Category", strings.Join(meta.Category, ", "))
	writeMetaLine(&b, "Tags", strings.Join(meta.Tags, ", "))
	writeMetaLine(&b, "Version", meta.Version)
	writeMetaLine(&b, "Creator", meta.Creator)

	return b.String()
}

func writeMetaLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}
