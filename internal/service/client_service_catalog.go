package service

import (
	"context"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// TemplateFilter narrows the catalog. Empty fields match everything.
type TemplateFilter struct {
	Provider string
	Category string
	// Tags must all be present on a template.
	Tags []string
	// Search is a case-insensitive substring over the filename, the meta
	// name, the tags and the creator.
	Search string
}

// IsZero reports whether the filter matches every template.
func (f TemplateFilter) IsZero() bool {
	return f.Provider == "" && f.Category == "" && len(f.Tags) == 0 && f.Search == ""
}

// TemplateFacets are the distinct filter values present in a catalog,
// sorted.
type TemplateFacets struct {
	Providers  []string
	Categories []string
	Tags       []string
}

type clientCatalogService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewClientCatalogService constructs a [CatalogService].
func NewClientCatalogService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) CatalogService {
	return &clientCatalogService{adapter: serverAdapter, logger: logger}
}

func (c *clientCatalogService) List(ctx context.Context) ([]models.TemplateItem, error) {
	items, err := c.adapter.ListTemplates(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "clientCatalogService.List").Msg("failed to list templates")
		return nil, mapAdapterError(err)
	}
	return items, nil
}

func (c *clientCatalogService) Filter(items []models.TemplateItem, filter TemplateFilter) []models.TemplateItem {
	out := make([]models.TemplateItem, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, item := range items {
		if filter.Provider != "" && !slices.Contains(item.Meta.Provider, filter.Provider) {
			continue
		}
		if filter.Category != "" && !slices.Contains(item.Meta.Category, filter.Category) {
			continue
		}
		if !containsAll(item.Meta.Tags, filter.Tags) {
			continue
		}
		if search != "" && !strings.Contains(searchText(item), search) {
			continue
		}
		out = append(out, item)
	}

	return out
}

func (c *clientCatalogService) Facets(items []models.TemplateItem) TemplateFacets {
	var providers, categories, tags []string
	for _, item := range items {
		providers = append(providers, item.Meta.Provider...)
		categories = append(categories, item.Meta.Category...)
		tags = append(tags, item.Meta.Tags...)
	}

	return TemplateFacets{
		Providers:  uniqueSorted(providers),
		Categories: uniqueSorted(categories),
		Tags:       uniqueSorted(tags),
	}
}

func (c *clientCatalogService) Rank(items []models.TemplateItem, query string) []models.TemplateItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	matches := fuzzy.FindFrom(query, templateSource(items))
	out := make([]models.TemplateItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}

// TemplateDisplayName returns the meta name of item, or its filename without
// extension in title case.
func TemplateDisplayName(item models.TemplateItem) string {
	if name := strings.TrimSpace(item.Meta.Name); name != "" {
		return name
	}
	base := strings.TrimSuffix(item.Filename, filepath.Ext(item.Filename))
	if title := utils.SnakeToTitle(base); title != "" {
		return title
	}
	return item.Filename
}

// templateSource adapts a template list to [fuzzy.Source].
type templateSource []models.TemplateItem

func (s templateSource) String(i int) string {
	return TemplateDisplayName(s[i]) + " " + s[i].Filename
}

func (s templateSource) Len() int {
	return len(s)
}

func searchText(item models.TemplateItem) string {
	return strings.ToLower(strings.Join([]string{
		item.Filename,
		item.Meta.Name,
		strings.Join(item.Meta.Tags, " "),
		item.Meta.Creator,
	}, "\n"))
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
