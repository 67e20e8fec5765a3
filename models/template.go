package models

// TemplateMeta is the descriptive metadata attached to a template file.
// Any list may be empty or absent; absent lists behave as empty.
type TemplateMeta struct {
	Provider    []string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Category    []string `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Creator     string   `json:"creator,omitempty" yaml:"creator,omitempty"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// TemplateItem pairs a template filename with its metadata. Filename is the
// stable identifier used in every later lookup and generation request.
type TemplateItem struct {
	Filename string       `json:"filename"`
	Meta     TemplateMeta `json:"meta"`
}

// TemplateList is the response body of the list-templates call.
type TemplateList struct {
	Files []TemplateItem `json:"files"`
}

// LayoutGroup is a named section of rows of placeholder names.
type LayoutGroup struct {
	Group string     `json:"group"`
	Rows  [][]string `json:"rows"`
}

// PlaceholderSchema is everything the server knows about one template's form.
type PlaceholderSchema struct {
	Placeholders []Placeholder `json:"placeholders"`
	Meta         TemplateMeta  `json:"meta"`
	Layout       []LayoutGroup `json:"layout"`
}

// PlaceholdersRequest is the request body of the get-placeholders call.
type PlaceholdersRequest struct {
	Filename string `json:"filename"`
}

// GenerateRequest is the request body of the generate-document call.
type GenerateRequest struct {
	Filename string         `json:"filename"`
	Context  map[string]any `json:"context"`
}

// GeneratedDocument is a binary document returned by the generator.
type GeneratedDocument struct {
	// Filename is taken from Content-Disposition when the server sends one.
	Filename    string
	ContentType string
	Content     []byte
}
