package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/validators"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

var docxSuffix = regexp.MustCompile(`(?i)\.docx$`)

// GenerateRequest is one document to generate.
type GenerateRequest struct {
	Filename     string
	Placeholders []models.Placeholder
	Values       models.FormValues
	// OutputName overrides the name of the written file.
	OutputName string
}

// GenerateResult describes a written document.
type GenerateResult struct {
	Path     string
	Filename string
	Size     int
}

// OutputFilename returns the name a generated copy of template is saved
// under: a trailing .docx, in any case, becomes _generated.docx.
func OutputFilename(template string) string {
	base := filepath.Base(template)
	if docxSuffix.MatchString(base) {
		return docxSuffix.ReplaceAllString(base, "_generated.docx")
	}
	return base + "_generated.docx"
}

type clientGenerationService struct {
	adapter   adapter.ServerAdapter
	validator *validators.FormValidator
	outputDir string
	logger    *logger.Logger
}

// NewClientGenerationService constructs a [GenerationService] writing into
// outputDir.
func NewClientGenerationService(serverAdapter adapter.ServerAdapter, outputDir string, logger *logger.Logger) GenerationService {
	return &clientGenerationService{
		adapter:   serverAdapter,
		validator: validators.NewFormValidator(),
		outputDir: outputDir,
		logger:    logger,
	}
}

// Generate validates req, sends the date-converted context to the server
// and saves the returned document. A request with field errors is refused
// with a *[FieldValidationError] before any network call.
func (g *clientGenerationService) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if errs := g.validator.ValidateForm(req.Placeholders, req.Values); errs.HasErrors() {
		return GenerateResult{}, &FieldValidationError{Fields: errs}
	}

	doc, err := g.adapter.GenerateDocument(ctx, models.GenerateRequest{
		Filename: req.Filename,
		Context:  form.ToContext(req.Placeholders, req.Values),
	})
	if err != nil {
		g.logger.Err(err).Str("func", "clientGenerationService.Generate").Str("filename", req.Filename).Msg("generation failed")
		return GenerateResult{}, mapAdapterError(err)
	}

	name := req.OutputName
	if name == "" {
		name = OutputFilename(req.Filename)
	}

	if err = os.MkdirAll(g.outputDir, 0o755); err != nil {
		return GenerateResult{}, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.outputDir, name)
	if err = os.WriteFile(path, doc.Content, 0o644); err != nil {
		return GenerateResult{}, fmt.Errorf("write document: %w", err)
	}

	g.logger.Info().Str("path", path).Int("bytes", len(doc.Content)).Msg("document generated")
	return GenerateResult{Path: path, Filename: name, Size: len(doc.Content)}, nil
}
