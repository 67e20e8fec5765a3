package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

type clientValidationService struct {
	adapter   adapter.ServerAdapter
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

// NewClientValidationService constructs a [ValidationService]. Reports are
// saved into outputDir.
func NewClientValidationService(serverAdapter adapter.ServerAdapter, outputDir string, logger *logger.Logger) ValidationService {
	return &clientValidationService{
		adapter:   serverAdapter,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

func (v *clientValidationService) ValidateFile(ctx context.Context, path string) (models.ValidationResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return models.ValidationResult{}, ErrNoFileProvided
	}
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return models.ValidationResult{}, fmt.Errorf("%w: %s", adapter.ErrUnsupportedFile, filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("read document: %w", err)
	}

	result, err := v.adapter.ValidateDocument(ctx, filepath.Base(path), content)
	if err != nil {
		v.logger.Err(err).Str("func", "clientValidationService.ValidateFile").Str("path", path).Msg("validation failed")
		return models.ValidationResult{}, mapAdapterError(err)
	}

	v.logger.Info().
		Str("filename", result.Filename).
		Bool("ok", result.OK).
		Int("issues", result.Stats.Total).
		Msg("document validated")
	return result, nil
}

func (v *clientValidationService) Export(result models.ValidationResult, format ReportFormat, dst io.Writer) error {
	return ExportReport(result, format, v.now(), dst)
}

func (v *clientValidationService) SaveReport(result models.ValidationResult, format ReportFormat) (string, error) {
	now := v.now()

	var buf bytes.Buffer
	if err := ExportReport(result, format, now, &buf); err != nil {
		return "", err
	}

	if err := os.MkdirAll(v.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(v.outputDir, ReportFilename(result, format, now))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
