package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// ImportCSV adds one pending item per data row of text.
//
// The first record is the header. Fields are trimmed and blank lines are
// skipped. A row whose column count differs from the header is reported as
// "row N: ..." with N counting data rows from 1, and is not imported. mapping
// renames header columns to placeholder names; unmapped columns keep their
// header.
func (d *BatchDriver) ImportCSV(text string, mapping map[string]string) models.ImportResult {
	records, errs := readCSV(text)
	if len(records) < 2 && len(errs) == 0 {
		return models.ImportResult{Success: false, Count: 0, Errors: []string{ErrCSVTooShort.Error()}}
	}
	if len(records) == 0 {
		return models.ImportResult{Success: false, Count: 0, Errors: errs}
	}

	header := records[0]
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = h
		if mapped, ok := mapping[h]; ok && mapped != "" {
			names[i] = mapped
		}
	}

	var rows []models.FormValues
	for n, record := range records[1:] {
		if record == nil {
			continue
		}
		if len(record) != len(header) {
			errs = append(errs, fmt.Sprintf("row %d: column count mismatch (expected %d, got %d)", n+1, len(header), len(record)))
			continue
		}

		values := make(models.FormValues, len(record))
		for i, field := range record {
			values[names[i]] = field
		}
		rows = append(rows, values)
	}

	if len(rows) > 0 {
		d.AddItems(rows...)
	}

	if errs == nil {
		errs = []string{}
	}
	return models.ImportResult{
		Success: len(errs) == 0,
		Count:   len(rows),
		Errors:  errs,
	}
}

// readCSV returns the trimmed records of text, one per non-blank line. Each
// line is parsed on its own so a broken quote only loses that line. A data
// line that cannot be parsed is reported and kept as nil so later rows keep
// their numbers.
func readCSV(text string) ([][]string, []string) {
	var (
		records [][]string
		errs    []string
	)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, err := parseCSVLine(line)
		if err != nil {
			if len(records) == 0 {
				return nil, []string{fmt.Sprintf("header: %v", err)}
			}
			errs = append(errs, fmt.Sprintf("row %d: %v", len(records), err))
			records = append(records, nil)
			continue
		}
		records = append(records, record)
	}

	return records, errs
}

func parseCSVLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	record, err := r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, parseErr.Err
		}
		return nil, err
	}

	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	return record, nil
}

// WriteCSVTemplate writes an import template for placeholders: a header of
// the non-hidden placeholder names and one example row.
func WriteCSVTemplate(dst io.Writer, placeholders []models.Placeholder, today time.Time) error {
	var header, example []string
	for _, p := range placeholders {
		if p.Hidden {
			continue
		}
		header = append(header, p.Name)
		example = append(example, exampleValue(p, today))
	}

	w := csv.NewWriter(dst)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.Write(example); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// CSVTemplateFilename returns batch-template-<base>.csv for template.
func CSVTemplateFilename(template string) string {
	base := docxSuffix.ReplaceAllString(filepath.Base(template), "")
	return "batch-template-" + base + ".csv"
}

// SaveCSVTemplate writes the import template of a batch into dir and returns
// its path.
func SaveCSVTemplate(dir string, tmpl BatchTemplate, today time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, CSVTemplateFilename(tmpl.Filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv template: %w", err)
	}
	defer f.Close()

	if err = WriteCSVTemplate(f, tmpl.Placeholders, today); err != nil {
		return "", fmt.Errorf("write csv template: %w", err)
	}
	return path, nil
}

func exampleValue(p models.Placeholder, today time.Time) string {
	switch p.EffectiveType() {
	case models.PlaceholderEnum:
		if len(p.Values) > 0 {
			return p.Values[0]
		}
		return ""
	case models.PlaceholderDate:
		return today.Format(form.ISODateLayout)
	case models.PlaceholderNumber:
		return "0"
	case models.PlaceholderBoolean:
		return "false"
	default:
		return "Example " + p.Name
	}
}
