// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

// ReportFormat is an export format of a validation report.
type ReportFormat string

const (
	ReportCSV  ReportFormat = "csv"
	ReportJSON ReportFormat = "json"
	ReportYAML ReportFormat = "yaml"
	ReportHTML ReportFormat = "html"
)

// ReportFormats lists the supported formats in menu order.
var ReportFormats = []ReportFormat{ReportCSV, ReportJSON, ReportYAML, ReportHTML}

// ParseReportFormat accepts a format name in any case.
func ParseReportFormat(s string) (ReportFormat, error) {
	f := ReportFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case ReportCSV, ReportJSON, ReportYAML, ReportHTML:
		return f, nil
	case "yml":
		return ReportYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

var csvHeader = []string{
	"Severity", "Code", "Title", "Message", "Hint",
	"Paragraph", "Span Start", "Span End", "Excerpt",
}

type reportDocument struct {
	Filename    string                   `json:"filename" yaml:"filename"`
	ValidatedAt string                   `json:"validatedAt" yaml:"validatedAt"`
	Summary     models.ValidationStats   `json:"summary" yaml:"summary"`
	Issues      []models.ValidationIssue `json:"issues" yaml:"issues"`
}

// ReportFilename names the exported report:
// <document base>-validation-<YYYY-MM-DD>.<format>.
func ReportFilename(result models.ValidationResult, format ReportFormat, now time.Time) string {
	base := filepath.Base(result.Filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "document"
	}
	return fmt.Sprintf("%s-validation-%s.%s", base, now.Format("2006-01-02"), format)
}

// ExportReport writes result to dst in format. now stamps the report.
func ExportReport(result models.ValidationResult, format ReportFormat, now time.Time, dst io.Writer) error {
	switch format {
	case ReportCSV:
		return exportCSV(result, dst)
	case ReportJSON:
		enc := json.NewEncoder(dst)
		enc.SetIndent("", "  ")
		return enc.Encode(newReportDocument(result, now))
	case ReportYAML:
		enc := yaml.NewEncoder(dst)
		enc.SetIndent(2)
		if err := enc.Encode(newReportDocument(result, now)); err != nil {
			return err
		}
		return enc.Close()
	case ReportHTML:
		return exportHTML(result, now, dst)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func newReportDocument(result models.ValidationResult, now time.Time) reportDocument {
	issues := result.Issues
	if issues == nil {
		issues = []models.ValidationIssue{}
	}
	return reportDocument{
		Filename:    result.Filename,
		ValidatedAt: now.UTC().Format(time.RFC3339),
		Summary:     models.CountIssues(issues),
		Issues:      issues,
	}
}

func exportCSV(result models.ValidationResult, dst io.Writer) error {
	w := csv.NewWriter(dst)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		var paragraph, spanStart, spanEnd string
		if loc := issue.Location; loc != nil {
			if loc.Paragraph != nil {
				paragraph = strconv.Itoa(*loc.Paragraph)
			}
			if loc.Span != nil {
				spanStart = strconv.Itoa(loc.Span[0])
				spanEnd = strconv.Itoa(loc.Span[1])
			}
		}

		row := []string{
			string(issue.Severity), issue.Code, issue.Title, issue.Message, issue.Hint,
			paragraph, spanStart, spanEnd, issue.Excerpt,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// strictPolicy strips every tag from server-supplied text.
var strictPolicy = bluemonday.StrictPolicy()

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"clean": func(s string) template.HTML {
		return template.HTML(strictPolicy.Sanitize(s))
	},
	"upper": func(s models.Severity) string {
		return strings.ToUpper(string(s))
	},
}).Parse(reportHTML))

type htmlReport struct {
	Filename  string
	Generated string
	Stats     models.ValidationStats
	Issues    []models.ValidationIssue
}

func exportHTML(result models.ValidationResult, now time.Time, dst io.Writer) error {
	return reportTemplate.Execute(dst, htmlReport{
		Filename:  result.Filename,
		Generated: now.Format("Jan 2, 2006 15:04"),
		Stats:     models.CountIssues(result.Issues),
		Issues:    result.Issues,
	})
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Validation Report - {{clean .Filename}}</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; color: #1f2937; padding: 40px; max-width: 1200px; margin: 0 auto; }
    .subtitle { color: #6b7280; margin-bottom: 24px; }
    .summary { display: flex; gap: 16px; margin-bottom: 32px; padding: 16px; background: #f9fafb; border-radius: 8px; }
    .summary-count { font-size: 24px; font-weight: 600; }
    .summary-label { font-size: 14px; color: #6b7280; }
    table { width: 100%; border-collapse: collapse; }
    th { text-align: left; padding: 12px 8px; border-bottom: 2px solid #e5e7eb; font-size: 12px; text-transform: uppercase; color: #6b7280; }
    td { padding: 8px; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
    .sev-error { color: #ef4444; } .sev-warn { color: #f59e0b; } .sev-info { color: #3b82f6; }
    .footer { margin-top: 32px; padding-top: 16px; border-top: 1px solid #e5e7eb; font-size: 12px; color: #9ca3af; }
  </style>
</head>
<body>
  <h1>Validation Report</h1>
  <p class="subtitle">{{clean .Filename}} &bull; Generated {{.Generated}}</p>
  <div class="summary">
    <div><div class="summary-count sev-error">{{.Stats.Errors}}</div><div class="summary-label">Errors</div></div>
    <div><div class="summary-count sev-warn">{{.Stats.Warnings}}</div><div class="summary-label">Warnings</div></div>
    <div><div class="summary-count sev-info">{{.Stats.Info}}</div><div class="summary-label">Info</div></div>
    <div><div class="summary-count">{{.Stats.Total}}</div><div class="summary-label">Total Issues</div></div>
  </div>
{{- if .Issues}}
  <table>
    <thead><tr><th>Severity</th><th>Code</th><th>Details</th><th>Location</th><th>Excerpt</th></tr></thead>
    <tbody>
{{- range .Issues}}
      <tr>
        <td class="sev-{{.Severity}}">{{upper .Severity}}</td>
        <td><code>{{clean .Code}}</code></td>
        <td><strong>{{clean .Title}}</strong>{{if .Message}}<br>{{clean .Message}}{{end}}{{if .Hint}}<br><em>{{clean .Hint}}</em>{{end}}</td>
        <td>{{if and .Location .Location.Paragraph}}Paragraph {{.Location.Paragraph}}{{else}}-{{end}}</td>
        <td>{{if .Excerpt}}<code>{{clean .Excerpt}}</code>{{else}}-{{end}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
{{- else}}
  <p>No issues found! This document passed all validation checks.</p>
{{- end}}
  <div class="footer">Generated by DocManager Validator</div>
</body>
</html>
`
