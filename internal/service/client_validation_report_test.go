package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

var reportTime = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func sampleResult() models.ValidationResult {
	paragraph := 3
	span := [2]int{4, 12}
	issues := []models.ValidationIssue{
		{
			Severity: models.SeverityError,
			Code:     "UNCLOSED_TAG",
			Title:    "Unclosed tag",
			Message:  `Tag "{{NAME" is never closed`,
			Hint:     "Add }}",
			Location: &models.IssueLocation{Paragraph: &paragraph, Span: &span},
			Excerpt:  "Dear {{NAME,",
		},
		{Severity: models.SeverityWarn, Code: "EMPTY_RUN", Title: "<script>alert(1)</script>Empty run"},
	}
	return models.ValidationResult{Filename: "contract.docx", Issues: issues, Stats: models.CountIssues(issues)}
}

func TestParseReportFormat(t *testing.T) {
	for in, want := range map[string]ReportFormat{
		"csv": ReportCSV, "JSON": ReportJSON, " yaml ": ReportYAML, "yml": ReportYAML, "Html": ReportHTML,
	} {
		got, err := ParseReportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseReportFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "contract-validation-2024-03-05.csv",
		ReportFilename(models.ValidationResult{Filename: "contract.docx"}, ReportCSV, reportTime))
	assert.Equal(t, "document-validation-2024-03-05.html",
		ReportFilename(models.ValidationResult{}, ReportHTML, reportTime))
}

func TestExportReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(sampleResult(), ReportCSV, reportTime, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"error", "UNCLOSED_TAG", "Unclosed tag", `Tag "{{NAME" is never closed`, "Add }}",
		"3", "4", "12", "Dear {{NAME,",
	}, records[1])
	assert.Equal(t, "", records[2][5], "no location leaves the cells empty")
}

func TestExportReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(sampleResult(), ReportJSON, reportTime, &buf))

	var doc reportDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "contract.docx", doc.Filename)
	assert.Equal(t, "2024-03-05T14:30:00Z", doc.ValidatedAt)
	assert.Equal(t, models.ValidationStats{Total: 2, Errors: 1, Warnings: 1}, doc.Summary)
	assert.Len(t, doc.Issues, 2)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"filename\""))
}

func TestExportReport_JSONNoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(models.ValidationResult{Filename: "ok.docx"}, ReportJSON, reportTime, &buf))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestExportReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(sampleResult(), ReportYAML, reportTime, &buf))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "contract.docx", doc["filename"])
	assert.Equal(t, "2024-03-05T14:30:00Z", doc["validatedAt"])
	assert.Equal(t, map[string]any{"total": 2, "errors": 1, "warnings": 1, "info": 0}, doc["summary"])
	require.Len(t, doc["issues"], 2)
	assert.True(t, strings.HasPrefix(buf.String(), "filename: contract.docx\n"))
}

func TestExportReport_HTMLSanitizes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(sampleResult(), ReportHTML, reportTime, &buf))

	out := buf.String()
	assert.Contains(t, out, "Validation Report - contract.docx")
	assert.Contains(t, out, "Paragraph 3")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Empty run")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "No issues found")
}

func TestExportReport_HTMLNoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportReport(models.ValidationResult{Filename: "ok.docx"}, ReportHTML, reportTime, &buf))
	assert.Contains(t, buf.String(), "No issues found!")
}

func TestExportReport_UnknownFormat(t *testing.T) {
	err := ExportReport(sampleResult(), ReportFormat("pdf"), reportTime, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
