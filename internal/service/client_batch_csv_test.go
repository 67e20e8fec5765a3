package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

func TestImportCSV(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		mapping map[string]string
		want    models.ImportResult
		values  []models.FormValues
	}{
		{
			name:   "header and rows",
			text:   "NAME, CITY\nAnn , Berlin\n\nBob,\"Paris, FR\"\n",
			want:   models.ImportResult{Success: true, Count: 2, Errors: []string{}},
			values: []models.FormValues{{"NAME": "Ann", "CITY": "Berlin"}, {"NAME": "Bob", "CITY": "Paris, FR"}},
		},
		{
			name: "header only",
			text: "NAME,CITY\n",
			want: models.ImportResult{Success: false, Count: 0, Errors: []string{"CSV must have header and data rows"}},
		},
		{
			name: "empty",
			text: "   ",
			want: models.ImportResult{Success: false, Count: 0, Errors: []string{"CSV must have header and data rows"}},
		},
		{
			name: "column mismatch skips row",
			text: "NAME,CITY\nAnn,Berlin\nBob\nCid,Rome,extra\n",
			want: models.ImportResult{Success: false, Count: 1, Errors: []string{
				"row 2: column count mismatch (expected 2, got 1)",
				"row 3: column count mismatch (expected 2, got 3)",
			}},
			values: []models.FormValues{{"NAME": "Ann", "CITY": "Berlin"}},
		},
		{
			name: "broken quote only loses its line",
			text: "NAME,CITY\n\"a \"\"q\"\", b\",x\n\n\"bad\"x,y\nc,d\n\"open,y\ne,f\n",
			want: models.ImportResult{Success: false, Count: 3, Errors: []string{
				`row 2: extraneous or missing " in quoted-field`,
				`row 4: extraneous or missing " in quoted-field`,
			}},
			values: []models.FormValues{
				{"NAME": `a "q", b`, "CITY": "x"},
				{"NAME": "c", "CITY": "d"},
				{"NAME": "e", "CITY": "f"},
			},
		},
		{
			name:   "crlf line endings",
			text:   "NAME,CITY\r\nAnn,Berlin\r\n",
			want:   models.ImportResult{Success: true, Count: 1, Errors: []string{}},
			values: []models.FormValues{{"NAME": "Ann", "CITY": "Berlin"}},
		},
		{
			name:    "mapping renames columns",
			text:    "Full name,Town\nAnn,Berlin\n",
			mapping: map[string]string{"Full name": "NAME", "Town": "CITY"},
			want:    models.ImportResult{Success: true, Count: 1, Errors: []string{}},
			values:  []models.FormValues{{"NAME": "Ann", "CITY": "Berlin"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewBatchDriver(&stubGenerator{}, 0, logger.Nop())

			got := d.ImportCSV(tt.text, tt.mapping)
			assert.Equal(t, tt.want, got)

			items := d.Items()
			require.Len(t, items, len(tt.values))
			for i, item := range items {
				assert.Equal(t, models.BatchPending, item.Status)
				assert.Equal(t, tt.values[i], item.Values)
			}
		})
	}
}

func TestImportCSV_AppendsToExistingItems(t *testing.T) {
	d := NewBatchDriver(&stubGenerator{}, 0, logger.Nop())
	d.AddItem(models.FormValues{"NAME": "manual"})

	res := d.ImportCSV("NAME\nAnn\nBob", nil)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Count)
	assert.Len(t, d.Items(), 3)
}

// ── CSV template ────────────────────────────────────────────────────────────

var csvTemplatePlaceholders = []models.Placeholder{
	{Name: "NAME"},
	{Name: "TONE", Values: []string{"formal", "friendly"}},
	{Name: "DUE", Type: models.PlaceholderDate},
	{Name: "COUNT", Type: models.PlaceholderNumber},
	{Name: "URGENT", Type: models.PlaceholderBoolean},
	{Name: "provider", Hidden: true},
}

func TestWriteCSVTemplate(t *testing.T) {
	var b strings.Builder
	today := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, WriteCSVTemplate(&b, csvTemplatePlaceholders, today))

	assert.Equal(t, "NAME,TONE,DUE,COUNT,URGENT\nExample NAME,formal,2024-03-05,0,false\n", b.String())
}

func TestCSVTemplateFilename(t *testing.T) {
	assert.Equal(t, "batch-template-letter.csv", CSVTemplateFilename("letter.docx"))
	assert.Equal(t, "batch-template-Offer.csv", CSVTemplateFilename("dir/Offer.DOCX"))
}

func TestSaveCSVTemplate_RoundTripsThroughImport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tmpl := BatchTemplate{Filename: "letter.docx", Placeholders: csvTemplatePlaceholders}

	path, err := SaveCSVTemplate(dir, tmpl, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "batch-template-letter.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	d := NewBatchDriver(&stubGenerator{}, 0, logger.Nop())
	res := d.ImportCSV(string(data), nil)
	assert.Equal(t, models.ImportResult{Success: true, Count: 1, Errors: []string{}}, res)
	assert.Equal(t, "formal", d.Items()[0].Values["TONE"])
}
