package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/mock"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

func openLetterBatch(t *testing.T, outDir string) (*BatchModel, *mock.MockServerAdapter) {
	t.Helper()

	services, a := newTestServices(t, outDir)
	m := NewBatchModel(context.Background(), services, logger.Nop())

	a.EXPECT().GetPlaceholders(gomock.Any(), "letter.docx").Return(letterSchema, nil)
	m.Update(openTemplateMsg{Filename: "letter.docx"})
	m.Update(m.cmdOpen("letter.docx", "")())
	require.NotNil(t, m.session)
	return m, a
}

func TestBatchModel_AddAndDelete(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())
	driver := m.services.Batch

	m.Update(keyRunes("a"))
	m.Update(keyRunes("a"))
	require.Len(t, driver.Items(), 2)
	assert.Equal(t, 1, m.idx)
	assert.Equal(t, "formal", driver.Items()[0].Values["TONE"])

	m.Update(keyRunes("d"))
	assert.Len(t, driver.Items(), 1)
	assert.Equal(t, 0, m.idx)
}

func TestBatchModel_EditItem(t *testing.T) {
	outDir := t.TempDir()
	m, a := openLetterBatch(t, outDir)
	driver := m.services.Batch

	m.Update(keyRunes("a"))
	m.Update(keyRunes("e"))
	require.True(t, m.editing)
	require.Len(t, m.editors, 3)
	assert.Contains(t, m.View(), "item 1")

	typeText(m, "Dana")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	assert.False(t, m.editing)
	assert.Equal(t, "Item 1 updated", m.status)
	item := driver.Items()[0]
	assert.Equal(t, "Dana", item.Values["CLIENT_NAME"])
	assert.Equal(t, "friendly", item.Values["TONE"])
	assert.Equal(t, models.BatchPending, item.Status)

	a.EXPECT().GenerateDocument(gomock.Any(), gomock.Any()).
		Return(models.GeneratedDocument{Content: []byte("docx")}, nil)
	m.Update(keyRunes("g"))
	m.Update(m.cmdRun(m.template(), make(chan tea.Msg, batchEventBuffer))())
	require.Equal(t, models.BatchSuccess, driver.Items()[0].Status)

	m.Update(keyRunes("e"))
	require.True(t, m.editing)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, models.BatchPending, driver.Items()[0].Status)
	assert.Empty(t, driver.Items()[0].Filename)
}

func TestBatchModel_EditCancel(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())

	m.Update(keyRunes("a"))
	m.Update(keyRunes("e"))
	typeText(m, "Dana")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.Equal(t, "", m.services.Batch.Items()[0].Values["CLIENT_NAME"])
}

func TestBatchModel_SaveCSVTemplate(t *testing.T) {
	outDir := t.TempDir()
	m, _ := openLetterBatch(t, outDir)

	_, cmd := m.Update(keyRunes("t"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	path := filepath.Join(outDir, "batch-template-letter.csv")
	assert.Equal(t, "CSV template saved to "+path, m.status)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CLIENT_NAME,TONE,URGENT\nExample CLIENT_NAME,formal,false\n", string(data))
}

func TestBatchModel_GenerateRequiresPendingItems(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())

	_, cmd := m.Update(keyRunes("g"))

	assert.Nil(t, cmd)
	assert.False(t, m.running)
	assert.NotEmpty(t, m.errMsg)
}

func TestBatchModel_ImportCSV(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte("CLIENT_NAME,TONE\nDana,friendly\nSam,formal\n"), 0o600))

	m.Update(keyRunes("i"))
	require.True(t, m.importing)
	typeText(m, path)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.importing)

	m.Update(cmd())

	assert.Equal(t, "Imported 2 item(s)", m.status)
	items := m.services.Batch.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Dana", items[0].Values["CLIENT_NAME"])
}

func TestBatchModel_ImportMissingFile(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())

	msg := m.cmdImport(filepath.Join(t.TempDir(), "missing.csv"))()
	m.Update(msg)

	assert.NotEmpty(t, m.errMsg)
	assert.Empty(t, m.services.Batch.Items())
}

func TestBatchModel_Run(t *testing.T) {
	outDir := t.TempDir()
	m, a := openLetterBatch(t, outDir)
	driver := m.services.Batch
	driver.AddItems(
		models.FormValues{"CLIENT_NAME": "Dana"},
		models.FormValues{"CLIENT_NAME": "Sam"},
	)

	a.EXPECT().GenerateDocument(gomock.Any(), gomock.Any()).
		Return(models.GeneratedDocument{Content: []byte("docx")}, nil).Times(2)

	_, cmd := m.Update(keyRunes("g"))
	require.NotNil(t, cmd)
	require.True(t, m.running)

	done := m.cmdRun(m.template(), make(chan tea.Msg, batchEventBuffer))()
	m.Update(done)

	assert.False(t, m.running)
	assert.Equal(t, "Done: 2 generated, 0 failed", m.status)
	for _, item := range driver.Items() {
		assert.Equal(t, models.BatchSuccess, item.Status)
		assert.FileExists(t, filepath.Join(outDir, item.Filename))
	}
}

func TestBatchModel_RunUnauthorizedExpiresSession(t *testing.T) {
	m, a := openLetterBatch(t, t.TempDir())
	driver := m.services.Batch
	driver.AddItems(
		models.FormValues{"CLIENT_NAME": "Dana"},
		models.FormValues{"CLIENT_NAME": "Sam"},
	)

	a.EXPECT().GenerateDocument(gomock.Any(), gomock.Any()).
		Return(models.GeneratedDocument{}, &adapter.StatusError{StatusCode: 401})
	a.EXPECT().SetToken("")

	m.running = true
	done := m.cmdRun(m.template(), make(chan tea.Msg, batchEventBuffer))()
	_, cmd := m.Update(done)

	assert.False(t, m.running)
	require.NotNil(t, cmd)
	assert.Equal(t, SessionExpiredMsg{}, cmd())
	assert.Equal(t, 2, driver.PendingCount())
}

func TestBatchModel_EscBlockedWhileRunning(t *testing.T) {
	m, _ := openLetterBatch(t, t.TempDir())

	m.running = true
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)

	m.running = false
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageCatalog}, cmd())
}

func TestWaitForBatchEvent(t *testing.T) {
	assert.Nil(t, waitForBatchEvent(nil))

	events := make(chan tea.Msg, 1)
	events <- batchProgressMsg{progress: models.BatchProgress{Total: 3, Completed: 1}}
	close(events)

	wait := waitForBatchEvent(events)
	assert.Equal(t, batchProgressMsg{progress: models.BatchProgress{Total: 3, Completed: 1}}, wait())
	assert.Nil(t, wait())
}

func TestItemSummary(t *testing.T) {
	item := models.BatchItem{Values: models.FormValues{"TONE": "formal", "CLIENT_NAME": "Dana", "NOTE": ""}}
	assert.Equal(t, "CLIENT_NAME=Dana, TONE=formal", itemSummary(item))
	assert.Equal(t, "-", itemSummary(models.BatchItem{}))
}
