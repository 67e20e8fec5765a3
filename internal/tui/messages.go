package tui

import (
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// Page names known to [RootModel].
const (
	pageLogin     = "login"
	pageCatalog   = "catalog"
	pageForm      = "form"
	pageBatch     = "batch"
	pageValidator = "validator"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page right after its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult is produced by the login page once the server answered.
type LoginResult struct {
	User models.User
	Err  error
}

// LogoutResult is produced after the session was cleared.
type LogoutResult struct{}

// SessionExpiredMsg is emitted by a page whose authenticated call was
// rejected. The router returns to the login page.
type SessionExpiredMsg struct{}

// openTemplateMsg tells the form and batch pages which template to load.
type openTemplateMsg struct {
	Filename string
	Provider string
}

type templatesLoadedMsg struct {
	items []models.TemplateItem
	err   error
}

type recentLoadedMsg struct {
	recent    []models.RecentTemplate
	collapsed bool
}

type formOpenedMsg struct {
	session *service.FormSession
	err     error
}

type generatedMsg struct {
	result service.GenerateResult
	err    error
}

type batchOpenedMsg struct {
	session *service.FormSession
	err     error
}

type batchProgressMsg struct {
	progress models.BatchProgress
}

type batchDoneMsg struct {
	progress models.BatchProgress
	err      error
}

type csvImportedMsg struct {
	result models.ImportResult
	err    error
}

type csvTemplateSavedMsg struct {
	path string
	err  error
}

type validatedMsg struct {
	result models.ValidationResult
	err    error
}

type reportSavedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}
