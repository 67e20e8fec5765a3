// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/service"
)

// ErrUserQuit is returned by [TUI.Run] when the user left with ctrl+c.
var ErrUserQuit = errors.New("user quit")

// errorText is the sentence shown for err.
func errorText(err error) string {
	return service.UserMessage(err)
}

// withSession lets the session observe the error of an authenticated call,
// purging it on a 401.
func withSession(ctx context.Context, session service.SessionService, err error) error {
	if err == nil || session == nil {
		return err
	}
	return session.HandleError(ctx, err)
}

func isSessionExpired(err error) bool {
	return errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrNotAuthenticated)
}

func cmdSessionExpired() tea.Msg {
	return SessionExpiredMsg{}
}

func cmdCopyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{what: what, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{what: what}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
