// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components holds the small reusable view pieces of the TUI:
// toasts, the header tab strip, the status bar, message rendering and
// the confirmation modal.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// ============================================================================
// TOAST KINDS
// ============================================================================

// ToastKind determines the visual treatment and lifetime of a toast.
type ToastKind int

const (
	// ToastStatus is a neutral informational message.
	ToastStatus ToastKind = iota
	// ToastError reports a failure and stays visible longer.
	ToastError
	// ToastWarning reports something the user should look at.
	ToastWarning
	// ToastSuccess confirms a completed action.
	ToastSuccess
)

// Display durations per kind. Errors linger so the user can read them.
const (
	statusDuration  = 4 * time.Second
	errorDuration   = 8 * time.Second
	warningDuration = 6 * time.Second
	successDuration = 4 * time.Second
)

// ============================================================================
// TOAST STATE
// ============================================================================

// Toast is a transient message shown above the status bar.
type Toast struct {
	Text    string
	Kind    ToastKind
	visible bool
	seq     int
}

// ToastExpiredMsg is emitted when a toast's display time elapses. The
// sequence number guards against an old timer clearing a newer toast.
type ToastExpiredMsg struct{ Seq int }

// Show replaces the current toast and returns the command that will
// expire it.
func (t *Toast) Show(text string, kind ToastKind) tea.Cmd {
	t.Text = text
	t.Kind = kind
	t.visible = true
	t.seq++

	seq := t.seq
	d := statusDuration
	switch kind {
	case ToastError:
		d = errorDuration
	case ToastWarning:
		d = warningDuration
	case ToastSuccess:
		d = successDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Expire handles a ToastExpiredMsg, hiding the toast only if the
// message belongs to the currently shown one.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.Seq == t.seq {
		t.visible = false
	}
}

// Visible reports whether the toast should be rendered.
func (t *Toast) Visible() bool { return t.visible }

// Hide dismisses the toast immediately.
func (t *Toast) Hide() { t.visible = false }

// View renders the toast, or an empty string when hidden.
func (t *Toast) View(theme *styles.Theme) string {
	if !t.visible || t.Text == "" {
		return ""
	}
	switch t.Kind {
	case ToastError:
		return theme.ToastError.Render(t.Text)
	case ToastWarning:
		return theme.ToastError.Render("! " + t.Text)
	case ToastSuccess:
		return theme.ToastSuccess.Render(t.Text)
	default:
		return theme.ToastStatus.Render(t.Text)
	}
}
