// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/history"
	"github.com/genailakes/workspace-tui/internal/model"
)

// =============================================================================
// COMMAND CONSTRUCTORS
// =============================================================================

// submitQueryCmd sends the query to the backend off the Update loop.
// The context is registered with the cancel manager so a newer submit
// or a chat deletion can abort it.
func submitQueryCmd(client *api.Client, mgr *cancelManager, chatID string, mode model.Mode, query string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	mgr.track(chatID, cancel)

	return func() tea.Msg {
		result, err := client.Query(ctx, mode, query)
		mgr.done(chatID)
		return QueryResultMsg{ChatID: chatID, Mode: mode, Result: result, Err: err}
	}
}

// syncCmd fires the backend sync trigger.
func syncCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notice, err := client.Sync(ctx)
		return SyncDoneMsg{Notice: notice, Err: err}
	}
}

// syncNoticeExpiryCmd schedules the notice to disappear.
func syncNoticeExpiryCmd(after time.Duration, seq int) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return SyncNoticeExpiredMsg{Seq: seq}
	})
}

// archiveSearchCmd queries the local message archive for the settled
// finder term.
func archiveSearchCmd(archive *history.Archive, term string, mode model.Mode, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := archive.Search(ctx, term, mode, 50)
		return ArchiveResultsMsg{Term: term, Entries: entries, Err: err}
	}
}

// remindersCmd fetches the reminder list.
func remindersCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reminders, err := client.Reminders(ctx)
		return RemindersMsg{Reminders: reminders, Err: err}
	}
}

// healthCmd probes the backend once. The result only feeds the log and
// the status toast; the app works offline regardless.
func healthCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return HealthMsg{Err: client.Health(ctx)}
	}
}
