// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/history"
	"github.com/genailakes/workspace-tui/internal/model"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// QueryResultMsg carries the outcome of a backend query. ChatID names
// the chat the query was submitted from; results for chats deleted in
// the meantime are dropped by Update.
type QueryResultMsg struct {
	ChatID string
	Mode   model.Mode
	Result *api.QueryResult
	Err    error
}

// SyncDoneMsg carries the outcome of a sync trigger.
type SyncDoneMsg struct {
	Notice string
	Err    error
}

// SyncNoticeExpiredMsg hides the sync notice after its display window.
// Seq guards against an old timer clearing a newer notice.
type SyncNoticeExpiredMsg struct{ Seq int }

// ArchiveResultsMsg carries archived messages matching the finder term.
type ArchiveResultsMsg struct {
	Term    string
	Entries []history.Entry
	Err     error
}

// RemindersMsg carries the reminder list fetched from the backend.
type RemindersMsg struct {
	Reminders []model.Reminder
	Err       error
}

// HealthMsg carries the result of a background health probe.
type HealthMsg struct{ Err error }

// StoreReloadedMsg signals that the on-disk chat state changed outside
// the process and was reloaded.
type StoreReloadedMsg struct{}

// PersistFailedMsg reports that a write-through save did not reach
// disk. The session keeps running on in-memory state, but the user has
// to be told their history is no longer durable.
type PersistFailedMsg struct{ Err error }
