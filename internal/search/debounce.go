// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search filters the chat list by term, mode-scoped and debounced.
package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the settle window between the last keystroke and the
// filter evaluation.
const DefaultDebounce = 300 * time.Millisecond

// SettledMsg is delivered when a search term has gone unchanged for the
// debounce window. Stale generations are dropped by Settle.
type SettledMsg struct {
	Term string
	Gen  uint64
}

// Debouncer collapses rapid term edits into a single filter evaluation.
// Each edit bumps a generation counter; only the timer armed by the
// latest edit produces a SettledMsg that Settle accepts.
//
// Debouncer lives inside a Bubble Tea model and is not safe for use from
// multiple goroutines.
type Debouncer struct {
	interval time.Duration
	gen      uint64
}

// NewDebouncer creates a debouncer with the given settle window. A zero
// or negative interval falls back to DefaultDebounce.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Trigger records a term edit and returns the command that will report it
// settled. Any previously armed timer is invalidated by the generation
// bump, not cancelled; its message arrives and is ignored.
func (d *Debouncer) Trigger(term string) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.interval, func(time.Time) tea.Msg {
		return SettledMsg{Term: term, Gen: gen}
	})
}

// Settle reports whether the message belongs to the latest edit. Exactly
// one message per burst passes this check.
func (d *Debouncer) Settle(msg SettledMsg) bool {
	return msg.Gen == d.gen
}
