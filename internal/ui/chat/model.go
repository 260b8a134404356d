// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea model driving the workspace
// TUI: the chat transcript, the chat finder, the reminders overlay and
// all keyboard handling.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/history"
	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/search"
	"github.com/genailakes/workspace-tui/internal/store"
	"github.com/genailakes/workspace-tui/internal/ui/components"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// =============================================================================
// VIEW STATES
// =============================================================================

// view selects which screen the model renders.
type view int

const (
	viewChat view = iota
	viewFinder
	viewReminders
)

// =============================================================================
// MODEL
// =============================================================================

// Options carries the collaborators the model needs. Everything is
// injected so tests can run against an in-memory store and a stub
// backend.
type Options struct {
	Store    *store.ChatStore
	Client   *api.Client
	Theme    *styles.Theme
	Logger   *zap.Logger
	KeyMap   KeyMap
	Debounce time.Duration

	// Archive extends the finder with matches from past messages.
	// Optional; nil disables the archive section.
	Archive *history.Archive

	// QueryTimeout bounds sync, health and reminder requests.
	QueryTimeout time.Duration
	// SyncNotice is how long the sync acknowledgement stays visible.
	SyncNotice time.Duration
}

// Model is the root Bubble Tea model.
type Model struct {
	store  *store.ChatStore
	client *api.Client
	theme  *styles.Theme
	logger *zap.Logger
	keys   KeyMap

	// Layout
	width  int
	height int
	ready  bool

	// Active screen
	view view

	// Chat screen
	input    textinput.Model
	viewport viewport.Model
	renderer *components.MessageRenderer

	// Finder screen
	finderInput textinput.Model
	finderTerm  string
	debouncer   *search.Debouncer
	matches     []model.Chat
	finderIdx   int
	archive     *history.Archive
	archMatches []history.Entry

	// Reminders screen
	reminders []model.Reminder

	// Transient state
	toast      components.Toast
	syncBusy   bool
	syncNotice string
	syncSeq    int

	cancelMgr    *cancelManager
	queryTimeout time.Duration
	noticeWindow time.Duration
}

// New builds the root model.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = search.DefaultDebounce
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = api.DefaultTimeout
	}
	if opts.SyncNotice <= 0 {
		opts.SyncNotice = 7 * time.Second
	}

	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.CharLimit = 4000
	input.Focus()

	finder := textinput.New()
	finder.Placeholder = "Search chats..."
	finder.CharLimit = 200

	return &Model{
		store:        opts.Store,
		client:       opts.Client,
		theme:        opts.Theme,
		logger:       opts.Logger,
		keys:         opts.KeyMap,
		view:         viewChat,
		input:        input,
		finderInput:  finder,
		debouncer:    search.NewDebouncer(opts.Debounce),
		archive:      opts.Archive,
		cancelMgr:    newCancelManager(),
		queryTimeout: opts.QueryTimeout,
		noticeWindow: opts.SyncNotice,
	}
}

// Init probes backend health in the background.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		healthCmd(m.client, m.queryTimeout),
	)
}

// activePending reports whether the active chat has a query in flight.
func (m *Model) activePending() bool {
	id := m.store.ActiveChatID()
	return id != "" && m.cancelMgr.busy(id)
}

// refreshMatches recomputes the finder result list for the settled term.
func (m *Model) refreshMatches() {
	m.matches = search.Filter(m.store.Chats(), m.finderTerm, m.store.ActiveMode())
	if m.finderIdx >= len(m.matches) {
		m.finderIdx = 0
	}
}
