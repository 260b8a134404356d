// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/search"
	"github.com/genailakes/workspace-tui/internal/ui/components"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update is the Bubble Tea message dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case search.SettledMsg:
		if m.debouncer.Settle(msg) {
			m.finderTerm = msg.Term
			m.refreshMatches()
			if m.archive != nil && m.view == viewFinder && m.finderTerm != "" {
				return m, archiveSearchCmd(m.archive, m.finderTerm, m.store.ActiveMode(), m.queryTimeout)
			}
			m.archMatches = nil
		}
		return m, nil

	case ArchiveResultsMsg:
		// The term may have moved on while the query ran.
		if msg.Term != m.finderTerm {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("archive search failed", zap.Error(msg.Err))
			m.archMatches = nil
			return m, nil
		}
		m.archMatches = msg.Entries
		return m, nil

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case SyncDoneMsg:
		m.syncBusy = false
		if msg.Err != nil {
			m.logger.Warn("sync failed", zap.Error(msg.Err))
			return m, m.toast.Show("Sync failed: "+errorReason(msg.Err), components.ToastError)
		}
		m.syncNotice = msg.Notice
		m.syncSeq++
		return m, syncNoticeExpiryCmd(m.noticeWindow, m.syncSeq)

	case SyncNoticeExpiredMsg:
		if msg.Seq == m.syncSeq {
			m.syncNotice = ""
		}
		return m, nil

	case RemindersMsg:
		if msg.Err != nil {
			m.view = viewChat
			return m, m.toast.Show("Reminders unavailable: "+errorReason(msg.Err), components.ToastError)
		}
		m.reminders = msg.Reminders
		return m, nil

	case HealthMsg:
		if msg.Err != nil {
			m.logger.Warn("backend health probe failed", zap.Error(msg.Err))
		} else {
			m.logger.Info("backend reachable")
		}
		return m, nil

	case PersistFailedMsg:
		m.logger.Error("write-through save failed", zap.Error(msg.Err))
		return m, m.toast.Show("Saving failed: "+msg.Err.Error(), components.ToastError)

	case StoreReloadedMsg:
		m.syncViewport()
		if m.view == viewFinder {
			m.refreshMatches()
		}
		return m, nil

	case components.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	transcriptWidth := m.transcriptWidth()
	transcriptHeight := m.transcriptHeight()
	if !m.ready {
		m.viewport = viewport.New(transcriptWidth, transcriptHeight)
		m.ready = true
	} else {
		m.viewport.Width = transcriptWidth
		m.viewport.Height = transcriptHeight
	}
	m.renderer = components.NewMessageRenderer(m.theme, transcriptWidth)
	m.input.Width = m.width - 8
	m.finderInput.Width = m.width - 8
	m.syncViewport()
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works everywhere.
	if key.Matches(msg, m.keys.Quit) {
		m.cancelMgr.cancelAll()
		return m, tea.Quit
	}

	// A pending clear captures the keyboard until resolved.
	if m.store.PendingClear() != "" {
		return m.handleClearPrompt(msg)
	}

	switch m.view {
	case viewFinder:
		return m.handleFinderKey(msg)
	case viewReminders:
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Reminders) {
			m.view = viewChat
		}
		return m, nil
	default:
		return m.handleChatKey(msg)
	}
}

func (m *Model) handleClearPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.store.ConfirmClear()
		m.syncViewport()
		return m, m.toast.Show("Chat cleared.", components.ToastSuccess)
	case "n", "N", "esc":
		m.store.CancelClear()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NewChat):
		m.store.CreateChat(m.store.ActiveMode())
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.DeleteChat):
		id := m.store.ActiveChatID()
		if id == "" {
			return m, nil
		}
		m.cancelMgr.cancel(id)
		if err := m.store.DeleteChat(id); err != nil {
			return m, m.toast.Show(err.Error(), components.ToastError)
		}
		m.syncViewport()
		return m, m.toast.Show("Chat deleted.", components.ToastStatus)

	case key.Matches(msg, m.keys.ClearChat):
		m.store.RequestClear(m.store.ActiveChatID())
		return m, nil

	case key.Matches(msg, m.keys.NextMode):
		m.switchMode(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMode):
		m.switchMode(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextChat):
		m.selectAdjacent(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevChat):
		m.selectAdjacent(-1)
		return m, nil

	case key.Matches(msg, m.keys.Finder):
		m.view = viewFinder
		m.finderInput.SetValue("")
		m.finderTerm = ""
		m.finderIdx = 0
		m.archMatches = nil
		m.refreshMatches()
		m.input.Blur()
		return m, m.finderInput.Focus()

	case key.Matches(msg, m.keys.Reminders):
		m.view = viewReminders
		m.reminders = nil
		return m, remindersCmd(m.client, m.queryTimeout)

	case key.Matches(msg, m.keys.Sync):
		if m.syncBusy {
			return m, nil
		}
		m.syncBusy = true
		return m, syncCmd(m.client, m.queryTimeout)

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleFinderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = viewChat
		m.finderInput.Blur()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Submit):
		if m.finderIdx < len(m.matches) {
			picked := m.matches[m.finderIdx]
			if picked.Mode != m.store.ActiveMode() {
				m.store.SwitchMode(picked.Mode)
			}
			m.store.SelectChat(picked.ID)
		}
		m.view = viewChat
		m.finderInput.Blur()
		m.syncViewport()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextChat):
		if len(m.matches) > 0 {
			m.finderIdx = (m.finderIdx + 1) % len(m.matches)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevChat):
		if len(m.matches) > 0 {
			m.finderIdx = (m.finderIdx - 1 + len(m.matches)) % len(m.matches)
		}
		return m, nil
	}

	before := m.finderInput.Value()
	var cmd tea.Cmd
	m.finderInput, cmd = m.finderInput.Update(msg)
	if after := m.finderInput.Value(); after != before {
		return m, tea.Batch(cmd, m.debouncer.Trigger(after))
	}
	return m, cmd
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit appends the typed query to the active chat and fires the
// backend request. The user message stays in the transcript even when
// the request later fails.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, m.toast.Show("Type a message to send.", components.ToastStatus)
	}
	if m.activePending() {
		return m, m.toast.Show("Waiting for the current reply.", components.ToastStatus)
	}

	mode := m.store.ActiveMode()
	active, ok := m.store.ActiveChat()
	if !ok {
		active = m.store.CreateChat(mode)
	}

	if err := m.store.AppendMessage(active.ID, model.NewUserMessage(text, mode)); err != nil {
		return m, m.toast.Show(err.Error(), components.ToastError)
	}
	m.input.Reset()
	m.syncViewport()
	return m, submitQueryCmd(m.client, m.cancelMgr, active.ID, mode, text)
}

func (m *Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	// The chat may have been deleted while the request was in flight.
	if _, ok := m.store.Chat(msg.ChatID); !ok {
		return m, nil
	}

	if msg.Err != nil {
		// A superseded or aborted request is not an error to show.
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.logger.Warn("query failed",
			zap.String("chat_id", msg.ChatID),
			zap.Error(msg.Err))
		reason := errorReason(msg.Err)
		reply := model.NewErrorMessage(reason, msg.Mode)
		if err := m.store.AppendMessage(msg.ChatID, reply); err != nil {
			return m, m.toast.Show(err.Error(), components.ToastError)
		}
		m.syncViewport()
		// The transcript keeps the failure; the toast makes it visible
		// even when the chat is not on screen.
		return m, m.toast.Show(reason, components.ToastError)
	}

	reply := model.NewBotMessage(msg.Result.Response, msg.Mode)
	reply.SearchResults = msg.Result.SearchResults
	if err := m.store.AppendMessage(msg.ChatID, reply); err != nil {
		return m, m.toast.Show(err.Error(), components.ToastError)
	}
	m.syncViewport()
	return m, nil
}

// switchMode cycles through the modes in declaration order. Unsent
// input and any surfaced error belong to the mode being left, so both
// are dropped.
func (m *Model) switchMode(step int) {
	modes := model.Modes
	cur := 0
	for i, mode := range modes {
		if mode == m.store.ActiveMode() {
			cur = i
			break
		}
	}
	next := modes[(cur+step+len(modes))%len(modes)]
	m.store.SwitchMode(next)
	m.input.Reset()
	m.toast.Hide()
	m.syncViewport()
}

// selectAdjacent moves the active chat selection within the mode's
// list, newest first.
func (m *Model) selectAdjacent(step int) {
	chats := m.store.ChatsForMode(m.store.ActiveMode())
	if len(chats) == 0 {
		return
	}
	cur := 0
	activeID := m.store.ActiveChatID()
	for i, c := range chats {
		if c.ID == activeID {
			cur = i
			break
		}
	}
	next := chats[(cur+step+len(chats))%len(chats)]
	m.store.SelectChat(next.ID)
	m.syncViewport()
}

// errorReason extracts the user-facing explanation from a failure.
// Backend rejections carry their own message; transport errors fall
// back to the error text.
func errorReason(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
