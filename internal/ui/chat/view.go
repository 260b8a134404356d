// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/genailakes/workspace-tui/internal/ui/components"
	"github.com/genailakes/workspace-tui/internal/util"
)

// Fixed layout dimensions.
const (
	sidebarWidth = 28
	chromeHeight = 6 // header + input + status
)

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

func (m *Model) transcriptWidth() int {
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) transcriptHeight() int {
	h := m.height - chromeHeight
	if h < 5 {
		h = 5
	}
	return h
}

// syncViewport re-renders the active transcript into the viewport and
// scrolls to the latest message.
func (m *Model) syncViewport() {
	if !m.ready || m.renderer == nil {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen for the current state.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := components.RenderHeader(m.theme, m.store.ActiveMode(), m.width)

	var body string
	switch m.view {
	case viewFinder:
		body = m.renderFinder()
	case viewReminders:
		body = components.RenderReminders(m.theme, m.reminders, m.width-2)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.viewport.View())
	}

	inputLine := m.theme.InputContainer.Width(m.width - 2).
		Render(m.theme.InputPrompt.Render("> ") + m.input.View())

	status := components.RenderStatusBar(m.theme, components.StatusInfo{
		ChatCount:  len(m.store.ChatsForMode(m.store.ActiveMode())),
		Pending:    m.activePending(),
		SyncBusy:   m.syncBusy,
		SyncNotice: m.syncNotice,
		Hints:      m.hints(),
	}, m.width)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, inputLine, status)

	if toast := m.toast.View(m.theme); toast != "" {
		screen = lipgloss.JoinVertical(lipgloss.Left, screen, toast)
	}

	if id := m.store.PendingClear(); id != "" {
		title := "Clear chat?"
		prompt := "All messages will be removed. The chat itself stays."
		if c, ok := m.store.Chat(id); ok {
			title = fmt.Sprintf("Clear %q?", util.TruncateRunes(c.Title, 30))
		}
		return components.RenderConfirm(m.theme, title, prompt, m.width, m.height)
	}
	return screen
}

// renderTranscript draws every message of the active chat.
func (m *Model) renderTranscript() string {
	active, ok := m.store.ActiveChat()
	if !ok {
		return m.theme.EmptyState.Render("No chat selected. Press C-n to start one.")
	}
	if len(active.Messages) == 0 {
		return m.theme.EmptyState.Render("No messages yet. Type below and press Enter.")
	}

	parts := make([]string, 0, len(active.Messages))
	for _, msg := range active.Messages {
		parts = append(parts, m.renderer.Render(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderSidebar lists the active mode's chats, newest first.
func (m *Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n\n")

	chats := m.store.ChatsForMode(m.store.ActiveMode())
	if len(chats) == 0 {
		b.WriteString(m.theme.EmptyState.Render("(none)"))
	}
	activeID := m.store.ActiveChatID()
	for _, c := range chats {
		title := util.TruncateWidth(c.Title, sidebarWidth-4)
		if c.ID == activeID {
			b.WriteString(m.theme.ChatItemSelected.Render("> " + title))
		} else {
			b.WriteString(m.theme.ChatItem.Render("  " + title))
		}
		b.WriteString("\n")
		b.WriteString(m.theme.ChatItemMeta.Render("  " + c.CreatedAt.Local().Format("Jan 02 15:04")))
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.transcriptHeight()).
		Render(b.String())
}

// renderFinder draws the chat search overlay.
func (m *Model) renderFinder() string {
	var b strings.Builder
	b.WriteString(m.theme.FinderPrompt.Render("Find: "))
	b.WriteString(m.finderInput.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(m.theme.EmptyState.Render("No matching chats."))
	}
	for i, c := range m.matches {
		line := fmt.Sprintf("%s  %s", util.TruncateWidth(c.Title, 40), c.Mode.Label())
		if i == m.finderIdx {
			b.WriteString(m.theme.ChatItemSelected.Render("> " + line))
		} else {
			b.WriteString(m.theme.ChatItem.Render("  " + line))
		}
		b.WriteString("\n")
		if last := c.LastMessage(); last != nil {
			b.WriteString(m.theme.ChatItemMeta.Render("  " + last.Preview(60)))
			b.WriteString("\n")
		}
	}

	if len(m.archMatches) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.SidebarTitle.Render("From the archive"))
		b.WriteString("\n")
		for _, e := range m.archMatches {
			b.WriteString(m.theme.ChatItem.Render("  " + util.TruncateWidth(e.Text, 60)))
			b.WriteString("\n")
			meta := fmt.Sprintf("  %s · %s", e.ChatTitle, e.CreatedAt.Local().Format("Jan 02 15:04"))
			b.WriteString(m.theme.ChatItemMeta.Render(meta))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) hints() []string {
	switch m.view {
	case viewFinder:
		return []string{"Enter open", "C-j/C-k move", "Esc back"}
	case viewReminders:
		return []string{"Esc back"}
	default:
		return []string{"C-n new", "Tab mode", "C-f find", "C-r reminders", "C-s sync", "C-c quit"}
	}
}
