// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the workspace interface.
type KeyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	DeleteChat key.Binding
	ClearChat  key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	NextChat   key.Binding
	PrevChat   key.Binding
	Finder     key.Binding
	Reminders  key.Binding
	Sync       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		DeleteChat: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete chat"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear chat"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous mode"),
		),
		NextChat: key.NewBinding(
			key.WithKeys("ctrl+j", "down"),
			key.WithHelp("C-j", "next chat"),
		),
		PrevChat: key.NewBinding(
			key.WithKeys("ctrl+k", "up"),
			key.WithHelp("C-k", "previous chat"),
		),
		Finder: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "find chats"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reminders"),
		),
		Sync: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "sync"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back / cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewChat, k.NextMode, k.Finder, k.Sync, k.Quit}
}

// FullHelp groups every binding for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NewChat, k.DeleteChat, k.ClearChat},
		{k.NextMode, k.PrevMode, k.NextChat, k.PrevChat},
		{k.Finder, k.Reminders, k.Sync},
		{k.ScrollUp, k.ScrollDown, k.Escape, k.Quit},
	}
}
