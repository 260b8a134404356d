// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the workspace TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application. It detects
// the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND TABS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// SIDEBAR (CHAT LIST)
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarTitle     lipgloss.Style
	ChatItem         lipgloss.Style
	ChatItemSelected lipgloss.Style
	ChatItemMeta     lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	ErrorBubble  lipgloss.Style
	Timestamp    lipgloss.Style
	ResultTitle  lipgloss.Style
	ResultURL    lipgloss.Style
	ResultSnip   lipgloss.Style
	EmptyState   lipgloss.Style
	PendingLabel lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputError     lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND TOASTS
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	ToastStatus  lipgloss.Style
	ToastError   lipgloss.Style
	ToastSuccess lipgloss.Style
	SyncNotice   lipgloss.Style

	// ==========================================================================
	// OVERLAYS
	// ==========================================================================

	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalHint    lipgloss.Style
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowAlt  lipgloss.Style
	FinderPrompt lipgloss.Style
	Muted        lipgloss.Style
}

// palette holds the raw colors a theme is built from.
type palette struct {
	accent    lipgloss.Color
	accentAlt lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
	surface   lipgloss.Color
	danger    lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
}

func darkPalette() palette {
	return palette{
		accent:    lipgloss.Color("#7C3AED"),
		accentAlt: lipgloss.Color("#06B6D4"),
		text:      lipgloss.Color("#E5E7EB"),
		muted:     lipgloss.Color("#6B7280"),
		surface:   lipgloss.Color("#1F2937"),
		danger:    lipgloss.Color("#F43F5E"),
		success:   lipgloss.Color("#10B981"),
		warning:   lipgloss.Color("#F59E0B"),
	}
}

func lightPalette() palette {
	return palette{
		accent:    lipgloss.Color("#6D28D9"),
		accentAlt: lipgloss.Color("#0E7490"),
		text:      lipgloss.Color("#111827"),
		muted:     lipgloss.Color("#9CA3AF"),
		surface:   lipgloss.Color("#F3F4F6"),
		danger:    lipgloss.Color("#BE123C"),
		success:   lipgloss.Color("#047857"),
		warning:   lipgloss.Color("#B45309"),
	}
}

// NewTheme builds the theme for the given name ("dark" or "light").
// Unknown names get the dark theme.
func NewTheme(name string) *Theme {
	isDark := name != "light"
	var p palette
	if isDark {
		p = darkPalette()
	} else {
		p = lightPalette()
	}

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.muted)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(p.text).
		Background(p.accent)
	t.TabInactive = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(p.muted)

	t.Sidebar = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.muted)
	t.SidebarTitle = lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt)
	t.ChatItem = lipgloss.NewStyle().Foreground(p.text)
	t.ChatItemSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.text).
		Background(p.surface)
	t.ChatItemMeta = lipgloss.NewStyle().Foreground(p.muted)

	t.UserBubble = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.accent)
	t.BotBubble = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.muted)
	t.ErrorBubble = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.danger).
		Foreground(p.danger)
	t.Timestamp = lipgloss.NewStyle().Foreground(p.muted)
	t.ResultTitle = lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt)
	t.ResultURL = lipgloss.NewStyle().Foreground(p.muted).Underline(true)
	t.ResultSnip = lipgloss.NewStyle().Foreground(p.text)
	t.EmptyState = lipgloss.NewStyle().Foreground(p.muted).Italic(true)
	t.PendingLabel = lipgloss.NewStyle().Foreground(p.warning).Italic(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.muted).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	t.InputError = lipgloss.NewStyle().Foreground(p.danger)

	t.StatusBar = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(p.muted)
	t.StatusKey = lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt)
	t.StatusValue = lipgloss.NewStyle().Foreground(p.text)
	t.ToastStatus = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.accentAlt).
		Foreground(p.accentAlt)
	t.ToastError = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.danger).
		Foreground(p.danger)
	t.ToastSuccess = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.success).
		Foreground(p.success)
	t.SyncNotice = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(p.success)

	t.ModalBox = lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.warning)
	t.ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(p.warning)
	t.ModalHint = lipgloss.NewStyle().Foreground(p.muted)
	t.TableHeader = lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt)
	t.TableRow = lipgloss.NewStyle().Foreground(p.text)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(p.muted)
	t.FinderPrompt = lipgloss.NewStyle().Bold(true).Foreground(p.accentAlt)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)

	return t
}
