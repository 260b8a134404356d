// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// RenderConfirm draws the destructive-action confirmation modal,
// centered in the given area.
func RenderConfirm(theme *styles.Theme, title, prompt string, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.ModalTitle.Render(title),
		"",
		prompt,
		"",
		theme.ModalHint.Render("y confirm   n / esc cancel"),
	)
	box := theme.ModalBox.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
