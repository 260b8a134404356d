// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// RenderHeader draws the top bar: the app title followed by one tab per
// mode, with the active mode highlighted.
func RenderHeader(theme *styles.Theme, active model.Mode, width int) string {
	title := theme.HeaderTitle.Render("Workspace")

	tabs := make([]string, 0, len(model.Modes))
	for _, m := range model.Modes {
		if m == active {
			tabs = append(tabs, theme.TabActive.Render(m.Label()))
		} else {
			tabs = append(tabs, theme.TabInactive.Render(m.Label()))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		append([]string{title, "  "}, tabs...)...)
	if width < 0 {
		width = 0
	}
	return theme.Header.Width(width).Render(row)
}
