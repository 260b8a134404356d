// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// StatusInfo carries the fields the status bar displays.
type StatusInfo struct {
	ChatCount  int
	Pending    bool
	SyncBusy   bool
	SyncNotice string
	Hints      []string
}

// RenderStatusBar draws the bottom line: counts and activity on the
// left, key hints on the right, truncated to the terminal width.
func RenderStatusBar(theme *styles.Theme, info StatusInfo, width int) string {
	var left strings.Builder
	left.WriteString(theme.StatusKey.Render("chats"))
	left.WriteString(" ")
	left.WriteString(theme.StatusValue.Render(fmt.Sprintf("%d", info.ChatCount)))

	if info.Pending {
		left.WriteString("  ")
		left.WriteString(theme.PendingLabel.Render("thinking..."))
	}
	if info.SyncBusy {
		left.WriteString("  ")
		left.WriteString(theme.PendingLabel.Render("syncing..."))
	} else if info.SyncNotice != "" {
		left.WriteString("  ")
		left.WriteString(theme.SyncNotice.Render(info.SyncNotice))
	}

	hints := theme.Muted.Render(strings.Join(info.Hints, "  "))

	line := left.String()
	if hints != "" {
		line += "  " + hints
	}
	bar := theme.StatusBar
	if width > 0 {
		bar = bar.MaxWidth(width)
	}
	return bar.Render(line)
}
