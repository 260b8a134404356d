// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
	"github.com/genailakes/workspace-tui/internal/util"
)

// Column widths for the reminders table.
const (
	reminderNameWidth      = 24
	reminderRecipientWidth = 20
	reminderWhenWidth      = 17
)

// RenderReminders draws the scheduled reminders as a simple table.
func RenderReminders(theme *styles.Theme, reminders []model.Reminder, width int) string {
	var b strings.Builder
	b.WriteString(theme.SidebarTitle.Render("Reminders"))
	b.WriteString("\n\n")

	if len(reminders) == 0 {
		b.WriteString(theme.EmptyState.Render("No reminders scheduled."))
		return b.String()
	}

	header := util.PadRight("NAME", reminderNameWidth) +
		util.PadRight("RECIPIENT", reminderRecipientWidth) +
		util.PadRight("NEXT RUN", reminderWhenWidth) +
		"MESSAGE"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	bodyWidth := width - reminderNameWidth - reminderRecipientWidth - reminderWhenWidth
	if bodyWidth < 10 {
		bodyWidth = 10
	}

	for i, rem := range reminders {
		row := util.PadRight(util.TruncateWidth(rem.Name, reminderNameWidth-1), reminderNameWidth) +
			util.PadRight(util.TruncateWidth(rem.Recipient(), reminderRecipientWidth-1), reminderRecipientWidth) +
			util.PadRight(formatNextRun(rem.NextRunTime), reminderWhenWidth) +
			util.TruncateWidth(rem.Body(), bodyWidth)
		style := theme.TableRow
		if i%2 == 1 {
			style = theme.TableRowAlt
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

// formatNextRun trims a scheduler timestamp like
// "2025-01-02T15:04:05.000000+00:00" down to the date and minute.
func formatNextRun(raw string) string {
	if raw == "" {
		return "-"
	}
	if len(raw) >= 16 && raw[10] == 'T' {
		return raw[:10] + " " + raw[11:16]
	}
	return util.TruncateWidth(raw, reminderWhenWidth-1)
}
