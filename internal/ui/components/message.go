// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// ============================================================================
// MARKDOWN RENDERER
// ============================================================================

// MessageRenderer turns chat messages into styled terminal text. Bot
// replies are rendered as markdown via glamour; if the renderer could
// not be built, fenced code blocks are still highlighted directly.
type MessageRenderer struct {
	theme    *styles.Theme
	width    int
	markdown *glamour.TermRenderer
}

// NewMessageRenderer builds a renderer wrapping at the given width.
func NewMessageRenderer(theme *styles.Theme, width int) *MessageRenderer {
	if width < 20 {
		width = 20
	}
	r := &MessageRenderer{theme: theme, width: width}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err == nil {
		r.markdown = md
	}
	return r
}

// Width returns the wrap width the renderer was built with.
func (r *MessageRenderer) Width() int { return r.width }

// Render draws one message: sender line, body, timestamp, and for
// search replies the attached result list.
func (r *MessageRenderer) Render(msg model.Message) string {
	var b strings.Builder

	ts := r.theme.Timestamp.Render(msg.Timestamp.Local().Format("15:04"))

	switch {
	case msg.IsError:
		b.WriteString(r.theme.ErrorBubble.MaxWidth(r.width).Render(msg.Text))
	case msg.Sender == model.SenderUser:
		b.WriteString(r.theme.UserBubble.MaxWidth(r.width).Render("You: " + msg.Text))
	default:
		body := r.renderBotBody(msg.Text)
		b.WriteString(r.theme.BotBubble.MaxWidth(r.width).Render(body))
	}
	b.WriteString("\n")
	b.WriteString(ts)

	if len(msg.SearchResults) > 0 {
		b.WriteString("\n")
		b.WriteString(r.renderResults(msg.SearchResults))
	}
	return b.String()
}

func (r *MessageRenderer) renderBotBody(text string) string {
	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return HighlightFences(r.theme, text, r.width-4)
}

func (r *MessageRenderer) renderResults(results []model.SearchResult) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.theme.ResultTitle.Render(fmt.Sprintf("%d. %s", i+1, res.Title)))
		if res.URL != "" {
			b.WriteString("\n   ")
			b.WriteString(r.theme.ResultURL.Render(res.URL))
		}
		if res.Snippet != "" {
			b.WriteString("\n   ")
			b.WriteString(r.theme.ResultSnip.MaxWidth(r.width - 3).Render(res.Snippet))
		}
		meta := res.Domain
		if res.Date != "" {
			if meta != "" {
				meta += " · "
			}
			meta += res.Date
		}
		if meta != "" {
			b.WriteString("\n   ")
			b.WriteString(r.theme.Muted.Render(meta))
		}
	}
	return b.String()
}
