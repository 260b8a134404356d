// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// ============================================================================
// FENCED CODE BLOCKS
// ============================================================================

// HighlightFences replaces ``` fenced blocks in text with syntax
// highlighted, boxed versions. It is the fallback path when glamour
// rendering is unavailable; everything outside the fences passes
// through untouched.
func HighlightFences(theme *styles.Theme, text string, maxWidth int) string {
	lines := strings.Split(text, "\n")
	var out []string
	var code []string
	var lang string
	inFence := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			if inFence {
				out = append(out, renderFence(theme, lang, strings.Join(code, "\n"), maxWidth))
				code, lang, inFence = nil, "", false
			} else {
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
		case inFence:
			code = append(code, line)
		default:
			out = append(out, line)
		}
	}
	// Unterminated fence still renders.
	if inFence && len(code) > 0 {
		out = append(out, renderFence(theme, lang, strings.Join(code, "\n"), maxWidth))
	}
	return strings.Join(out, "\n")
}

func renderFence(theme *styles.Theme, lang, code string, maxWidth int) string {
	code = strings.TrimRight(code, "\n")
	body := highlight(code, lang)

	var header string
	if lang != "" {
		header = theme.Muted.Bold(true).Render(lang) + "\n"
	}

	if maxWidth < 24 {
		maxWidth = 24
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Muted.GetForeground()).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + body)
}

// highlight runs code through chroma's terminal256 formatter. On any
// failure the plain code comes back unchanged.
func highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, it); err != nil {
		return code
	}
	return buf.String()
}
