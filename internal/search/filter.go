// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search filters the chat list by term, mode-scoped and debounced.
package search

import (
	"strings"

	"github.com/genailakes/workspace-tui/internal/model"
)

// MinBodyTermRunes is the exclusive length threshold for message-body
// matching. Terms this short match titles only, keeping one- and
// two-character terms from lighting up nearly every chat.
const MinBodyTermRunes = 2

// Filter returns the chats in the given mode that match the term,
// preserving input order. An empty or whitespace term matches every chat
// in the mode. Matching is case-insensitive: the title always
// participates, message bodies only when the term is longer than
// MinBodyTermRunes.
func Filter(chats []model.Chat, term string, mode model.Mode) []model.Chat {
	term = strings.TrimSpace(term)
	needle := strings.ToLower(term)
	searchBodies := len([]rune(term)) > MinBodyTermRunes

	out := make([]model.Chat, 0, len(chats))
	for _, c := range chats {
		if c.Mode != mode {
			continue
		}
		if needle == "" || matches(c, needle, searchBodies) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c model.Chat, needle string, searchBodies bool) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) {
		return true
	}
	if !searchBodies {
		return false
	}
	for _, m := range c.Messages {
		if strings.Contains(strings.ToLower(m.Text), needle) {
			return true
		}
	}
	return false
}
