// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages and modes.
package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TitleMaxRunes is the length at which auto-derived chat titles are cut.
const TitleMaxRunes = 35

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat holds one conversation thread within a single mode.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Mode      Mode      `json:"mode"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewChat creates an empty chat in the given mode with a generated ID and
// the mode's default title.
func NewChat(mode Mode) *Chat {
	return &Chat{
		ID:        uuid.NewString(),
		Title:     DefaultTitle(mode),
		Mode:      mode,
		Messages:  make([]Message, 0),
		CreatedAt: time.Now(),
	}
}

// DefaultTitle returns the placeholder title new chats start with.
func DefaultTitle(mode Mode) string {
	return mode.Label() + " Chat"
}

// HasDefaultTitle reports whether the chat still bears its placeholder
// title, which is the condition for auto-derivation on first append.
func (c *Chat) HasDefaultTitle() bool {
	return c.Title == DefaultTitle(c.Mode)
}

// Append adds a message to the transcript. When the first user message
// lands on a chat that is still empty and untitled, the title is derived
// from that message exactly once; later messages and manual titles are
// never overridden.
func (c *Chat) Append(msg Message) {
	deriveTitle := msg.IsUser() && len(c.Messages) == 0 && c.HasDefaultTitle()
	c.Messages = append(c.Messages, msg)
	if deriveTitle {
		c.Title = DeriveTitle(msg.Text)
	}
}

// DeriveTitle produces a chat title from message text, truncated rune-safe.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= TitleMaxRunes {
		return text
	}
	return string(runes[:TitleMaxRunes]) + "..."
}

// Clear empties the transcript in place. Identity, title, mode and
// creation time are preserved.
func (c *Chat) Clear() {
	c.Messages = make([]Message, 0)
}

// IsEmpty reports whether the chat has no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Clone creates a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	clone := *c
	clone.Messages = make([]Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	for i := range clone.Messages {
		if src := c.Messages[i].SearchResults; src != nil {
			clone.Messages[i].SearchResults = make([]SearchResult, len(src))
			copy(clone.Messages[i].SearchResults, src)
		}
	}
	return &clone
}

// SortChats orders chats newest-first by creation time. The sort is
// stable so equal timestamps keep their relative order.
func SortChats(chats []*Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
}
