// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages and modes.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// =============================================================================
// SEARCH RESULT TYPE
// =============================================================================

// SearchResult is one web result attached to a bot reply in search mode.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Domain  string `json:"domain,omitempty"`
	Date    string `json:"date,omitempty"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a chat transcript. Bot messages may carry
// search results (search mode only) or an error flag when the reply text
// describes a failed request rather than a backend answer.
type Message struct {
	Sender        Sender         `json:"sender"`
	Text          string         `json:"text"`
	Timestamp     time.Time      `json:"timestamp"`
	Mode          Mode           `json:"mode,omitempty"`
	IsError       bool           `json:"isError,omitempty"`
	SearchResults []SearchResult `json:"searchResults,omitempty"`
}

// NewUserMessage creates a user message stamped with the current time.
func NewUserMessage(text string, mode Mode) Message {
	return Message{
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
		Mode:      mode,
	}
}

// NewBotMessage creates a bot reply stamped with the current time.
func NewBotMessage(text string, mode Mode) Message {
	return Message{
		Sender:    SenderBot,
		Text:      text,
		Timestamp: time.Now(),
		Mode:      mode,
	}
}

// NewErrorMessage creates a bot-authored message describing a failed
// request. The reason is embedded in the visible text so transcripts
// remain self-describing after persistence round-trips.
func NewErrorMessage(reason string, mode Mode) Message {
	msg := NewBotMessage("Sorry, something went wrong: "+reason, mode)
	msg.IsError = true
	return msg
}

// IsUser reports whether the message was authored by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Preview returns the first maxRunes characters of the message text with
// newlines collapsed, for list displays.
func (m Message) Preview(maxRunes int) string {
	text := strings.Join(strings.Fields(m.Text), " ")
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
