// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages and modes.
package model

// =============================================================================
// MODE TYPE
// =============================================================================

// Mode identifies one of the workspace's conversation surfaces. The mode
// value doubles as the backend endpoint path segment.
type Mode string

const (
	ModeAssistant Mode = "assistant"
	ModeSearch    Mode = "search"
	ModeAgent     Mode = "agent"
)

// Modes lists all modes in display order. The first entry is the default
// used when persisted state carries no mode or an unknown one.
var Modes = []Mode{ModeAssistant, ModeSearch, ModeAgent}

// DefaultMode returns the mode used when none is recorded.
func DefaultMode() Mode {
	return Modes[0]
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Label returns the human-readable mode name shown in tabs and titles.
func (m Mode) Label() string {
	switch m {
	case ModeAssistant:
		return "AI Assistant"
	case ModeSearch:
		return "AI Search"
	case ModeAgent:
		return "AI Agent"
	default:
		return "AI Assistant"
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAssistant, ModeSearch, ModeAgent:
		return true
	}
	return false
}

// NormalizeMode maps unknown or empty mode values to the default mode.
// Persisted records from older versions may omit the field entirely.
func NormalizeMode(m Mode) Mode {
	if m.Valid() {
		return m
	}
	return DefaultMode()
}

// EndpointPath returns the backend path segment for query submission.
func (m Mode) EndpointPath() string {
	return string(m)
}
