// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages and modes.
package model

// Reminder is a scheduled job record reported by the backend. The args
// slice follows the scheduler's positional convention: args[0] is the
// recipient and args[2] is the message body.
type Reminder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NextRunTime string   `json:"next_run_time"`
	Args        []string `json:"args"`
}

// Recipient returns the reminder's target, or "" when args are malformed.
func (r Reminder) Recipient() string {
	if len(r.Args) > 0 {
		return r.Args[0]
	}
	return ""
}

// Body returns the reminder's message body, or "" when args are malformed.
func (r Reminder) Body() string {
	if len(r.Args) > 2 {
		return r.Args[2]
	}
	return ""
}
