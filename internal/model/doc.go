// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages and modes.
//
// This package defines the core domain types used throughout the application
// for representing chat sessions, transcript messages, search results and
// backend reminder records.
//
// # Key Types
//
//   - Chat: One conversation thread scoped to a single mode
//   - Message: Single transcript entry with sender, text and timestamp
//   - Mode: Conversation surface enumeration (assistant, search, agent)
//   - SearchResult: Web result attached to search-mode bot replies
//   - Reminder: Scheduled job record reported by the backend
//
// # Usage
//
// Create a chat and append the opening exchange:
//
//	chat := model.NewChat(model.ModeAssistant)
//	chat.Append(model.NewUserMessage("Hello!", chat.Mode))
//	chat.Append(model.NewBotMessage("Hi. How can I help?", chat.Mode))
//
// The first user message appended to an untitled chat becomes its title.
package model
