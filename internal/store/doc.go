// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory chat session state.
//
// ChatStore is the single authority over chats, the active mode and the
// active selection. Mutations funnel through its methods so the invariants
// hold at every step:
//
//   - The active chat, when set, always belongs to the active mode.
//   - Transcripts are append-only; only the two-step clear empties one.
//   - A chat's title is auto-derived at most once, from the first user
//     message, and only while the placeholder title is still in place.
//   - Clearing the active chat drops the selection.
//
// The OnChange hook fires synchronously after every mutation with a
// deep-copied snapshot, which is how the persistence layer stays at most
// one mutation behind memory.
package store
