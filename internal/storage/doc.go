// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides file-backed persistence for workspace state.
//
// Two files live under the data directory:
//
//   - chats.json: the full chat collection, rewritten on every mutation.
//     When the collection empties, the file is removed rather than
//     written as an empty list.
//   - prefs.json: the last active mode and chat id, used to restore the
//     session after a restart.
//
// All writes go through the atomic temp-fsync-rename path. Corrupt files
// found at load time are discarded with a warning; persistence failures
// never block the session.
//
// A Watcher can observe the chat file for out-of-process rewrites so the
// running session can reload.
package storage
