// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// =============================================================================
// IN-FLIGHT REQUEST TRACKING (THREAD-SAFE)
// =============================================================================

// cancelManager tracks the cancel function of the in-flight query per
// chat. It is accessed from both the Update loop and the command
// goroutines, so all access goes through the mutex.
// IMPORTANT: must be held as a pointer (*cancelManager) in Model to
// avoid copying the mutex when Bubble Tea returns model copies.
type cancelManager struct {
	mu      sync.Mutex
	pending map[string]context.CancelFunc
}

func newCancelManager() *cancelManager {
	return &cancelManager{pending: make(map[string]context.CancelFunc)}
}

// track stores the cancel function for a chat's in-flight query. Any
// previous query for the same chat is cancelled first, so at most one
// request per chat is ever outstanding.
func (cm *cancelManager) track(chatID string, fn context.CancelFunc) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if prev, ok := cm.pending[chatID]; ok && prev != nil {
		prev()
	}
	cm.pending[chatID] = fn
}

// done clears the entry for a finished query. The context is cancelled
// to release its timer even on the success path.
func (cm *cancelManager) done(chatID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if fn, ok := cm.pending[chatID]; ok {
		if fn != nil {
			fn()
		}
		delete(cm.pending, chatID)
	}
}

// cancel aborts the in-flight query for a chat, if any.
func (cm *cancelManager) cancel(chatID string) {
	cm.done(chatID)
}

// cancelAll aborts every in-flight query. Called on shutdown.
func (cm *cancelManager) cancelAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for id, fn := range cm.pending {
		if fn != nil {
			fn()
		}
		delete(cm.pending, id)
	}
}

// busy reports whether a chat has a query outstanding.
func (cm *cancelManager) busy(chatID string) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	_, ok := cm.pending[chatID]
	return ok
}
