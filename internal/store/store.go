// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory chat session state.
package store

import (
	"errors"
	"sync"

	"github.com/genailakes/workspace-tui/internal/model"
)

// ErrChatNotFound is returned when an operation names a chat id that does
// not exist in the store.
var ErrChatNotFound = errors.New("chat not found")

// =============================================================================
// CHAT STORE
// =============================================================================

// ChatStore owns every chat across all modes plus the active-selection
// state. It is safe for concurrent use; all reads return deep copies so
// callers can never mutate store state behind the lock.
//
// A ChatStore is constructed explicitly and passed to whoever needs it.
// There is no package-level instance.
type ChatStore struct {
	mu sync.Mutex

	chats    []*model.Chat
	activeID string
	mode     model.Mode

	// Two-step clear: id of the chat awaiting confirmation, or "".
	pendingClear string

	// onChange receives a full snapshot after every mutation. The
	// persistence write-through attaches here.
	onChange func(snapshot []model.Chat)
}

// New creates an empty store starting in the default mode.
func New() *ChatStore {
	return &ChatStore{mode: model.DefaultMode()}
}

// OnChange registers the mutation hook. It is invoked synchronously after
// every state change, outside the store lock, with a deep-copied snapshot
// of all chats.
func (s *ChatStore) OnChange(fn func(snapshot []model.Chat)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateChat creates an empty chat in the given mode, makes that mode
// active and selects the new chat. The returned copy reflects the chat as
// created.
func (s *ChatStore) CreateChat(mode model.Mode) model.Chat {
	s.mu.Lock()
	chat := model.NewChat(model.NormalizeMode(mode))
	s.chats = append(s.chats, chat)
	s.mode = chat.Mode
	s.activeID = chat.ID
	out := *chat.Clone()
	s.notifyLocked()
	return out
}

// SelectChat makes the chat active. Selecting a chat from a mode other
// than the active one, or an unknown id, is a no-op.
func (s *ChatStore) SelectChat(id string) {
	s.mu.Lock()
	chat := s.findLocked(id)
	if chat == nil || chat.Mode != s.mode {
		s.mu.Unlock()
		return
	}
	s.activeID = chat.ID
	s.notifyLocked()
}

// DeleteChat removes the chat. If it was active, the most recently created
// chat remaining in the active mode becomes active, or none when the mode
// is empty. Deleting an unknown id returns ErrChatNotFound.
func (s *ChatStore) DeleteChat(id string) error {
	s.mu.Lock()
	idx := -1
	for i, c := range s.chats {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrChatNotFound
	}

	s.chats = append(s.chats[:idx], s.chats[idx+1:]...)
	if s.pendingClear == id {
		s.pendingClear = ""
	}
	if s.activeID == id {
		s.activeID = s.mostRecentIDLocked(s.mode)
	}
	s.notifyLocked()
	return nil
}

// AppendMessage appends a message to the chat's transcript. Messages are
// append-only; there is no edit or remove. The first user message on an
// untitled empty chat also sets the title.
func (s *ChatStore) AppendMessage(chatID string, msg model.Message) error {
	s.mu.Lock()
	chat := s.findLocked(chatID)
	if chat == nil {
		s.mu.Unlock()
		return ErrChatNotFound
	}
	chat.Append(msg)
	s.notifyLocked()
	return nil
}

// SwitchMode changes the active mode and re-derives the active chat: the
// most recently created chat in the new mode, or none.
func (s *ChatStore) SwitchMode(mode model.Mode) {
	s.mu.Lock()
	mode = model.NormalizeMode(mode)
	if mode == s.mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.activeID = s.mostRecentIDLocked(mode)
	s.pendingClear = ""
	s.notifyLocked()
}

// Restore replaces the store's contents with a loaded snapshot and applies
// the active-chat restoration rule: keep lastChatID if it still exists
// under the restored mode, otherwise the most recent chat in that mode,
// otherwise none. The hook is not invoked; restoring is not a user edit.
func (s *ChatStore) Restore(chats []*model.Chat, mode model.Mode, lastChatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = make([]*model.Chat, 0, len(chats))
	for _, c := range chats {
		s.chats = append(s.chats, c.Clone())
	}
	s.mode = model.NormalizeMode(mode)
	s.pendingClear = ""

	if c := s.findLocked(lastChatID); c != nil && c.Mode == s.mode {
		s.activeID = c.ID
	} else {
		s.activeID = s.mostRecentIDLocked(s.mode)
	}
}

// =============================================================================
// TWO-STEP CLEAR
// =============================================================================

// RequestClear arms the clear confirmation for the chat. Requesting on an
// unknown chat or one with no messages is a no-op. No state is destroyed
// until ConfirmClear.
func (s *ChatStore) RequestClear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.findLocked(id)
	if chat == nil || chat.IsEmpty() {
		return
	}
	s.pendingClear = id
}

// PendingClear returns the id of the chat awaiting clear confirmation,
// or "" when none is armed.
func (s *ChatStore) PendingClear() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingClear
}

// ConfirmClear empties the armed chat's transcript in place. The chat
// keeps its identity, title, mode and creation time. If the cleared chat
// was active, the selection is dropped so the surface returns to its
// empty state.
func (s *ChatStore) ConfirmClear() {
	s.mu.Lock()
	id := s.pendingClear
	s.pendingClear = ""
	chat := s.findLocked(id)
	if chat == nil {
		s.mu.Unlock()
		return
	}
	chat.Clear()
	if s.activeID == id {
		s.activeID = ""
	}
	s.notifyLocked()
}

// CancelClear disarms a pending clear without touching any chat.
func (s *ChatStore) CancelClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingClear = ""
}

// =============================================================================
// VIEWS
// =============================================================================

// Chats returns deep copies of every chat, newest-first.
func (s *ChatStore) Chats() []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ChatsForMode returns deep copies of the mode's chats, newest-first.
func (s *ChatStore) ChatsForMode(mode model.Mode) []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.sortedLocked()
	out := make([]model.Chat, 0, len(sorted))
	for _, c := range sorted {
		if c.Mode == mode {
			out = append(out, *c.Clone())
		}
	}
	return out
}

// Chat returns a deep copy of the chat, or false when the id is unknown.
func (s *ChatStore) Chat(id string) (model.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findLocked(id)
	if c == nil {
		return model.Chat{}, false
	}
	return *c.Clone(), true
}

// ActiveChat returns a deep copy of the active chat, or false when no
// chat is selected.
func (s *ChatStore) ActiveChat() (model.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findLocked(s.activeID)
	if c == nil {
		return model.Chat{}, false
	}
	return *c.Clone(), true
}

// ActiveChatID returns the active chat id, or "" when none is selected.
func (s *ChatStore) ActiveChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveMode returns the currently active mode.
func (s *ChatStore) ActiveMode() model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Len returns the number of chats across all modes.
func (s *ChatStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}

// =============================================================================
// INTERNAL
// =============================================================================

// findLocked returns the chat with the given id. Caller holds the lock.
func (s *ChatStore) findLocked(id string) *model.Chat {
	if id == "" {
		return nil
	}
	for _, c := range s.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// mostRecentIDLocked returns the newest chat id in the mode, or "".
func (s *ChatStore) mostRecentIDLocked(mode model.Mode) string {
	for _, c := range s.sortedLocked() {
		if c.Mode == mode {
			return c.ID
		}
	}
	return ""
}

// sortedLocked returns the chats newest-first without copying messages.
func (s *ChatStore) sortedLocked() []*model.Chat {
	sorted := make([]*model.Chat, len(s.chats))
	copy(sorted, s.chats)
	model.SortChats(sorted)
	return sorted
}

// snapshotLocked deep-copies every chat, newest-first.
func (s *ChatStore) snapshotLocked() []model.Chat {
	sorted := s.sortedLocked()
	out := make([]model.Chat, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, *c.Clone())
	}
	return out
}

// notifyLocked snapshots state, releases the lock and runs the hook.
// Callbacks never run under the store lock.
func (s *ChatStore) notifyLocked() {
	fn := s.onChange
	var snapshot []model.Chat
	if fn != nil {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
