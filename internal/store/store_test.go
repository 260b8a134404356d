// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"
	"time"

	"github.com/genailakes/workspace-tui/internal/model"
)

func TestCreateChatSelects(t *testing.T) {
	s := New()
	chat := s.CreateChat(model.ModeSearch)

	if s.ActiveChatID() != chat.ID {
		t.Errorf("ActiveChatID = %q, want %q", s.ActiveChatID(), chat.ID)
	}
	if s.ActiveMode() != model.ModeSearch {
		t.Errorf("ActiveMode = %q, want search", s.ActiveMode())
	}
	if chat.Title != "AI Search Chat" {
		t.Errorf("Title = %q", chat.Title)
	}
}

func TestSelectChatCrossModeNoOp(t *testing.T) {
	s := New()
	searchChat := s.CreateChat(model.ModeSearch)
	assistantChat := s.CreateChat(model.ModeAssistant)

	// Active mode is now assistant; a search chat cannot be selected.
	s.SelectChat(searchChat.ID)

	if s.ActiveChatID() != assistantChat.ID {
		t.Errorf("ActiveChatID = %q, want %q", s.ActiveChatID(), assistantChat.ID)
	}

	s.SelectChat("no-such-id")
	if s.ActiveChatID() != assistantChat.ID {
		t.Error("selecting unknown id must not change selection")
	}
}

func TestActiveChatAlwaysInActiveMode(t *testing.T) {
	s := New()
	s.CreateChat(model.ModeAssistant)
	s.CreateChat(model.ModeAgent)
	s.SwitchMode(model.ModeSearch)

	if id := s.ActiveChatID(); id != "" {
		t.Errorf("ActiveChatID = %q, want none in empty mode", id)
	}

	s.SwitchMode(model.ModeAgent)
	active, ok := s.ActiveChat()
	if !ok {
		t.Fatal("expected an active chat in agent mode")
	}
	if active.Mode != model.ModeAgent {
		t.Errorf("active chat mode = %q, want agent", active.Mode)
	}
}

func TestDeleteChatReassignsActive(t *testing.T) {
	s := New()
	older := s.CreateChat(model.ModeAssistant)
	time.Sleep(2 * time.Millisecond)
	newer := s.CreateChat(model.ModeAssistant)

	if err := s.DeleteChat(newer.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if s.ActiveChatID() != older.ID {
		t.Errorf("ActiveChatID = %q, want %q", s.ActiveChatID(), older.ID)
	}

	if err := s.DeleteChat(older.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if s.ActiveChatID() != "" {
		t.Error("expected no selection after last chat deleted")
	}

	if err := s.DeleteChat("gone"); err != ErrChatNotFound {
		t.Errorf("DeleteChat(unknown) = %v, want ErrChatNotFound", err)
	}
}

func TestDeleteInactiveKeepsSelection(t *testing.T) {
	s := New()
	other := s.CreateChat(model.ModeAssistant)
	active := s.CreateChat(model.ModeAssistant)

	if err := s.DeleteChat(other.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if s.ActiveChatID() != active.ID {
		t.Errorf("ActiveChatID = %q, want %q", s.ActiveChatID(), active.ID)
	}
}

func TestAppendMessageTitleOnce(t *testing.T) {
	s := New()
	chat := s.CreateChat(model.ModeAssistant)

	if err := s.AppendMessage(chat.ID, model.NewUserMessage("plan my week", chat.Mode)); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := s.AppendMessage(chat.ID, model.NewUserMessage("something else", chat.Mode)); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	got, _ := s.Chat(chat.ID)
	if got.Title != "plan my week" {
		t.Errorf("Title = %q, want %q", got.Title, "plan my week")
	}
	if len(got.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(got.Messages))
	}

	if err := s.AppendMessage("gone", model.NewUserMessage("x", model.ModeAssistant)); err != ErrChatNotFound {
		t.Errorf("AppendMessage(unknown) = %v, want ErrChatNotFound", err)
	}
}

func TestTwoStepClear(t *testing.T) {
	t.Run("confirm clears and deselects", func(t *testing.T) {
		s := New()
		chat := s.CreateChat(model.ModeAssistant)
		s.AppendMessage(chat.ID, model.NewUserMessage("hello", chat.Mode))

		s.RequestClear(chat.ID)
		if s.PendingClear() != chat.ID {
			t.Fatal("clear not armed")
		}
		s.ConfirmClear()

		got, ok := s.Chat(chat.ID)
		if !ok {
			t.Fatal("chat must survive clearing")
		}
		if len(got.Messages) != 0 {
			t.Error("expected empty transcript")
		}
		if got.Title != "hello" {
			t.Errorf("Title = %q, clearing must not retitle", got.Title)
		}
		if s.ActiveChatID() != "" {
			t.Error("clearing the active chat must drop the selection")
		}
	})

	t.Run("cancel leaves messages", func(t *testing.T) {
		s := New()
		chat := s.CreateChat(model.ModeAssistant)
		s.AppendMessage(chat.ID, model.NewUserMessage("keep me", chat.Mode))

		s.RequestClear(chat.ID)
		s.CancelClear()

		got, _ := s.Chat(chat.ID)
		if len(got.Messages) != 1 {
			t.Error("cancel must not clear")
		}
		if s.PendingClear() != "" {
			t.Error("pending clear must be disarmed")
		}
	})

	t.Run("empty chat cannot be armed", func(t *testing.T) {
		s := New()
		chat := s.CreateChat(model.ModeAssistant)

		s.RequestClear(chat.ID)
		if s.PendingClear() != "" {
			t.Error("empty chat must not arm the confirmation")
		}
	})

	t.Run("clearing inactive chat keeps selection", func(t *testing.T) {
		s := New()
		other := s.CreateChat(model.ModeAssistant)
		s.AppendMessage(other.ID, model.NewUserMessage("old", other.Mode))
		active := s.CreateChat(model.ModeAssistant)

		s.RequestClear(other.ID)
		s.ConfirmClear()

		if s.ActiveChatID() != active.ID {
			t.Error("clearing another chat must not touch the selection")
		}
	})
}

func TestSwitchModeDisarmsClear(t *testing.T) {
	s := New()
	chat := s.CreateChat(model.ModeAssistant)
	s.AppendMessage(chat.ID, model.NewUserMessage("hi", chat.Mode))
	s.RequestClear(chat.ID)

	s.SwitchMode(model.ModeSearch)
	if s.PendingClear() != "" {
		t.Error("mode switch must disarm a pending clear")
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	s := New()
	var calls int
	var last []model.Chat
	s.OnChange(func(snapshot []model.Chat) {
		calls++
		last = snapshot
	})

	chat := s.CreateChat(model.ModeAssistant)
	s.AppendMessage(chat.ID, model.NewUserMessage("hello", chat.Mode))
	s.DeleteChat(chat.ID)

	if calls != 3 {
		t.Errorf("hook fired %d times, want 3", calls)
	}
	if len(last) != 0 {
		t.Errorf("final snapshot has %d chats, want 0", len(last))
	}
}

func TestRestoreActiveChat(t *testing.T) {
	mk := func(id string, mode model.Mode, created time.Time) *model.Chat {
		return &model.Chat{ID: id, Title: "t", Mode: mode, CreatedAt: created}
	}
	base := time.Now()

	tests := []struct {
		name       string
		lastMode   model.Mode
		lastChatID string
		wantActive string
	}{
		{"previous id kept", model.ModeSearch, "s1", "s1"},
		{"missing id falls back to newest in mode", model.ModeSearch, "gone", "s2"},
		{"id from other mode falls back", model.ModeSearch, "a1", "s2"},
		{"empty mode selects none", model.ModeAgent, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			chats := []*model.Chat{
				mk("a1", model.ModeAssistant, base),
				mk("s1", model.ModeSearch, base.Add(-time.Hour)),
				mk("s2", model.ModeSearch, base.Add(time.Hour)),
			}
			s.Restore(chats, tt.lastMode, tt.lastChatID)

			if got := s.ActiveChatID(); got != tt.wantActive {
				t.Errorf("ActiveChatID = %q, want %q", got, tt.wantActive)
			}
			if s.ActiveMode() != tt.lastMode {
				t.Errorf("ActiveMode = %q, want %q", s.ActiveMode(), tt.lastMode)
			}
		})
	}
}

func TestViewsReturnCopies(t *testing.T) {
	s := New()
	chat := s.CreateChat(model.ModeAssistant)
	s.AppendMessage(chat.ID, model.NewUserMessage("original", chat.Mode))

	view, _ := s.Chat(chat.ID)
	view.Messages[0].Text = "mutated"

	again, _ := s.Chat(chat.ID)
	if again.Messages[0].Text != "original" {
		t.Error("view mutation leaked into store state")
	}
}
