// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/store"
	"github.com/genailakes/workspace-tui/internal/ui/components"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New(Options{
		Store:  store.New(),
		Client: api.New("http://localhost:1", nil),
		Theme:  styles.NewTheme("dark"),
		KeyMap: DefaultKeyMap(),
	})
}

func TestCancelManagerSupersedesPrevious(t *testing.T) {
	cm := newCancelManager()

	first := false
	cm.track("chat-1", func() { first = true })

	second := false
	cm.track("chat-1", func() { second = true })

	if !first {
		t.Error("tracking a new request should cancel the previous one for the same chat")
	}
	if second {
		t.Error("the new request should still be live")
	}
	if !cm.busy("chat-1") {
		t.Error("chat should report busy while a request is tracked")
	}
}

func TestCancelManagerIsolatesChats(t *testing.T) {
	cm := newCancelManager()

	other := false
	cm.track("chat-a", func() { other = true })
	cm.track("chat-b", func() {})

	cm.cancel("chat-b")
	if other {
		t.Error("cancelling one chat must not touch another chat's request")
	}
	if !cm.busy("chat-a") {
		t.Error("chat-a should still be busy")
	}
	if cm.busy("chat-b") {
		t.Error("chat-b should be idle after cancel")
	}
}

func TestCancelManagerDone(t *testing.T) {
	cm := newCancelManager()

	released := false
	cm.track("chat-1", func() { released = true })
	cm.done("chat-1")

	if !released {
		t.Error("done should release the context")
	}
	if cm.busy("chat-1") {
		t.Error("done should clear the busy flag")
	}

	// Calling again is harmless.
	cm.done("chat-1")
	cm.cancel("chat-1")
}

func TestCancelManagerCancelAll(t *testing.T) {
	cm := newCancelManager()

	n := 0
	cm.track("a", func() { n++ })
	cm.track("b", func() { n++ })
	cm.track("c", func() { n++ })

	cm.cancelAll()
	if n != 3 {
		t.Errorf("cancelAll released %d of 3 requests", n)
	}
	for _, id := range []string{"a", "b", "c"} {
		if cm.busy(id) {
			t.Errorf("chat %q still busy after cancelAll", id)
		}
	}
}

func TestModeSwitchResetsInputAndToast(t *testing.T) {
	m := newTestModel(t)
	m.store.CreateChat(model.ModeAssistant)

	m.input.SetValue("half-typed message")
	m.toast.Show("stale notice", components.ToastStatus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.store.ActiveMode(); got != model.ModeSearch {
		t.Errorf("ActiveMode() = %q after tab, want %q", got, model.ModeSearch)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("unsent input survived mode switch: %q", got)
	}
	if m.toast.Visible() {
		t.Error("surfaced error survived mode switch")
	}
}

func TestQueryFailureSurfacesToast(t *testing.T) {
	m := newTestModel(t)
	c := m.store.CreateChat(model.ModeAssistant)

	_, cmd := m.Update(QueryResultMsg{
		ChatID: c.ID,
		Mode:   model.ModeAssistant,
		Err:    &api.APIError{Status: 500, Message: "model overloaded"},
	})

	got, ok := m.store.Chat(c.ID)
	if !ok || len(got.Messages) != 1 {
		t.Fatalf("expected one transcript message, got %d", len(got.Messages))
	}
	if !got.Messages[0].IsError {
		t.Error("transcript message should carry the error flag")
	}
	if !m.toast.Visible() {
		t.Error("failure should surface a transient error banner")
	}
	if !strings.Contains(m.toast.Text, "model overloaded") {
		t.Errorf("banner text = %q, want the failure reason", m.toast.Text)
	}
	if cmd == nil {
		t.Error("banner should come with an expiry command")
	}
}

func TestCancelledQueryStaysQuiet(t *testing.T) {
	m := newTestModel(t)
	c := m.store.CreateChat(model.ModeSearch)

	m.Update(QueryResultMsg{ChatID: c.ID, Mode: model.ModeSearch, Err: context.Canceled})

	got, _ := m.store.Chat(c.ID)
	if len(got.Messages) != 0 {
		t.Errorf("superseded request should leave no transcript trace, got %d messages", len(got.Messages))
	}
	if m.toast.Visible() {
		t.Error("superseded request should not surface a banner")
	}
}

func TestPersistFailureSurfacesToast(t *testing.T) {
	m := newTestModel(t)

	m.Update(PersistFailedMsg{Err: errors.New("disk full")})

	if !m.toast.Visible() {
		t.Error("a failed durable write must be surfaced to the user")
	}
	if !strings.Contains(m.toast.Text, "disk full") {
		t.Errorf("banner text = %q, want the save failure reason", m.toast.Text)
	}
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "backend message",
			err:  &api.APIError{Status: 500, Message: "model overloaded"},
			want: "model overloaded",
		},
		{
			name: "backend without message",
			err:  &api.APIError{Status: 502},
			want: "HTTP 502",
		},
		{
			name: "wrapped backend error",
			err:  errors.Join(errors.New("request failed"), &api.APIError{Status: 404, Message: "not found"}),
			want: "not found",
		},
		{
			name: "timeout",
			err:  context.DeadlineExceeded,
			want: "request timed out",
		},
		{
			name: "transport",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorReason(tt.err); got != tt.want {
				t.Errorf("errorReason() = %q, want %q", got, tt.want)
			}
		})
	}
}
