// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/genailakes/workspace-tui/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	chat := model.NewChat(model.ModeSearch)
	chat.Append(model.NewUserMessage("golang generics", chat.Mode))
	reply := model.NewBotMessage("here is what I found", chat.Mode)
	reply.SearchResults = []model.SearchResult{
		{Title: "Go Blog", Snippet: "intro to generics", URL: "https://go.dev/blog", Domain: "go.dev"},
	}
	chat.Append(reply)

	require.NoError(t, s.SaveChats([]model.Chat{*chat}))

	loaded, err := s.LoadChats()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	require.Equal(t, chat.ID, got.ID)
	require.Equal(t, "golang generics", got.Title)
	require.Equal(t, model.ModeSearch, got.Mode)
	require.Len(t, got.Messages, 2)
	require.True(t, got.Messages[1].Sender == model.SenderBot)
	require.Len(t, got.Messages[1].SearchResults, 1)
	require.Equal(t, "go.dev", got.Messages[1].SearchResults[0].Domain)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	chats, err := s.LoadChats()
	require.NoError(t, err)
	require.Empty(t, chats)
}

func TestSaveEmptyRemovesFile(t *testing.T) {
	s := newTestStore(t)

	chat := model.NewChat(model.ModeAssistant)
	require.NoError(t, s.SaveChats([]model.Chat{*chat}))
	_, err := os.Stat(s.ChatsPath())
	require.NoError(t, err)

	require.NoError(t, s.SaveChats(nil))
	_, err = os.Stat(s.ChatsPath())
	require.True(t, os.IsNotExist(err))

	// Removing an already-absent file is fine.
	require.NoError(t, s.SaveChats(nil))
}

func TestLoadDiscardsCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.ChatsPath(), []byte("{not json"), 0644))

	chats, err := s.LoadChats()
	require.NoError(t, err)
	require.Empty(t, chats)

	_, err = os.Stat(s.ChatsPath())
	require.True(t, os.IsNotExist(err), "corrupt file should be removed")
}

func TestLoadNormalizesRecords(t *testing.T) {
	s := newTestStore(t)
	raw := `[
		{"id": "one", "title": "dated", "mode": "search",
		 "messages": [], "createdAt": "2024-03-01T10:00:00Z"},
		{"id": "two", "title": "undated", "mode": "teleport"},
		{"id": "three"},
		{"title": "no id"}
	]`
	require.NoError(t, os.WriteFile(s.ChatsPath(), []byte(raw), 0644))

	chats, err := s.LoadChats()
	require.NoError(t, err)
	require.Len(t, chats, 3, "record without id is dropped")

	byID := map[string]*model.Chat{}
	for _, c := range chats {
		byID[c.ID] = c
	}

	require.Equal(t, model.ModeSearch, byID["one"].Mode)

	// Unknown mode falls back to the default.
	require.Equal(t, model.DefaultMode(), byID["two"].Mode)
	// Missing createdAt becomes the epoch so the chat sorts oldest.
	require.Equal(t, time.Unix(0, 0).UTC(), byID["two"].CreatedAt)
	require.NotNil(t, byID["two"].Messages)

	require.Equal(t, model.DefaultTitle(model.DefaultMode()), byID["three"].Title)
}

func TestPrefsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SavePrefs(Prefs{LastMode: model.ModeAgent, LastChatID: "abc"}))
	p := s.LoadPrefs()
	require.Equal(t, model.ModeAgent, p.LastMode)
	require.Equal(t, "abc", p.LastChatID)
}

func TestPrefsDefaults(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s := newTestStore(t)
		p := s.LoadPrefs()
		require.Equal(t, model.DefaultMode(), p.LastMode)
		require.Empty(t, p.LastChatID)
	})

	t.Run("corrupt file", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "prefs.json"), []byte("oops"), 0644))
		p := s.LoadPrefs()
		require.Equal(t, model.DefaultMode(), p.LastMode)
	})

	t.Run("unknown mode normalized", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "prefs.json"),
			[]byte(`{"lastMode": "voice"}`), 0644))
		p := s.LoadPrefs()
		require.Equal(t, model.DefaultMode(), p.LastMode)
	})
}

func TestWatcherReportsRewrite(t *testing.T) {
	s := newTestStore(t)

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(s, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch())

	chat := model.NewChat(model.ModeAssistant)
	require.NoError(t, s.SaveChats([]model.Chat{*chat}))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the rewrite")
	}
}
