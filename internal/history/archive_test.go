// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/genailakes/workspace-tui/internal/model"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestRecordAndSearch(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	chat := model.NewChat(model.ModeAssistant)
	chat.Append(model.NewUserMessage("plan the sprint Review", chat.Mode))
	a.Record(*chat, chat.Messages[0])

	other := model.NewChat(model.ModeSearch)
	other.Append(model.NewUserMessage("sprint velocity charts", other.Mode))
	a.Record(*other, other.Messages[0])

	t.Run("all modes", func(t *testing.T) {
		entries, err := a.Search(ctx, "sprint", "", 0)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
	})

	t.Run("mode scoped", func(t *testing.T) {
		entries, err := a.Search(ctx, "sprint", model.ModeSearch, 0)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].ChatID != other.ID {
			t.Errorf("ChatID = %q, want %q", entries[0].ChatID, other.ID)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		entries, err := a.Search(ctx, "review", "", 0)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
	})
}

func TestArchiveSurvivesChatLifecycle(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	chat := model.NewChat(model.ModeAgent)
	msg := model.NewUserMessage("remember the milk", chat.Mode)
	chat.Append(msg)
	a.Record(*chat, msg)

	// The in-memory chat is cleared and dropped; the archive keeps the row.
	chat.Clear()

	n, err := a.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	chat := model.NewChat(model.ModeAssistant)
	literal := model.NewUserMessage("discount is 100% off", chat.Mode)
	chat.Append(literal)
	a.Record(*chat, literal)

	plain := model.NewUserMessage("discount is large", chat.Mode)
	a.Record(*chat, plain)

	entries, err := a.Search(ctx, "100%", "", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %% must match literally", len(entries))
	}
}
