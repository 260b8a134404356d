// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides file-backed persistence for workspace state.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/util"
)

const (
	chatsFile = "chats.json"
	prefsFile = "prefs.json"
)

// =============================================================================
// PREFS TYPE
// =============================================================================

// Prefs records the last active surface so a restart resumes where the
// user left off.
type Prefs struct {
	LastMode   model.Mode `json:"lastMode"`
	LastChatID string     `json:"lastChatID,omitempty"`
}

// =============================================================================
// STORE
// =============================================================================

// Store persists chats and session prefs as JSON files under a data
// directory. Every write is atomic (temp file, fsync, rename) so a crash
// leaves either the old state or the new one, never a torn file.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

// ChatsPath returns the path of the chat collection file.
func (s *Store) ChatsPath() string {
	return filepath.Join(s.dir, chatsFile)
}

func (s *Store) prefsPath() string {
	return filepath.Join(s.dir, prefsFile)
}

// =============================================================================
// CHAT COLLECTION
// =============================================================================

// SaveChats writes the full chat collection. An empty collection removes
// the durable record entirely instead of writing an empty list.
func (s *Store) SaveChats(chats []model.Chat) error {
	path := s.ChatsPath()
	if len(chats) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := json.MarshalIndent(chats, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0644)
}

// LoadChats reads the persisted chat collection. A missing file yields an
// empty collection. An unreadable or unparseable file is discarded and
// logged, never surfaced: local history is not worth blocking startup
// over. Loaded records are normalized so older snapshots missing fields
// still produce valid chats.
func (s *Store) LoadChats() ([]*model.Chat, error) {
	data, err := os.ReadFile(s.ChatsPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raw []model.Chat
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("discarding corrupt chat file",
			zap.String("path", s.ChatsPath()),
			zap.Error(err))
		if rmErr := os.Remove(s.ChatsPath()); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, rmErr
		}
		return nil, nil
	}

	chats := make([]*model.Chat, 0, len(raw))
	for i := range raw {
		c := raw[i]
		if c.ID == "" {
			s.logger.Warn("skipping chat record without id")
			continue
		}
		normalizeChat(&c)
		chats = append(chats, &c)
	}
	return chats, nil
}

// normalizeChat fills fields older snapshots may lack.
func normalizeChat(c *model.Chat) {
	c.Mode = model.NormalizeMode(c.Mode)
	if c.CreatedAt.IsZero() {
		// Epoch, not now: an undated chat must sort as oldest.
		c.CreatedAt = time.Unix(0, 0).UTC()
	}
	if c.Title == "" {
		c.Title = model.DefaultTitle(c.Mode)
	}
	if c.Messages == nil {
		c.Messages = make([]model.Message, 0)
	}
}

// =============================================================================
// PREFS
// =============================================================================

// SavePrefs writes the last-active mode and chat.
func (s *Store) SavePrefs(p Prefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.prefsPath(), data, 0644)
}

// LoadPrefs reads the persisted prefs. Missing or corrupt prefs fall back
// to defaults; the mode is normalized like any other persisted mode.
func (s *Store) LoadPrefs() Prefs {
	defaults := Prefs{LastMode: model.DefaultMode()}

	data, err := os.ReadFile(s.prefsPath())
	if err != nil {
		return defaults
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("discarding corrupt prefs file", zap.Error(err))
		os.Remove(s.prefsPath())
		return defaults
	}

	p.LastMode = model.NormalizeMode(p.LastMode)
	return p
}
