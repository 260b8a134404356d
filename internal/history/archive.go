// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps a durable archive of every message ever sent.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/genailakes/workspace-tui/internal/model"
)

// schema is the archive table. Rows are never updated or deleted from
// the application: the archive is what survives chat deletion and
// clearing.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id     TEXT NOT NULL,
	chat_title  TEXT NOT NULL,
	mode        TEXT NOT NULL,
	sender      TEXT NOT NULL,
	text        TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id);
CREATE INDEX IF NOT EXISTS idx_messages_mode ON messages(mode, created_at);
`

// Entry is one archived message row.
type Entry struct {
	ChatID    string
	ChatTitle string
	Mode      model.Mode
	Sender    model.Sender
	Text      string
	CreatedAt time.Time
}

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive is an append-only sqlite mirror of the transcript stream.
// Recording is best effort: a failed insert is logged and dropped, the
// session never stalls on the archive.
type Archive struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the archive database at path.
func Open(path string, logger *zap.Logger) (*Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Archive{db: db, logger: logger}, nil
}

// Record appends a message to the archive. Errors are logged, not
// returned; callers fire and forget.
func (a *Archive) Record(chat model.Chat, msg model.Message) {
	_, err := a.db.Exec(
		`INSERT INTO messages (chat_id, chat_title, mode, sender, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		chat.ID, chat.Title, string(chat.Mode), string(msg.Sender), msg.Text,
		msg.Timestamp.UnixMilli(),
	)
	if err != nil {
		a.logger.Warn("archive insert failed",
			zap.String("chat_id", chat.ID),
			zap.Error(err))
	}
}

// Search returns archived entries whose text contains the term,
// case-insensitive, newest first. An empty mode searches all modes.
func (a *Archive) Search(ctx context.Context, term string, mode model.Mode, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT chat_id, chat_title, mode, sender, text, created_at
		FROM messages
		WHERE text LIKE ? ESCAPE '\'`
	args := []any{"%" + escapeLike(term) + "%"}
	if mode != "" {
		query += " AND mode = ?"
		args = append(args, string(mode))
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("archive query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var modeStr, senderStr string
		var createdMilli int64
		if err := rows.Scan(&e.ChatID, &e.ChatTitle, &modeStr, &senderStr, &e.Text, &createdMilli); err != nil {
			return nil, fmt.Errorf("archive scan failed: %w", err)
		}
		e.Mode = model.Mode(modeStr)
		e.Sender = model.Sender(senderStr)
		e.CreatedAt = time.UnixMilli(createdMilli)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of archived messages.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// Close releases the database handle.
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
