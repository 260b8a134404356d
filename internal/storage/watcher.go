// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides file-backed persistence for workspace state.
package storage

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// =============================================================================
// CHAT FILE WATCHER
// =============================================================================

// Watcher observes the data directory and reports when the chat file is
// rewritten by another process. Events are debounced: an atomic save
// produces a create+rename burst, and editors fire several writes in a
// row, but the callback runs once per settled change.
//
// The store's own writes also trigger the watcher; callers that reload on
// notify must tolerate reloading state they just wrote.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *zap.Logger

	mu      sync.Mutex
	lastHit time.Time
	armed   bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the store's chat file. onChange runs on
// the watcher goroutine after each settled change.
func NewWatcher(store *Store, debounce time.Duration, onChange func(), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts observing the data directory.
func (w *Watcher) Watch() error {
	// Watch the directory, not the file: atomic renames replace the
	// inode, which breaks a direct file watch.
	if err := w.watcher.Add(w.store.Dir()); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()
	return nil
}

// processEvents records hits on the chat file.
func (w *Watcher) processEvents() {
	target := filepath.Base(w.store.ChatsPath())

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.mu.Lock()
			w.lastHit = time.Now()
			w.armed = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("chat file watcher error", zap.Error(err))
		}
	}
}

// processPending fires the callback once the burst has settled.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			fire := w.armed && time.Since(w.lastHit) >= w.debounce
			if fire {
				w.armed = false
			}
			w.mu.Unlock()

			if fire && w.onChange != nil {
				w.onChange()
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
