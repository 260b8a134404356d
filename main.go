// workspace-tui - A terminal interface for the workspace AI backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/genailakes/workspace-tui/internal/api"
	"github.com/genailakes/workspace-tui/internal/config"
	"github.com/genailakes/workspace-tui/internal/history"
	"github.com/genailakes/workspace-tui/internal/logging"
	"github.com/genailakes/workspace-tui/internal/model"
	"github.com/genailakes/workspace-tui/internal/storage"
	"github.com/genailakes/workspace-tui/internal/store"
	"github.com/genailakes/workspace-tui/internal/ui/chat"
	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "workspace:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	apiURL := flag.String("api-url", "", "backend base URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("workspace-tui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	// ==========================================================================
	// CONFIGURATION
	// ==========================================================================

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	logger, err := logging.New(dataDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("api_url", cfg.API.BaseURL),
		zap.String("data_dir", dataDir))

	// ==========================================================================
	// STATE
	// ==========================================================================

	disk, err := storage.New(dataDir, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	chats, err := disk.LoadChats()
	if err != nil {
		return fmt.Errorf("load chats: %w", err)
	}
	prefs := disk.LoadPrefs()

	chatStore := store.New()
	chatStore.Restore(chats, model.NormalizeMode(prefs.LastMode), prefs.LastChatID)

	var archive *history.Archive
	if cfg.Storage.ArchiveEnabled {
		archive, err = history.Open(filepath.Join(dataDir, "history.db"), logger)
		if err != nil {
			// The archive is a convenience; the app runs without it.
			logger.Warn("message archive unavailable", zap.Error(err))
			archive = nil
		} else {
			defer archive.Close() //nolint:errcheck
		}
	}

	// ==========================================================================
	// BACKEND CLIENT
	// ==========================================================================

	client := api.New(cfg.API.BaseURL, logger).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	// ==========================================================================
	// UI
	// ==========================================================================

	theme := styles.NewTheme(cfg.UI.Theme)
	root := chat.New(chat.Options{
		Store:        chatStore,
		Client:       client,
		Theme:        theme,
		Logger:       logger,
		KeyMap:       chat.DefaultKeyMap(),
		Archive:      archive,
		Debounce:     time.Duration(cfg.UI.SearchDebounceMs) * time.Millisecond,
		QueryTimeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
		SyncNotice:   time.Duration(cfg.UI.SyncNoticeSecs) * time.Second,
	})

	program := tea.NewProgram(root, tea.WithAltScreen())

	// Write-through persistence: every mutation lands on disk before the
	// next keystroke is processed. A failed save reaches the UI as an
	// error toast. The archive sees only messages it has not recorded
	// yet.
	archived := make(map[string]int)
	for _, c := range chatStore.Chats() {
		archived[c.ID] = len(c.Messages)
	}
	chatStore.OnChange(func(snapshot []model.Chat) {
		if err := disk.SaveChats(snapshot); err != nil {
			logger.Error("save chats", zap.Error(err))
			program.Send(chat.PersistFailedMsg{Err: err})
		}
		p := storage.Prefs{
			LastMode:   chatStore.ActiveMode(),
			LastChatID: chatStore.ActiveChatID(),
		}
		if err := disk.SavePrefs(p); err != nil {
			logger.Error("save prefs", zap.Error(err))
			program.Send(chat.PersistFailedMsg{Err: err})
		}
		if archive == nil {
			return
		}
		for i := range snapshot {
			c := &snapshot[i]
			// A cleared chat restarts its message numbering.
			if archived[c.ID] > len(c.Messages) {
				archived[c.ID] = 0
			}
			for j := archived[c.ID]; j < len(c.Messages); j++ {
				archive.Record(*c, c.Messages[j])
			}
			archived[c.ID] = len(c.Messages)
		}
	})

	// Optional: pick up edits made to chats.json by other processes.
	if cfg.Storage.WatchChats {
		watcher, err := storage.NewWatcher(disk, 500*time.Millisecond, func() {
			reloaded, err := disk.LoadChats()
			if err != nil {
				logger.Warn("reload chats", zap.Error(err))
				return
			}
			p := disk.LoadPrefs()
			chatStore.Restore(reloaded, model.NormalizeMode(p.LastMode), p.LastChatID)
			program.Send(chat.StoreReloadedMsg{})
		}, logger)
		if err != nil {
			logger.Warn("chat watcher unavailable", zap.Error(err))
		} else {
			if err := watcher.Watch(); err != nil {
				logger.Warn("chat watcher failed to start", zap.Error(err))
			}
			defer watcher.Close() //nolint:errcheck
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
