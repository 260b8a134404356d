// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the file logger for the workspace client.
//
// The terminal belongs to the TUI, so logs go to a JSON file under the
// data directory instead of stdout. The logger is constructed once in
// main and injected; there is no package-level instance.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created under the data directory.
const FileName = "debug.log"

// New creates a JSON file logger at the given level. Unknown levels fall
// back to info rather than failing startup over a typo.
func New(dataDir, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = logLevel
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{filepath.Join(dataDir, FileName)}
	cfg.ErrorOutputPaths = []string{filepath.Join(dataDir, FileName)}

	return cfg.Build()
}
