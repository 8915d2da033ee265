// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging for the registry core, built on
// log/slog. Output is discarded unless the embedding process installs a
// handler.
package log

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// Logger is the logging handle used across packages.
type Logger = *slog.Logger

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(DiscardHandler()))
}

// Root returns the process-wide root logger.
func Root() Logger {
	return root.Load()
}

// SetDefault installs the handler backing the root logger and all loggers
// derived from it afterwards.
func SetDefault(h slog.Handler) {
	root.Store(slog.New(h))
}

// WithContext returns a logger carrying the given context attributes.
func WithContext(args ...any) Logger {
	return Root().With(args...)
}

// NewTerminalHandler returns a human-readable handler writing to wr.
func NewTerminalHandler(wr io.Writer, level slog.Level) slog.Handler {
	return &terminalHandler{wr: wr, level: level}
}
