// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(_ string) slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &discardHandler{}
}

type terminalHandler struct {
	mu    sync.Mutex
	wr    io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.wr, "%s %-5s %s", r.Time.Format(time.RFC3339), r.Level.String(), r.Message)
	for _, attr := range h.attrs {
		fmt.Fprintf(h.wr, " %s=%s", attr.Key, formatValue(attr.Value))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(h.wr, " %s=%s", attr.Key, formatValue(attr.Value))
		return true
	})
	fmt.Fprintln(h.wr)
	return nil
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &terminalHandler{
		wr:    h.wr,
		level: h.level,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// formatValue renders attr values, expanding the numeric types the core
// passes around (big.Int amounts and weights).
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		switch n := v.Any().(type) {
		case *big.Int:
			if n == nil {
				return "<nil>"
			}
			return n.String()
		case *uint256.Int:
			if n == nil {
				return "<nil>"
			}
			return n.Dec()
		case fmt.Stringer:
			return n.String()
		}
	}
	if v.Kind() == slog.KindString {
		return strconv.Quote(v.String())
	}
	return v.String()
}
