// Package logger builds the structured logger shared by the repository layers.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/keshon/svcs/internal/config"
)

// New creates a text slog logger writing to w at the given level.
// verbose forces debug output regardless of level.
func New(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	lvl := slog.LevelDebug
	if !verbose {
		var err error
		if lvl, err = config.ParseLevel(level); err != nil {
			return nil, err
		}
	}
	if w == nil {
		w = os.Stderr
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("app", "svcs")), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
