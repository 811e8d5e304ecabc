package cli

import (
	"io"
	"log/slog"

	"github.com/computerscienceiscool/llama-cli/internal/config"
)

func newLogger(w io.Writer, settings *config.Settings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: settings.LogLevel}
	if settings.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
