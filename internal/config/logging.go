package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger in production and a text logger otherwise,
// and installs it as the slog default.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	var logger *slog.Logger
	if c.IsProduction() {
		logger = slog.New(slog.NewJSONHandler(w, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)
	return logger
}
