// Package logging builds the slog loggers used by the step programs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level and format of a logger.
type Config struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// New returns a logger writing to os.Stderr.
func New(conf Config) *slog.Logger {
	return NewWriter(conf, os.Stderr)
}

// NewWriter returns a logger writing to w. Format "json" selects JSON
// records; anything else is text.
func NewWriter(conf Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: conf.AddSource,
		Level:     Level(conf.Level),
	}
	if strings.EqualFold(conf.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Level maps a level name to its slog.Level. Unknown names are Info.
func Level(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
