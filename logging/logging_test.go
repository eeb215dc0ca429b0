package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	vs := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for i, v := range vs {
		if got := Level(v.name); got != v.want {
			t.Errorf("[%d] %q got=%v want=%v", i, v.name, got, v.want)
		}
	}
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(Config{Level: "debug", Format: "json"}, &buf)
	log.Debug("step", "tag", "SIMPLIFY_ARITHMETIC")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "step", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "SIMPLIFY_ARITHMETIC", rec["tag"])
}

func TestNewWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(Config{Level: "warn"}, &buf)
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown", "n", 3)
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "n=3")
}
