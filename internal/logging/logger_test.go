package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONUsesTsKey(t *testing.T) {
	var buf bytes.Buffer
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	New(&buf, "info", "json", loc).Info("export_completed", "format", "csv", "size", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "export_completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "csv", entry["format"])
	assert.NotContains(t, entry, "time")

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(ts, "+07:00"), ts)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json", nil)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "TEXT", time.UTC).Debug("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "ts=")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "k=v")
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := Setup(&buf, "info", "json", time.UTC)
	slog.Info("via_default")

	assert.Same(t, logger, slog.Default())
	assert.Contains(t, buf.String(), "via_default")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
