package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New("warn", "json", &buf).Info("dropped")
	assert.Empty(t, buf.String())

	New("debug", "JSON", &buf).Debug("kept", "questions", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.EqualValues(t, 5, entry["questions"])
}

func TestNew_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	New("info", "", &buf).Info("hello", "mode", "random")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "mode=random")
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir() + "/nested"
	f, err := OpenFile(dir)
	require.NoError(t, err)
	defer f.Close()

	New("info", "text", f).Info("to file")
	require.NoError(t, f.Sync())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
