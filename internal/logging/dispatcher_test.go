package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatcherLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDispatcherLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dl.Debug("handling property edit", "property", "DownRatio", "args", 3)

	entry := dispatcherLogLine(t, &buf)
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "handling property edit", entry["msg"])
	assert.Equal(t, "DownRatio", entry["property"])
	assert.Equal(t, float64(3), entry["args"]) // JSON numbers are float64
}

func TestDispatcherLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	dl.Info("export complete", "asset", "sedan")

	entry := dispatcherLogLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "sedan", entry["asset"])
}

func TestDispatcherLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	dl.Error("property edit failed", "property", "SteeringCurve", "error", "bad curve")

	entry := dispatcherLogLine(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "SteeringCurve", entry["property"])
	assert.Equal(t, "bad curve", entry["error"])
}

func TestDispatcherLogger_NoKeyValues(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dl.Debug("simple message")

	entry := dispatcherLogLine(t, &buf)
	assert.Equal(t, "simple message", entry["msg"])
}
