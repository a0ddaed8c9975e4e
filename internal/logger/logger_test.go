package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "noisy"})
	require.Error(t, err)
}

func TestWithFieldsEmitsStructuredEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"site": "test-co", "confidence": 82}).Info("crop decided")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "test-co", entry["site"])
	require.EqualValues(t, 82, entry["confidence"])
	require.Equal(t, "crop decided", entry["message"])
}

func TestLevelFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Writer: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	require.Zero(t, buf.Len())

	log.Warn("shown")
	require.NotZero(t, buf.Len())
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("noop")
	log.Error(nil, "noop")
	require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}
