package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
	}{
		{"debug", DebugLevel},
		{"WARN", WarnLevel},
		{" error ", ErrorLevel},
		{"info", InfoLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestInitJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, JSONOutput: true, Output: &buf})

	logger := WithComponent("dispatcher")
	logger.Info().Str("kind", "pod").Msg("fetched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatcher", entry["component"])
	assert.Equal(t, "pod", entry["kind"])
	assert.Equal(t, "fetched", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, JSONOutput: true, Output: &buf})
	defer Init(Config{Level: InfoLevel, JSONOutput: true, Output: &bytes.Buffer{}})

	Info("dropped")
	assert.Zero(t, buf.Len())

	Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInitConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})
	defer Init(Config{Level: InfoLevel, JSONOutput: true, Output: &bytes.Buffer{}})

	logger := WithView("pods")
	logger.Info().Msg("mounted")

	assert.Contains(t, buf.String(), "mounted")
	assert.Contains(t, buf.String(), "pods")
	assert.False(t, json.Valid(buf.Bytes()))
}
