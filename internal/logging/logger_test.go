package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	require.NoError(t, Initialize(""))
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitializeLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	require.NoError(t, Initialize(""))
	defer SetLogger(nil)

	assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
}

func TestInitializeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progressview.log")

	require.NoError(t, InitializeWithOptions(Options{Level: "debug", OutputPath: path}))
	defer SetLogger(nil)

	LogValueChange("increment", 1, 2)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Progress changed")
	assert.NotContains(t, string(data), "\x1b[", "file output must not be colourised")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestDomainHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogValueChange("text", 3, 7)
	LogRejected("set_value", -1, errors.New("invalid value"))
	LogRepeat(1, "press")
	LogParse("abc", 7, "parse_failure")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "Progress changed", entries[0].Message)
	assert.Equal(t, int64(7), entries[0].ContextMap()["to"])
	assert.Equal(t, "set_value", entries[1].ContextMap()["op"])
	assert.Equal(t, "press", entries[2].ContextMap()["event"])
	assert.Equal(t, "parse_failure", entries[3].ContextMap()["outcome"])
}
