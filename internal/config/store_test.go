package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/progressview/internal/stepper"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(configDir, "progressview"), configDir)

	switch runtime.GOOS {
	case "windows":
		assert.Contains(t, configDir, "Local")
	case "darwin":
		assert.Contains(t, configDir, ".config")
	default:
		assert.Equal(t, filepath.Join("/tmp/xdg", "progressview"), configDir)
	}
}

func TestLoadSettingsMissingFileGivesDefaults(t *testing.T) {
	store := NewStore(t.TempDir())

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, settings.Version)
	assert.True(t, settings.ShowMax())

	_, ok := settings.InitialMax()
	assert.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, settings.DebounceDelay())
	assert.Equal(t, 500*time.Millisecond, settings.RepeatConfig().InitialDelay)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested"))

	settings := NewSettings()
	settings.Widget.InitialMax = 12
	settings.Widget.ShowMax = false
	settings.Timing.Debounce = 250 * time.Millisecond
	require.NoError(t, store.SaveSettings(settings))

	data, err := os.ReadFile(store.ConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce: 250ms")
	assert.Contains(t, string(data), "# progressview configuration")

	loaded, err := store.LoadSettings()
	require.NoError(t, err)
	max, ok := loaded.InitialMax()
	assert.True(t, ok)
	assert.Equal(t, 12, max)
	assert.False(t, loaded.ShowMax())
	assert.Equal(t, 250*time.Millisecond, loaded.DebounceDelay())
}

func TestPartialSettingsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	yaml := "version: 1\ntiming:\n  interval: 40ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	settings, err := store.LoadSettings()
	require.NoError(t, err)

	cfg := settings.RepeatConfig()
	assert.Equal(t, 40*time.Millisecond, cfg.Interval)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 0.85, cfg.Acceleration)
	assert.Equal(t, 5, cfg.FastDelta)
	assert.Equal(t, 10, cfg.FasterDelta)
	assert.True(t, settings.ShowMax())
}

func TestStepSizesFromSettings(t *testing.T) {
	dir := t.TempDir()
	yaml := "version: 1\ntiming:\n  fast_step: 3\n  faster_step: 20\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	settings, err := NewStore(dir).LoadSettings()
	require.NoError(t, err)

	cfg := settings.RepeatConfig()
	assert.Equal(t, 3, cfg.FastDelta)
	assert.Equal(t, 20, cfg.FasterDelta)
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad version":      "version: 2\n",
		"negative max":     "version: 1\nwidget:\n  initial_max: -1\n",
		"bad acceleration": "version: 1\ntiming:\n  acceleration: 1.5\n",
		"negative delay":   "version: 1\ntiming:\n  debounce: -1s\n",
		"negative step":    "version: 1\ntiming:\n  fast_step: -2\n",
		"not yaml":         "version: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

			_, err := NewStore(dir).LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok, err := store.LoadState()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveState(stepper.SavedState{Progress: 4, Max: 8}))

	state, ok, err := store.LoadState()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stepper.SavedState{Progress: 4, Max: 8}, state)

	_, err = os.Stat(store.StatePath() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")
}

func TestStateRestoresIntoController(t *testing.T) {
	store := NewStore(t.TempDir())

	ctrl, err := stepper.New(nil, stepper.WithMaximum(8))
	require.NoError(t, err)
	require.NoError(t, ctrl.SetValue(4))
	require.NoError(t, store.SaveState(ctrl.Save()))

	state, ok, err := store.LoadState()
	require.NoError(t, err)
	require.True(t, ok)

	fresh, err := stepper.New(nil)
	require.NoError(t, err)
	require.NoError(t, fresh.Restore(state))

	assert.Equal(t, 4, fresh.Value())
	max, hasMax := fresh.Maximum()
	assert.True(t, hasMax)
	assert.Equal(t, 8, max)
}

func TestClearState(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.ClearState(), "clearing nothing is fine")
	require.NoError(t, store.SaveState(stepper.SavedState{Progress: 1}))
	require.NoError(t, store.ClearState())

	_, ok, err := store.LoadState()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadStateCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.yaml"), []byte("progress: [oops"), 0600))

	_, _, err := NewStore(dir).LoadState()
	assert.Error(t, err)
}
