package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/progressview/internal/config"
	"github.com/muurk/progressview/internal/stepper"
)

func TestApplySet(t *testing.T) {
	store := config.NewStore(t.TempDir())

	state, err := applySet(store, 3, true, 10)
	require.NoError(t, err)
	assert.Equal(t, stepper.SavedState{Progress: 3, Max: 10}, state)

	// the saved maximum is kept when --max is not given
	state, err = applySet(store, 7, false, 0)
	require.NoError(t, err)
	assert.Equal(t, stepper.SavedState{Progress: 7, Max: 10}, state)

	saved, ok, err := store.LoadState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state, saved)
}

func TestApplySetRejectsAboveMaximum(t *testing.T) {
	store := config.NewStore(t.TempDir())
	_, err := applySet(store, 4, true, 8)
	require.NoError(t, err)

	_, err = applySet(store, 9, false, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stepper.ErrInvalidValue))

	var valueErr *stepper.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, 8, valueErr.Maximum)

	// nothing was written
	saved, _, err := store.LoadState()
	require.NoError(t, err)
	assert.Equal(t, stepper.SavedState{Progress: 4, Max: 8}, saved)
}

func TestApplySetClearsMaximum(t *testing.T) {
	store := config.NewStore(t.TempDir())
	_, err := applySet(store, 4, true, 8)
	require.NoError(t, err)

	state, err := applySet(store, 40, true, 0)
	require.NoError(t, err)
	assert.Equal(t, stepper.SavedState{Progress: 40}, state)
	assert.False(t, state.HasMaximum())
}

func TestApplySetInvalidMaximum(t *testing.T) {
	store := config.NewStore(t.TempDir())
	_, err := applySet(store, 1, true, -5)
	assert.True(t, errors.Is(err, stepper.ErrInvalidMaximum))
}

func TestResetCommand(t *testing.T) {
	dir := t.TempDir()
	origDir, origYes := configDir, assumeYes
	defer func() { configDir, assumeYes = origDir, origYes }()
	configDir = dir
	assumeYes = false

	store := config.NewStore(dir)
	require.NoError(t, store.SaveState(stepper.SavedState{Progress: 2, Max: 5}))

	t.Run("declined", func(t *testing.T) {
		var out bytes.Buffer
		resetCmd.SetIn(strings.NewReader("n\n"))
		resetCmd.SetOut(&out)

		require.NoError(t, runReset(resetCmd, nil))
		_, ok, err := store.LoadState()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "Reset cancelled")
	})

	t.Run("confirmed", func(t *testing.T) {
		var out bytes.Buffer
		resetCmd.SetIn(strings.NewReader("yes\n"))
		resetCmd.SetOut(&out)

		require.NoError(t, runReset(resetCmd, nil))
		_, ok, err := store.LoadState()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "Saved progress deleted")
	})
}

func TestStateCommand(t *testing.T) {
	dir := t.TempDir()
	origDir := configDir
	defer func() { configDir = origDir }()
	configDir = dir

	var out bytes.Buffer
	stateCmd.SetOut(&out)
	require.NoError(t, runState(stateCmd, nil))
	assert.Contains(t, out.String(), "No saved progress")

	require.NoError(t, config.NewStore(dir).SaveState(stepper.SavedState{Progress: 6, Max: 9}))

	out.Reset()
	require.NoError(t, runState(stateCmd, nil))
	assert.Contains(t, out.String(), "Saved progress")
	assert.Contains(t, out.String(), "6")
	assert.Contains(t, out.String(), "9")
}

func TestConfigCommandInit(t *testing.T) {
	dir := t.TempDir()
	origDir, origInit := configDir, initConfig
	defer func() { configDir, initConfig = origDir, origInit }()
	configDir = dir
	initConfig = true

	var out bytes.Buffer
	configCmd.SetOut(&out)
	require.NoError(t, runConfig(configCmd, nil))
	assert.Contains(t, out.String(), "Effective settings")
	assert.Contains(t, out.String(), "500ms")

	settings, err := config.NewStore(dir).LoadSettings()
	require.NoError(t, err)
	assert.True(t, settings.ShowMax())

	out.Reset()
	require.NoError(t, runConfig(configCmd, nil))
	assert.Contains(t, out.String(), "already exists")
}

func TestConfigCommandShowsStepSizes(t *testing.T) {
	dir := t.TempDir()
	origDir, origInit := configDir, initConfig
	defer func() { configDir, initConfig = origDir, origInit }()
	configDir = dir
	initConfig = false

	settings := config.NewSettings()
	settings.Timing.FastStep = 3
	settings.Timing.FasterStep = 25
	require.NoError(t, config.NewStore(dir).SaveSettings(settings))

	var out bytes.Buffer
	configCmd.SetOut(&out)
	require.NoError(t, runConfig(configCmd, nil))
	assert.Contains(t, out.String(), "Steps of 3")
	assert.Contains(t, out.String(), "Steps of 25")
	assert.NotContains(t, out.String(), "Steps of 5")
}
