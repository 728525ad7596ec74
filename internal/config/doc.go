// Package config manages progressview's files on disk.
//
// Two YAML files live in the user configuration directory:
//
//   - config.yaml: widget attributes (initial maximum, label visibility) and
//     the long-press and debounce timing
//   - state.yaml: the saved {progress, max} pair, restored on the next run
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/progressview or $HOME/.config/progressview
//   - macOS: $HOME/.config/progressview
//   - Windows: %LOCALAPPDATA%\progressview
//
// # Usage Example
//
//	store, err := config.DefaultStore()
//	if err != nil {
//	    return err
//	}
//	settings, err := store.LoadSettings()
//	if err != nil {
//	    return err
//	}
//	if state, ok, err := store.LoadState(); err == nil && ok {
//	    _ = ctrl.Restore(state)
//	}
//
// Writes go to a temporary file that is renamed into place, so a crash never
// leaves a half-written file behind.
package config
