package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/muurk/progressview/internal/stepper"
)

const (
	appName    = "progressview"
	configFile = "config.yaml"
	stateFile  = "state.yaml"
	logFile    = "progressview.log"
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/progressview or $HOME/.config/progressview
//   - macOS: $HOME/.config/progressview (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\progressview
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// Store reads and writes the settings and saved state files in one directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns a Store rooted at GetConfigDir.
func DefaultStore() (*Store, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// ConfigPath returns the full path to the configuration file.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.dir, configFile)
}

// StatePath returns the full path to the saved state file.
func (s *Store) StatePath() string {
	return filepath.Join(s.dir, stateFile)
}

// LogPath returns the default log file path for interactive runs.
func (s *Store) LogPath() string {
	return filepath.Join(s.dir, logFile)
}

// EnsureDir creates the directory with user-only permissions if needed.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// LoadSettings loads the settings file. A missing file yields defaults.
func (s *Store) LoadSettings() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := NewSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", s.ConfigPath(), err)
	}
	return settings, nil
}

// SaveSettings writes the settings file atomically.
func (s *Store) SaveSettings(settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# progressview configuration
#
# Location: ` + s.ConfigPath() + `

`)
	return s.writeAtomic(s.ConfigPath(), append(header, data...))
}

// LoadState reads the saved progress. ok is false when nothing was saved.
func (s *Store) LoadState() (state stepper.SavedState, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.StatePath())
	if errors.Is(err, os.ErrNotExist) {
		return stepper.SavedState{}, false, nil
	}
	if err != nil {
		return stepper.SavedState{}, false, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := yaml.Unmarshal(data, &state); err != nil {
		return stepper.SavedState{}, false, fmt.Errorf("failed to parse state file: %w", err)
	}
	return state, true, nil
}

// SaveState writes the progress and maximum atomically.
func (s *Store) SaveState(state stepper.SavedState) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return s.writeAtomic(s.StatePath(), data)
}

// ClearState removes the saved state. Missing state is not an error.
func (s *Store) ClearState() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.StatePath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.EnsureDir(); err != nil {
		return err
	}

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}
	return nil
}
