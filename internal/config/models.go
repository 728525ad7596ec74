package config

import (
	"fmt"
	"time"

	"github.com/muurk/progressview/internal/debounce"
	"github.com/muurk/progressview/internal/repeat"
)

// CurrentVersion is the settings file format version.
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version int     `yaml:"version"`
	Widget  *Widget `yaml:"widget,omitempty"`
	Timing  *Timing `yaml:"timing,omitempty"`
}

// Widget holds the construction-time attributes of the stepper.
type Widget struct {
	InitialMax int  `yaml:"initial_max,omitempty"` // 0 means no maximum
	ShowMax    bool `yaml:"show_max"`              // Show the "/ max" label
}

// Timing holds the long-press and debounce cadence. Zero fields fall back to
// the defaults.
type Timing struct {
	InitialDelay time.Duration `yaml:"initial_delay,omitempty"` // Hold before repeating starts
	Interval     time.Duration `yaml:"interval,omitempty"`      // First repeat gap
	MinInterval  time.Duration `yaml:"min_interval,omitempty"`  // Fastest repeat gap
	Acceleration float64       `yaml:"acceleration,omitempty"`  // Gap multiplier per repeat, in (0, 1]
	FastAfter    time.Duration `yaml:"fast_after,omitempty"`    // Hold before steps of 5
	FasterAfter  time.Duration `yaml:"faster_after,omitempty"`  // Hold before steps of 10
	FastStep     int           `yaml:"fast_step,omitempty"`     // Step size after fast_after
	FasterStep   int           `yaml:"faster_step,omitempty"`   // Step size after faster_after
	Debounce     time.Duration `yaml:"debounce,omitempty"`      // Quiet period before a typed value applies
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	r := repeat.DefaultConfig()
	return &Settings{
		Version: CurrentVersion,
		Widget: &Widget{
			ShowMax: true,
		},
		Timing: &Timing{
			InitialDelay: r.InitialDelay,
			Interval:     r.Interval,
			MinInterval:  r.MinInterval,
			Acceleration: r.Acceleration,
			FastAfter:    r.FastAfter,
			FasterAfter:  r.FasterAfter,
			FastStep:     r.FastDelta,
			FasterStep:   r.FasterDelta,
			Debounce:     debounce.DefaultDelay,
		},
	}
}

// Validate checks values that would break the widget.
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}
	if s.Widget != nil && s.Widget.InitialMax < 0 {
		return fmt.Errorf("widget.initial_max must not be negative, got %d", s.Widget.InitialMax)
	}
	if t := s.Timing; t != nil {
		if t.Acceleration < 0 || t.Acceleration > 1 {
			return fmt.Errorf("timing.acceleration must be between 0 and 1, got %v", t.Acceleration)
		}
		for name, d := range map[string]time.Duration{
			"initial_delay": t.InitialDelay,
			"interval":      t.Interval,
			"min_interval":  t.MinInterval,
			"fast_after":    t.FastAfter,
			"faster_after":  t.FasterAfter,
			"debounce":      t.Debounce,
		} {
			if d < 0 {
				return fmt.Errorf("timing.%s must not be negative, got %s", name, d)
			}
		}
		if t.FastStep < 0 || t.FasterStep < 0 {
			return fmt.Errorf("timing.fast_step and timing.faster_step must not be negative")
		}
	}
	return nil
}

// RepeatConfig returns the long-press configuration, filling zero fields
// from repeat.DefaultConfig.
func (s *Settings) RepeatConfig() repeat.Config {
	cfg := repeat.DefaultConfig()
	t := s.Timing
	if t == nil {
		return cfg
	}
	if t.InitialDelay > 0 {
		cfg.InitialDelay = t.InitialDelay
	}
	if t.Interval > 0 {
		cfg.Interval = t.Interval
	}
	if t.MinInterval > 0 {
		cfg.MinInterval = t.MinInterval
	}
	if t.Acceleration > 0 {
		cfg.Acceleration = t.Acceleration
	}
	if t.FastAfter > 0 {
		cfg.FastAfter = t.FastAfter
	}
	if t.FasterAfter > 0 {
		cfg.FasterAfter = t.FasterAfter
	}
	if t.FastStep > 0 {
		cfg.FastDelta = t.FastStep
	}
	if t.FasterStep > 0 {
		cfg.FasterDelta = t.FasterStep
	}
	return cfg
}

// DebounceDelay returns the quiet period for typed values.
func (s *Settings) DebounceDelay() time.Duration {
	if s.Timing == nil || s.Timing.Debounce <= 0 {
		return debounce.DefaultDelay
	}
	return s.Timing.Debounce
}

// InitialMax returns the configured maximum and whether one is set.
func (s *Settings) InitialMax() (int, bool) {
	if s.Widget == nil || s.Widget.InitialMax <= 0 {
		return 0, false
	}
	return s.Widget.InitialMax, true
}

// ShowMax reports whether the maximum label starts visible.
func (s *Settings) ShowMax() bool {
	return s.Widget != nil && s.Widget.ShowMax
}
