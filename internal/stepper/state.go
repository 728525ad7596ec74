package stepper

import "fmt"

// SavedState is the persisted part of a controller. Max of zero means no
// maximum is set.
type SavedState struct {
	Progress int `yaml:"progress"`
	Max      int `yaml:"max"`
}

// HasMaximum reports whether the state carries a maximum.
func (s SavedState) HasMaximum() bool {
	return s.Max > 0
}

// Save captures progress and maximum.
func (c *Controller) Save() SavedState {
	s := SavedState{Progress: c.progress}
	if c.hasMax {
		s.Max = c.max
	}
	return s
}

// Restore applies a saved state: maximum first, then progress. A state that
// breaks the value invariants is rejected before anything changes.
func (c *Controller) Restore(s SavedState) error {
	if s.Max < 0 {
		return fmt.Errorf("restore: %w", &MaximumError{Maximum: s.Max})
	}
	if s.Progress < 0 || (s.HasMaximum() && s.Progress > s.Max) {
		return fmt.Errorf("restore: %w", &ValueError{Value: s.Progress, Maximum: s.Max, HasMaximum: s.HasMaximum()})
	}

	if s.HasMaximum() {
		if err := c.SetMaximum(s.Max); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	} else if c.hasMax {
		c.ClearMaximum()
	}

	c.source = "restore"
	if err := c.SetValue(s.Progress); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}
