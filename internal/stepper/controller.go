package stepper

import (
	"strconv"

	"github.com/muurk/progressview/internal/logging"
)

// View receives every visual change the controller makes. Implementations
// own the actual widgets; the controller never builds or lays them out.
type View interface {
	ShowValue(text string)
	ShowMaximum(text string)
	SetMaximumVisible(visible bool)
	SetDecrementEnabled(enabled bool)
	SetIncrementEnabled(enabled bool)
}

// Listener is told the new progress after every successful change.
type Listener func(progress int)

// Controller owns the progress value and its optional maximum.
//
// A Controller is not safe for concurrent use. All calls must come from the
// goroutine that owns the view, timers hand their work over with a Poster.
type Controller struct {
	view     View
	listener Listener

	progress int
	max      int
	hasMax   bool
	showMax  bool

	// source tags the next committed change for logging
	source string
}

// Option configures a Controller at construction.
type Option func(*Controller) error

// WithMaximum sets an initial maximum.
func WithMaximum(max int) Option {
	return func(c *Controller) error {
		return c.SetMaximum(max)
	}
}

// WithShowMaximum sets the initial visibility of the maximum label.
func WithShowMaximum(show bool) Option {
	return func(c *Controller) error {
		c.SetShowMaximum(show)
		return nil
	}
}

// WithListener registers the change listener before the initial value is set.
func WithListener(l Listener) Option {
	return func(c *Controller) error {
		c.listener = l
		return nil
	}
}

// New creates a controller bound to view, applies opts, and sets progress to 0.
// A nil view is replaced by one that discards everything.
func New(view View, opts ...Option) (*Controller, error) {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{view: view}
	c.view.SetMaximumVisible(false)

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.SetValue(0); err != nil {
		return nil, err
	}
	return c, nil
}

// SetListener replaces the change listener. Nil removes it.
func (c *Controller) SetListener(l Listener) {
	c.listener = l
}

// Value returns the current progress.
func (c *Controller) Value() int {
	return c.progress
}

// Maximum returns the maximum and whether one is set.
func (c *Controller) Maximum() (int, bool) {
	return c.max, c.hasMax
}

// Allowed reports whether v may be set as progress.
func (c *Controller) Allowed(v int) bool {
	if v < 0 {
		return false
	}
	return !c.hasMax || v <= c.max
}

// Clamp constrains v into the allowed range.
func (c *Controller) Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if c.hasMax && v > c.max {
		return c.max
	}
	return v
}

// CanDecrement reports whether the decrement button is enabled.
func (c *Controller) CanDecrement() bool {
	return c.progress > 0
}

// CanIncrement reports whether the increment button is enabled.
func (c *Controller) CanIncrement() bool {
	return !c.hasMax || c.progress < c.max
}

// SetValue sets the progress. It fails without changing anything if v is
// negative or above the maximum.
func (c *Controller) SetValue(v int) error {
	source := c.source
	c.source = ""
	if source == "" {
		source = "set"
	}

	if !c.Allowed(v) {
		err := &ValueError{Value: v, Maximum: c.max, HasMaximum: c.hasMax}
		logging.LogRejected(source, v, err)
		return err
	}

	from := c.progress
	c.progress = v
	c.view.ShowValue(strconv.Itoa(v))
	c.refreshEnabled()

	logging.LogValueChange(source, from, v)
	if c.listener != nil {
		c.listener(v)
	}
	return nil
}

// Increment adds one. It does nothing at the maximum.
func (c *Controller) Increment() bool {
	if !c.CanIncrement() {
		return false
	}
	c.source = "increment"
	return c.SetValue(c.progress+1) == nil
}

// Decrement subtracts one. It does nothing at zero.
func (c *Controller) Decrement() bool {
	if !c.CanDecrement() {
		return false
	}
	c.source = "decrement"
	return c.SetValue(c.progress-1) == nil
}

// AddDelta sets progress to Value()+n with the same checks as SetValue.
func (c *Controller) AddDelta(n int) error {
	c.source = "delta"
	return c.SetValue(c.progress + n)
}

// StepBy moves progress by n, stopping at the boundaries. It reports whether
// the value changed.
func (c *Controller) StepBy(n int) bool {
	target := c.Clamp(c.progress + n)
	if target == c.progress {
		return false
	}
	c.source = "repeat"
	return c.SetValue(target) == nil
}

// SetMaximum sets the upper bound. Progress above it is clamped down to it,
// which notifies the listener once.
func (c *Controller) SetMaximum(m int) error {
	if m <= 0 {
		err := &MaximumError{Maximum: m}
		logging.LogRejected("set_maximum", m, err)
		return err
	}

	hadMax := c.hasMax
	c.max = m
	c.hasMax = true
	c.view.ShowMaximum("/ " + strconv.Itoa(m))
	if !hadMax {
		c.SetShowMaximum(true)
	}

	if c.progress > m {
		c.source = "maximum"
		return c.SetValue(m)
	}
	c.refreshEnabled()
	return nil
}

// ClearMaximum removes the upper bound and hides its label.
func (c *Controller) ClearMaximum() {
	c.max = 0
	c.hasMax = false
	c.view.ShowMaximum("")
	c.SetShowMaximum(false)
	c.refreshEnabled()
}

// SetShowMaximum toggles the maximum label.
func (c *Controller) SetShowMaximum(show bool) {
	c.showMax = show
	c.view.SetMaximumVisible(show)
}

// ShowMaximum reports whether the maximum label is visible.
func (c *Controller) ShowMaximum() bool {
	return c.showMax
}

// SetFromText tags the next SetValue as coming from the text field.
func (c *Controller) SetFromText(v int) error {
	c.source = "text"
	return c.SetValue(v)
}

func (c *Controller) refreshEnabled() {
	c.view.SetDecrementEnabled(c.CanDecrement())
	c.view.SetIncrementEnabled(c.CanIncrement())
}

type nopView struct{}

func (nopView) ShowValue(string)         {}
func (nopView) ShowMaximum(string)       {}
func (nopView) SetMaximumVisible(bool)   {}
func (nopView) SetDecrementEnabled(bool) {}
func (nopView) SetIncrementEnabled(bool) {}
