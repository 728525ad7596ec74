package repeat

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/progressview/internal/logging"
	"github.com/muurk/progressview/internal/schedule"
)

// Direction is the sign of the steps a handler issues.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// State is the handler's position in its press lifecycle.
type State int

const (
	Idle      State = iota // No press in progress
	Pressed                // First step issued, waiting for InitialDelay
	Repeating              // Issuing repeated steps
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Repeating:
		return "repeating"
	default:
		return "idle"
	}
}

// Target receives the steps. *stepper.Controller satisfies it.
type Target interface {
	Increment() bool
	Decrement() bool
	StepBy(n int) bool
	CanIncrement() bool
	CanDecrement() bool
}

// Config controls repeat timing and acceleration.
type Config struct {
	// InitialDelay is how long a press is held before repeating starts
	InitialDelay time.Duration
	// Interval is the first gap between repeated steps
	Interval time.Duration
	// MinInterval is the floor the gap accelerates down to
	MinInterval time.Duration
	// Acceleration multiplies the gap after every repeated step
	Acceleration float64
	// FastAfter and FasterAfter are hold durations after which each step
	// moves by FastDelta and FasterDelta instead of one
	FastAfter   time.Duration
	FasterAfter time.Duration
	FastDelta   int
	FasterDelta int
}

// DefaultConfig returns the standard stepper cadence.
func DefaultConfig() Config {
	return Config{
		InitialDelay: 500 * time.Millisecond,
		Interval:     100 * time.Millisecond,
		MinInterval:  30 * time.Millisecond,
		Acceleration: 0.85,
		FastAfter:    2 * time.Second,
		FasterAfter:  4 * time.Second,
		FastDelta:    5,
		FasterDelta:  10,
	}
}

// DeltaFor returns the step size for a press held for held.
func (c Config) DeltaFor(held time.Duration) int {
	switch {
	case c.FasterAfter > 0 && held >= c.FasterAfter && c.FasterDelta > 0:
		return c.FasterDelta
	case c.FastAfter > 0 && held >= c.FastAfter && c.FastDelta > 0:
		return c.FastDelta
	default:
		return 1
	}
}

// next returns the gap that follows current.
func (c Config) next(current time.Duration) time.Duration {
	if c.Acceleration <= 0 || c.Acceleration >= 1 {
		return current
	}
	d := time.Duration(math.Round(float64(current) * c.Acceleration))
	if d < c.MinInterval {
		return c.MinInterval
	}
	return d
}

// Handler turns one press into a stream of steps: one immediately, then
// repeated steps after InitialDelay until Release or Cancel.
//
// Press, Release and Cancel must be called on the owner goroutine. Timer
// callbacks are posted back to it, and a posted tick from an earlier press
// is dropped when it arrives.
type Handler struct {
	dir    Direction
	target Target
	cfg    Config
	sched  schedule.Scheduler
	poster schedule.Poster

	state    State
	gen      uint64
	timer    schedule.Timer
	held     time.Duration
	interval time.Duration
	pending  time.Duration
	closed   bool
}

// New creates a handler stepping target in dir.
func New(dir Direction, target Target, cfg Config, sched schedule.Scheduler, poster schedule.Poster) *Handler {
	return &Handler{
		dir:    dir,
		target: target,
		cfg:    cfg,
		sched:  sched,
		poster: poster,
	}
}

// State returns the current lifecycle state.
func (h *Handler) State() State {
	return h.state
}

// Direction returns the direction the handler steps in.
func (h *Handler) Direction() Direction {
	return h.dir
}

// Held returns how long the current press has been held, as measured by
// the ticks that have fired.
func (h *Handler) Held() time.Duration {
	return h.held
}

// Press starts a press. It issues one step and reports true, or does
// nothing and reports false when a press is already active or the
// direction is disabled.
func (h *Handler) Press() bool {
	if h.closed || h.state != Idle || !h.enabled() {
		return false
	}

	h.gen++
	h.state = Pressed
	h.held = 0
	h.interval = h.cfg.Interval
	logging.LogRepeat(int(h.dir), "press")

	h.step(1)
	if h.state == Idle {
		// the step reached a boundary and the view cancelled us
		return true
	}
	if !h.enabled() {
		h.stop("boundary")
		return true
	}

	h.schedule(h.cfg.InitialDelay)
	return true
}

// Release ends the press.
func (h *Handler) Release() {
	h.stop("release")
}

// Cancel ends the press without a release, e.g. when the button is disabled.
func (h *Handler) Cancel() {
	h.stop("cancel")
}

// Close cancels any press and ignores all later presses.
func (h *Handler) Close() {
	h.stop("close")
	h.closed = true
}

func (h *Handler) stop(reason string) {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if h.state == Idle {
		return
	}
	h.state = Idle
	h.gen++
	logging.LogRepeat(int(h.dir), reason, zap.Duration("held", h.held))
}

func (h *Handler) schedule(d time.Duration) {
	gen := h.gen
	h.pending = d
	h.timer = h.sched.AfterFunc(d, func() {
		h.poster.Post(func() { h.tick(gen) })
	})
}

// tick runs on the owner goroutine.
func (h *Handler) tick(gen uint64) {
	if gen != h.gen || h.state == Idle {
		return
	}

	h.timer = nil
	h.state = Repeating
	h.held += h.pending

	delta := h.cfg.DeltaFor(h.held)
	h.step(delta)
	if h.state == Idle {
		return
	}
	if !h.enabled() {
		h.stop("boundary")
		return
	}

	if h.held > h.cfg.InitialDelay {
		h.interval = h.cfg.next(h.interval)
	}
	h.schedule(h.interval)
}

func (h *Handler) step(delta int) {
	if delta == 1 {
		if h.dir == Up {
			h.target.Increment()
		} else {
			h.target.Decrement()
		}
		return
	}
	h.target.StepBy(int(h.dir) * delta)
}

func (h *Handler) enabled() bool {
	if h.dir == Up {
		return h.target.CanIncrement()
	}
	return h.target.CanDecrement()
}
