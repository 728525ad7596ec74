// Package schedule provides the timer and hand-off primitives used by the
// stepper's background timing.
//
// Timers fire on their own goroutine. Anything they want to change must be
// handed to the owner goroutine through a Poster, which runs each posted
// function to completion before the next one.
package schedule

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Scheduler creates timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster delivers a function to the owner goroutine.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a plain function to the Poster interface.
type PosterFunc func(fn func())

// Post implements Poster
func (f PosterFunc) Post(fn func()) {
	f(fn)
}

// Inline runs posted functions on the calling goroutine. Only safe when the
// caller already is the owner, as in tests driven by Fake.
var Inline Poster = PosterFunc(func(fn func()) { fn() })

// Real schedules callbacks on a clockwork clock. The zero value uses the
// wall clock.
type Real struct {
	Clock clockwork.Clock
}

// AfterFunc implements Scheduler
func (r Real) AfterFunc(d time.Duration, fn func()) Timer {
	clock := r.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return clock.AfterFunc(d, fn)
}
