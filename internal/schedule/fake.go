package schedule

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// fakeClock is the part of clockwork's fake clock that Fake drives.
type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

// Fake is a manually advanced Scheduler for deterministic tests. Time and
// timer expiry come from a clockwork fake clock. Callbacks fire on the
// goroutine that calls Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	clock  fakeClock
	start  time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	f        *Fake
	timer    clockwork.Timer
	deadline time.Time
	seq      int
	fn       func()
	done     bool
}

// NewFake returns a Fake positioned at time zero.
func NewFake() *Fake {
	clock := clockwork.NewFakeClock()
	return &Fake{clock: clock, start: clock.Now()}
}

// AfterFunc implements Scheduler
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{
		f:        f,
		timer:    f.clock.NewTimer(d),
		deadline: f.clock.Now().Add(d),
		seq:      f.seq,
		fn:       fn,
	}
	f.timers = append(f.timers, t)
	return t
}

// Now returns the elapsed fake time.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clock.Since(f.start)
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, t := range f.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks during the advance.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	end := f.clock.Now().Add(d)
	f.mu.Unlock()

	for {
		t := f.next(end)
		if t == nil {
			break
		}
		t.fn()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gap := end.Sub(f.clock.Now()); gap > 0 {
		f.clock.Advance(gap)
	}
}

// next moves the clock to the earliest due timer and takes it.
func (f *Fake) next(end time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	f.timers = live

	sort.Slice(f.timers, func(i, j int) bool {
		if f.timers[i].deadline.Equal(f.timers[j].deadline) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})

	if len(f.timers) == 0 || f.timers[0].deadline.After(end) {
		return nil
	}
	t := f.timers[0]
	t.done = true
	if gap := t.deadline.Sub(f.clock.Now()); gap > 0 {
		f.clock.Advance(gap)
	}
	// the clockwork timer has expired, drain it
	select {
	case <-t.timer.Chan():
	default:
	}
	return t
}

// Stop implements Timer
func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}
