// Package repeat implements long-press auto-repeat for stepper buttons.
//
// A Handler moves Idle -> Pressed -> Repeating -> Idle. Press issues one
// step straight away, which keeps single taps precise. If the press is still
// held after InitialDelay the handler starts repeating, shortening the gap
// between steps on every tick and switching to larger jumps (via StepBy)
// once the press has been held for FastAfter and FasterAfter.
//
// Timing runs on timer goroutines from a schedule.Scheduler; each tick is
// handed to the owner goroutine through a schedule.Poster before it touches
// the target. Release and Cancel bump a generation counter, so a tick that
// was already posted when the press ended is discarded on arrival.
package repeat
