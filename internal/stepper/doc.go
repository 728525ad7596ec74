// Package stepper holds the state of a numeric stepper: a progress value that
// never goes below zero and, when a maximum is set, never above it.
//
// The Controller is the single authority for that value. It writes every
// visible change through a View (field text, maximum label, button enabled
// state) and calls one optional Listener after each successful change,
// whichever path caused it: a button, a long-press repeat, a text field commit
// or a new maximum clamping the value down.
//
// Invalid input is rejected before any state changes:
//
//	c, _ := stepper.New(view, stepper.WithMaximum(10))
//	err := c.SetValue(11)
//	errors.Is(err, stepper.ErrInvalidValue) // true, Value() still 0
//
// Increment and Decrement are silent no-ops at the boundaries.
package stepper
