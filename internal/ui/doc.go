// Package ui provides the terminal presentation of progressview.
//
// The centrepiece is Model, a Bubble Tea model that draws the stepper row
//
//	[ − ] 7          / 10 [ + ]
//
// and acts as the stepper.Controller's View. Mouse presses on the buttons
// start a repeat.Handler and releases stop it; keystrokes in the field go
// through a debounce.Parser. Timers from both fire on their own goroutines
// and come back through a Loop, which turns each posted function into a
// message so it runs inside Update like any other event.
//
// The package also carries the "run once and print" components used by the
// non-interactive commands: Header, Result boxes and a Printer, plus the
// Meter bar shown when a maximum is set and a y/N Confirm prompt.
//
// # Logging Integration
//
// The stepper owns the terminal while it runs, so zap logging must go to a
// file. The CLI arranges that through logging.Options.OutputPath.
package ui
