// Package debounce turns free-form edits of the stepper's text field into
// committed progress values.
//
// Every change starts (or restarts) a single quiet-period timer. When it
// expires without another change the text is parsed, clamped into
// [0, maximum] and applied through the target. Writes the widget makes
// itself are wrapped in Programmatic so they never schedule a commit.
//
// Text that is neither empty nor an integer is not applied: the failure
// handler is called instead, and the terminal widget uses it to put the
// current value back in the field.
package debounce
