// Package logging provides structured logging for progressview.
//
// This package wraps a zap logger with convenience functions for the few
// events worth recording in a stepper widget: committed value changes,
// rejected updates, long-press repeat transitions and text field commits.
//
// # Log Levels
//
//   - Debug: Every value change, repeat tick and text commit
//   - Info: Startup, state restore and save
//   - Warn: Unparseable text, unreadable state files
//   - Error: Failures that end the program
//
// # Configuration
//
// Logging is silent unless a level is given, either with --log-level or the
// PROGRESSVIEW_LOG_LEVEL environment variable:
//
//	if err := logging.InitializeWithOptions(logging.Options{
//	    Level:      "debug",
//	    OutputPath: "/tmp/progressview.log",
//	}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The interactive widget draws on stdout, so the CLI sends logs to a file
// while it is running.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
