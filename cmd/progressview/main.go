// Progressview is a terminal numeric stepper.
//
// It shows a decrement button, an editable numeric field, an optional
// "/ max" label and an increment button. Holding a button with the mouse
// repeats the step with acceleration, and typing in the field applies the
// number after a short pause. The value and maximum are saved on exit and
// restored on the next run.
//
// Usage:
//
//	progressview [command] [flags]
//
// Running without arguments launches the interactive stepper.
// See 'progressview --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/progressview/internal/logging"
	"github.com/muurk/progressview/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "progressview",
	Short: "Numeric stepper with long-press repeat",
	Long: `A terminal numeric stepper.

Click or hold the [ − ] and [ + ] buttons, use the arrow keys, or type a
number into the field. Typed numbers are applied after a short pause and
clamped into range. When a maximum is set the value never exceeds it.

If no command is specified, the interactive stepper will launch automatically.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runStepper,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("progressview %s\n", version.Full())
	},
}
