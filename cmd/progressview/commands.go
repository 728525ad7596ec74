package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/progressview/internal/config"
	"github.com/muurk/progressview/internal/logging"
	"github.com/muurk/progressview/internal/stepper"
	"github.com/muurk/progressview/internal/ui"
)

// Command flags
var (
	configDir  string
	logLevel   string
	logFile    string
	maxValue   int
	showMax    bool
	startAt    int
	noRestore  bool
	assumeYes  bool
	initConfig bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: OS config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file for the interactive stepper (default: <config dir>/progressview.log)")
	rootCmd.Flags().IntVar(&maxValue, "max", 0, "Maximum value (0 removes the maximum)")
	rootCmd.Flags().BoolVar(&showMax, "show-max", true, "Show the maximum label")
	rootCmd.Flags().IntVar(&startAt, "value", 0, "Start at this value instead of the saved one")
	rootCmd.Flags().BoolVar(&noRestore, "no-restore", false, "Ignore the saved progress")

	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

func openStore() (*config.Store, error) {
	if configDir != "" {
		return config.NewStore(configDir), nil
	}
	store, err := config.DefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return store, nil
}

// initLogging sends logs to stderr for one-shot commands. The interactive
// stepper owns the terminal, so it passes a file path instead.
func initLogging(output string) error {
	return logging.InitializeWithOptions(logging.Options{
		Level:      logLevel,
		OutputPath: output,
	})
}

func runStepper(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	output := logFile
	if output == "" {
		if err := store.EnsureDir(); err != nil {
			return err
		}
		output = store.LogPath()
	}
	if err := initLogging(output); err != nil {
		return err
	}

	if !ui.IsInteractive() {
		return errors.New("the interactive stepper needs a terminal; use 'progressview state' or 'progressview set' instead")
	}

	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("show-max") {
		if settings.Widget == nil {
			settings.Widget = &config.Widget{}
		}
		settings.Widget.ShowMax = showMax
	}

	var restore *stepper.SavedState
	if !noRestore {
		saved, ok, err := store.LoadState()
		if err != nil {
			logging.Warn("Ignoring unreadable state file", zap.Error(err))
		} else if ok {
			restore = &saved
		}
	}

	m, err := ui.NewModel(ui.Options{
		Settings: settings,
		Restore:  restore,
		Width:    ui.GetTerminalWidth(),
	})
	if err != nil {
		return err
	}

	ctrl := m.Controller()
	if cmd.Flags().Changed("max") {
		if err := applyMaximum(ctrl, maxValue); err != nil {
			m.Close()
			return err
		}
	}
	if cmd.Flags().Changed("show-max") {
		// a restored or new maximum shows its label, the flag wins
		ctrl.SetShowMaximum(showMax)
	}
	if cmd.Flags().Changed("value") {
		if err := ctrl.SetValue(startAt); err != nil {
			m.Close()
			return fmt.Errorf("invalid --value: %w", err)
		}
	}

	logging.Info("Starting stepper", zap.Int("progress", ctrl.Value()))

	if err := ui.Run(m); err != nil {
		return err
	}

	state := ctrl.Save()
	if err := store.SaveState(state); err != nil {
		logging.Error("Failed to save progress", zap.Error(err), zap.String("path", store.StatePath()))
		return fmt.Errorf("failed to save progress: %w", err)
	}

	ui.NewPrinter(os.Stdout).PrintSuccess("Progress saved", stateDetails(state)...)
	return nil
}

// applyMaximum treats 0 as "no maximum", matching the saved state format.
func applyMaximum(ctrl *stepper.Controller, max int) error {
	if max == 0 {
		ctrl.ClearMaximum()
		return nil
	}
	if err := ctrl.SetMaximum(max); err != nil {
		return fmt.Errorf("invalid --max: %w", err)
	}
	return nil
}

func stateDetails(state stepper.SavedState) []ui.Detail {
	max := "none"
	if state.HasMaximum() {
		max = strconv.Itoa(state.Max)
	}
	return []ui.Detail{
		{Key: "Progress", Value: strconv.Itoa(state.Progress)},
		{Key: "Maximum", Value: max},
	}
}

// stateCmd prints the saved progress
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the saved progress",
	Long: `Show the progress and maximum saved by the last interactive session
or by 'progressview set'.`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func runState(cmd *cobra.Command, args []string) error {
	if err := initLogging("stderr"); err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Saved Progress", "progressview state", ui.Detail{Key: "File", Value: store.StatePath()})

	state, ok, err := store.LoadState()
	if err != nil {
		p.PrintError("Could not read saved progress", err,
			"Run 'progressview reset' to discard the state file")
		return err
	}
	if !ok {
		p.PrintWarning("No saved progress",
			ui.Detail{Key: "Hint", Value: "Run 'progressview' or 'progressview set <value>'"})
		return nil
	}

	p.PrintSuccess("Saved progress", stateDetails(state)...)
	return nil
}

// setCmd writes a value without the interactive stepper
var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set the saved progress",
	Long: `Set the saved progress without launching the interactive stepper.

The value goes through the same checks as the stepper: it must not be
negative and must not exceed the maximum.`,
	Example: `  # Set progress to 7, keeping the saved maximum
  progressview set 7

  # Set progress to 3 out of 10
  progressview set 3 --max 10

  # Remove the maximum
  progressview set 40 --max 0`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	setCmd.Flags().IntVar(&maxValue, "max", 0, "Maximum value (0 removes the maximum)")
}

func runSet(cmd *cobra.Command, args []string) error {
	if err := initLogging("stderr"); err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())

	value, err := strconv.Atoi(args[0])
	if err != nil {
		err = &stepper.ParseError{Text: args[0], Err: err}
		p.PrintError("Invalid value", err, "The value must be a whole number")
		return err
	}

	state, err := applySet(store, value, cmd.Flags().Changed("max"), maxValue)
	if err != nil {
		hints := []string{"The value must be zero or more"}
		var valueErr *stepper.ValueError
		if errors.As(err, &valueErr) && valueErr.HasMaximum {
			hints = append(hints,
				fmt.Sprintf("The maximum is %d; raise it with --max", valueErr.Maximum))
		}
		p.PrintError("Progress not changed", err, hints...)
		return err
	}

	p.PrintSuccess("Progress saved", stateDetails(state)...)
	return nil
}

// applySet runs the saved state through a headless controller so the
// same validation applies as in the interactive stepper.
func applySet(store *config.Store, value int, maxChanged bool, max int) (stepper.SavedState, error) {
	ctrl, err := stepper.New(nil)
	if err != nil {
		return stepper.SavedState{}, err
	}

	saved, ok, err := store.LoadState()
	if err != nil {
		logging.Warn("Ignoring unreadable state file", zap.Error(err))
	} else if ok {
		if err := ctrl.Restore(saved); err != nil {
			logging.Warn("Ignoring invalid saved state", zap.Error(err))
		}
	}

	if maxChanged {
		if max == 0 {
			ctrl.ClearMaximum()
		} else if err := ctrl.SetMaximum(max); err != nil {
			return stepper.SavedState{}, err
		}
	}
	if err := ctrl.SetValue(value); err != nil {
		return stepper.SavedState{}, err
	}

	state := ctrl.Save()
	if err := store.SaveState(state); err != nil {
		return stepper.SavedState{}, fmt.Errorf("failed to save progress: %w", err)
	}
	return state, nil
}

// resetCmd removes the saved progress
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved progress",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := initLogging("stderr"); err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())

	if !assumeYes {
		confirmed := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete saved progress?", []string{
			"The next session starts at 0 with the configured maximum",
			"File: " + store.StatePath(),
		})
		if !confirmed {
			p.PrintWarning("Reset cancelled")
			return nil
		}
	}

	if err := store.ClearState(); err != nil {
		logging.Error("Failed to clear saved progress", zap.Error(err))
		p.PrintError("Could not delete saved progress", err)
		return err
	}
	logging.Info("Cleared saved progress", zap.String("path", store.StatePath()))

	p.PrintSuccess("Saved progress deleted")
	return nil
}

// configCmd shows the effective settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stepper settings",
	Long: `Show the settings the interactive stepper starts with: the initial
maximum, label visibility and the long-press and typing delays.

With --init a config file holding the defaults is written, unless one
already exists.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&initConfig, "init", false, "Write a default config file if none exists")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := initLogging("stderr"); err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Stepper Settings", "progressview config", ui.Detail{Key: "File", Value: store.ConfigPath()})

	settings, err := store.LoadSettings()
	if err != nil {
		p.PrintError("Could not read config file", err,
			"Fix or delete the file, then run 'progressview config --init'")
		return err
	}

	if initConfig {
		if _, err := os.Stat(store.ConfigPath()); err == nil {
			p.PrintWarning("Config file already exists", ui.Detail{Key: "File", Value: store.ConfigPath()})
			return nil
		}
		if err := store.SaveSettings(settings); err != nil {
			logging.Error("Failed to write config", zap.Error(err))
			p.PrintError("Could not write config file", err)
			return err
		}
		logging.Info("Wrote default config", zap.String("path", store.ConfigPath()))
	}

	max := "none"
	if m, ok := settings.InitialMax(); ok {
		max = strconv.Itoa(m)
	}
	cfg := settings.RepeatConfig()
	p.PrintSuccess("Effective settings",
		ui.Detail{Key: "Initial max", Value: max},
		ui.Detail{Key: "Show max", Value: strconv.FormatBool(settings.ShowMax())},
		ui.Detail{Key: "Repeat after", Value: cfg.InitialDelay.String()},
		ui.Detail{Key: "Interval", Value: fmt.Sprintf("%s down to %s", cfg.Interval, cfg.MinInterval)},
		ui.Detail{Key: "Acceleration", Value: strconv.FormatFloat(cfg.Acceleration, 'f', -1, 64)},
		ui.Detail{Key: fmt.Sprintf("Steps of %d", cfg.FastDelta), Value: "after " + cfg.FastAfter.String()},
		ui.Detail{Key: fmt.Sprintf("Steps of %d", cfg.FasterDelta), Value: "after " + cfg.FasterAfter.String()},
		ui.Detail{Key: "Typing delay", Value: settings.DebounceDelay().String()},
	)
	return nil
}
