package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PROGRESSVIEW_LOG_LEVEL"

// Options controls where and how much the logger writes.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Empty falls back to
	// PROGRESSVIEW_LOG_LEVEL, and silent mode if that is empty too.
	Level string
	// OutputPath is a file path, "stdout" or "stderr". Defaults to "stdout".
	// The interactive widget owns the terminal, so it logs to a file.
	OutputPath string
}

// Initialize creates a new logger with the specified level writing to stdout.
// If level is empty, it checks PROGRESSVIEW_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithOptions(Options{Level: level})
}

// InitializeWithOptions creates a new logger from opts.
func InitializeWithOptions(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := opts.OutputPath
	if output == "" {
		output = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stdout" || output == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// No ANSI colour codes in log files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use this with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogValueChange logs a committed value change and the path that caused it
func LogValueChange(source string, from, to int) {
	Debug("Progress changed",
		zap.String("source", source),
		zap.Int("from", from),
		zap.Int("to", to),
	)
}

// LogRejected logs a value or maximum the controller refused
func LogRejected(op string, value int, err error) {
	Debug("Stepper rejected update",
		zap.String("op", op),
		zap.Int("value", value),
		zap.Error(err),
	)
}

// LogRepeat logs a long-press repeat transition
func LogRepeat(direction int, event string, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.Int("direction", direction),
		zap.String("event", event),
	}, fields...)
	Debug("Repeat handler", fields...)
}

// LogParse logs the outcome of a debounced text commit
func LogParse(text string, result int, outcome string) {
	Debug("Text field commit",
		zap.String("text", text),
		zap.Int("result", result),
		zap.String("outcome", outcome),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
