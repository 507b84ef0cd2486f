// Package log provides structured, colored logging for solpay.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the system.
var (
	Pay   zerolog.Logger
	Mint  zerolog.Logger
	Store zerolog.Logger
	CLI   zerolog.Logger
)

func init() {
	// Default to colored console output
	Logger = NewConsoleLogger(os.Stderr, "info")
	initComponentLoggers()
}

// Init initializes the logger with the given configuration.
// When file is non-empty, logs are written to both the console (colored or
// JSON depending on jsonOutput) and the file (always JSON for machine parsing).
func Init(level string, jsonOutput bool, file string) error {
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}

		lvl := parseLevel(level)

		var consoleWriter io.Writer
		if jsonOutput {
			consoleWriter = os.Stderr
		} else {
			consoleWriter = zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "15:04:05",
				NoColor:    false,
			}
		}

		// File writer: always JSON (no ANSI codes, structured for parsing).
		multi := zerolog.MultiLevelWriter(consoleWriter, f)
		Logger = zerolog.New(multi).
			Level(lvl).
			With().
			Timestamp().
			Logger()
	} else if jsonOutput {
		Logger = NewJSONLogger(os.Stderr, level)
	} else {
		Logger = NewConsoleLogger(os.Stderr, level)
	}

	initComponentLoggers()
	return nil
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    false,
	}

	return zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// initComponentLoggers initializes loggers for each component.
func initComponentLoggers() {
	Pay = Logger.With().Str("component", "pay").Logger()
	Mint = Logger.With().Str("component", "mint").Logger()
	Store = Logger.With().Str("component", "store").Logger()
	CLI = Logger.With().Str("component", "cli").Logger()
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
