package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// LogLevel defines log level types
type LogLevel string

// Log level constants - using values from config package
const (
	LogLevelDebug LogLevel = LogLevel(config.LogLevelDebug)
	LogLevelInfo  LogLevel = LogLevel(config.LogLevelInfo)
	LogLevelWarn  LogLevel = LogLevel(config.LogLevelWarn)
	LogLevelError LogLevel = LogLevel(config.LogLevelError)
)

// LogFormat defines log format types
type LogFormat string

// Log format constants - using values from config package
const (
	LogFormatText LogFormat = LogFormat(config.LogFormatText)
	LogFormatJSON LogFormat = LogFormat(config.LogFormatJSON)
)

// levelVar backs every logger built by SetupLogger so the level can change at runtime.
var levelVar = new(slog.LevelVar)

// GetLogLevel converts a string log level to slog.Level
func GetLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case string(LogLevelDebug):
		return slog.LevelDebug
	case string(LogLevelWarn):
		return slog.LevelWarn
	case string(LogLevelError):
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidateLogLevel ensures the provided level is valid, returning a default if not
func ValidateLogLevel(level string) string {
	return config.ValidateLogLevel(level)
}

// ValidateLogFormat ensures the provided format is valid, returning a default if not
func ValidateLogFormat(format string) string {
	switch strings.ToLower(format) {
	case string(LogFormatJSON):
		return string(LogFormatJSON)
	default:
		return string(LogFormatText)
	}
}

// SetupLogger creates a logger writing to stderr whose level can be changed with SetLevel.
func SetupLogger(level string, format string) *slog.Logger {
	return SetupLoggerTo(os.Stderr, level, format)
}

// SetupLoggerTo is SetupLogger with an explicit destination.
func SetupLoggerTo(w io.Writer, level string, format string) *slog.Logger {
	levelVar.Set(GetLogLevel(ValidateLogLevel(level)))

	opts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: true,
	}

	if ValidateLogFormat(format) == string(LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetLevel changes the level of every logger created by SetupLogger.
func SetLevel(level string) error {
	switch strings.ToLower(level) {
	case string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError):
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	levelVar.Set(GetLogLevel(level))
	return nil
}

// CurrentLevel returns the active log level name.
func CurrentLevel() string {
	switch levelVar.Level() {
	case slog.LevelDebug:
		return string(LogLevelDebug)
	case slog.LevelWarn:
		return string(LogLevelWarn)
	case slog.LevelError:
		return string(LogLevelError)
	default:
		return string(LogLevelInfo)
	}
}

// SetupErrorLogger creates a simple text logger for reporting errors during startup.
func SetupErrorLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// SetAsDefaultLogger sets a logger as the default logger
func SetAsDefaultLogger(logger *slog.Logger) {
	slog.SetDefault(logger)
}
