package config

import (
	"errors"
	"fmt"
	"strings"
)

// LogLevel represents a supported logging severity level.
type LogLevel string

const (
	// LoggingTypeStdout writes logs to stdout (only supported type).
	LoggingTypeStdout = "stdout"

	// LogLevelDebug is the debug log level.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the info log level. Received datagrams are
	// logged at this level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is the warn log level.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is the error log level.
	LogLevelError LogLevel = "error"
)

var (
	errInvalidLoggingType  = errors.New("invalid logging type")
	errInvalidLoggingLevel = errors.New("invalid logging level")
)

// Logging contains configuration for logging.
type Logging struct {
	// Type indicates where logs should be written, defaulting to "stdout".
	Type string `mapstructure:"type" yaml:"type,omitempty"`

	// Level is the log level to use, defaulting to "info".
	Level LogLevel `mapstructure:"level" yaml:"level,omitempty"`
}

// Validate validates the logging configuration. Empty values are
// accepted and replaced by ApplyDefaults or the overrides.
func (l *Logging) Validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Type)) {
	case "", LoggingTypeStdout:
	default:
		return fmt.Errorf("%w: %s", errInvalidLoggingType, l.Type)
	}

	switch LogLevel(strings.ToLower(string(l.Level))) {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: %s", errInvalidLoggingLevel, l.Level)
	}

	return nil
}
