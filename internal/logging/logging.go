// Package logging builds the zap logger used across dgram.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/observiq/dgram/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a new Logger for the specified config.
// If the config is empty, it defaults to stdout at info level.
func NewLogger(cfg config.Logging) (*zap.Logger, error) {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.Logging, w io.Writer) (*zap.Logger, error) {
	output := strings.TrimSpace(strings.ToLower(cfg.Type))
	if output == "" {
		output = config.LoggingTypeStdout
	}
	if output != config.LoggingTypeStdout {
		return nil, fmt.Errorf("unknown output type: %s", cfg.Type)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.Lock(zapcore.AddSync(w)), parseZapLevel(cfg.Level))
	return zap.New(core), nil
}

func parseZapLevel(level config.LogLevel) zapcore.Level {
	switch config.LogLevel(strings.ToLower(string(level))) {
	case config.LogLevelDebug:
		return zapcore.DebugLevel
	case config.LogLevelWarn:
		return zapcore.WarnLevel
	case config.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.CallerKey = ""
	encoderConfig.StacktraceKey = ""
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}
