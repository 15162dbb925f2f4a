package logging

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/observiq/dgram/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.Logging{})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger(config.Logging{Type: "file"})
	require.ErrorContains(t, err, "unknown output type: file")
}

func TestParseZapLevel(t *testing.T) {
	cases := map[config.LogLevel]zapcore.Level{
		"":                   zapcore.InfoLevel,
		config.LogLevelDebug: zapcore.DebugLevel,
		config.LogLevelInfo:  zapcore.InfoLevel,
		"WARN":               zapcore.WarnLevel,
		config.LogLevelError: zapcore.ErrorLevel,
		"verbose":            zapcore.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, parseZapLevel(in), "level %q", in)
	}
}

func TestLoggerEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.Logging{Level: config.LogLevelInfo}, &buf)
	require.NoError(t, err)

	logger.Named("listener-udp").Info("Received datagram",
		zap.ByteString("payload", []byte("hi")),
		zap.String("address", "127.0.0.1"),
		zap.Uint16("port", 40000),
	)
	logger.Debug("dropped below level")
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "listener-udp", entry["logger"])
	require.Equal(t, "Received datagram", entry["message"])
	require.Equal(t, "hi", entry["payload"])
	require.Equal(t, "127.0.0.1", entry["address"])
	require.EqualValues(t, 40000, entry["port"])
	require.Contains(t, entry, "timestamp")
	require.NotContains(t, entry, "caller")
}
