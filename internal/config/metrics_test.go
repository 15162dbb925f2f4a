package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsValidate(t *testing.T) {
	cases := []struct {
		name    string
		metrics Metrics
		errMsg  string
	}{
		{name: "disabled ignores address", metrics: Metrics{Enabled: false}},
		{name: "enabled ok", metrics: Metrics{Enabled: true, Host: "127.0.0.1", Port: 9464}},
		{name: "enabled bad host", metrics: Metrics{Enabled: true, Host: "", Port: 9464}, errMsg: "metrics host validation failed"},
		{name: "enabled bad port", metrics: Metrics{Enabled: true, Host: "127.0.0.1", Port: 0}, errMsg: "metrics port validation failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.metrics.Validate()
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := NewConfig()
	cfg.Listener.Port = 6000
	cfg.ApplyDefaults()

	require.Equal(t, LoggingTypeStdout, cfg.Logging.Type)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, DefaultListenerHost, cfg.Listener.Host)
	require.Equal(t, 6000, cfg.Listener.Port)
	require.Equal(t, DefaultListenerBufferSize, cfg.Listener.BufferSize)
	require.False(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyDefaults()
	cfg.Logging.Level = "loud"
	require.ErrorIs(t, cfg.Validate(), errInvalidLoggingLevel)

	cfg.Logging.Level = LogLevelDebug
	cfg.Listener.Port = -1
	require.ErrorContains(t, cfg.Validate(), "listener port validation failed")
}

func TestAddress(t *testing.T) {
	require.Equal(t, "127.0.0.1:5500", Address("127.0.0.1", 5500))
	require.Equal(t, "[::1]:5500", Address("::1", 5500))
}
