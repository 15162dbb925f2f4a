package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePort(t *testing.T) {
	for _, port := range []int{1, 5500, 65535} {
		require.NoError(t, ValidatePort(port), "port %d", port)
	}
	for _, port := range []int{-1, 0, 65536} {
		require.ErrorContains(t, ValidatePort(port), "port must be between 1 and 65535")
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		errMsg string
	}{
		{name: "IPv4 loopback", host: "127.0.0.1"},
		{name: "IPv6 loopback", host: "::1"},
		{name: "unspecified", host: "0.0.0.0"},
		{name: "hostname", host: "localhost"},
		{name: "domain name", host: "example.com"},
		{name: "empty host", host: "", errMsg: "host cannot be empty"},
		{name: "double dots", host: "invalid..hostname", errMsg: "host must be a valid IP address or hostname"},
		{name: "leading dash", host: "-invalid.hostname", errMsg: "host must be a valid IP address or hostname"},
		{name: "too long", host: "a" + strings.Repeat(".a", 127), errMsg: "host must be a valid IP address or hostname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHost(tt.host)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}
