package config

import (
	"strings"
	"testing"
)

func TestListenerValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Listener
		wantErr bool
		errMsg  string
	}{
		{
			name:   "default loopback",
			config: Listener{Host: "127.0.0.1", Port: 5500, BufferSize: 65535},
		},
		{
			name:   "hostname",
			config: Listener{Host: "localhost", Port: 5500, BufferSize: 1500},
		},
		{
			name:   "all interfaces",
			config: Listener{Host: "0.0.0.0", Port: 5500, BufferSize: 1},
		},
		{
			name:    "empty host",
			config:  Listener{Host: "", Port: 5500, BufferSize: 65535},
			wantErr: true,
			errMsg:  "listener host validation failed",
		},
		{
			name:    "invalid hostname",
			config:  Listener{Host: "invalid..hostname", Port: 5500, BufferSize: 65535},
			wantErr: true,
			errMsg:  "listener host validation failed",
		},
		{
			name:    "invalid port - zero",
			config:  Listener{Host: "127.0.0.1", Port: 0, BufferSize: 65535},
			wantErr: true,
			errMsg:  "listener port validation failed",
		},
		{
			name:    "invalid port - too high",
			config:  Listener{Host: "127.0.0.1", Port: 65536, BufferSize: 65535},
			wantErr: true,
			errMsg:  "listener port validation failed",
		},
		{
			name:    "zero buffer",
			config:  Listener{Host: "127.0.0.1", Port: 5500, BufferSize: 0},
			wantErr: true,
			errMsg:  "listener buffer size must be between 1 and 65535, got 0",
		},
		{
			name:    "oversized buffer",
			config:  Listener{Host: "127.0.0.1", Port: 5500, BufferSize: 70000},
			wantErr: true,
			errMsg:  "got 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Listener.Validate() expected error but got none")
					return
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Listener.Validate() error = %v, want to contain %v", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("Listener.Validate() unexpected error = %v", err)
			}
		})
	}
}
