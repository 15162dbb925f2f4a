package config

import (
	"fmt"
)

const (
	// DefaultListenerHost is the loopback address the listener binds to
	DefaultListenerHost = "127.0.0.1"
	// DefaultListenerPort is the UDP port the listener binds to
	DefaultListenerPort = 5500
	// DefaultListenerBufferSize fits the largest UDP payload
	DefaultListenerBufferSize = 65535
	// MaxListenerBufferSize is the upper bound of the read buffer
	MaxListenerBufferSize = 65535
)

// Listener contains configuration for the UDP listener
type Listener struct {
	// Host is the local address the socket is bound to
	Host string `yaml:"host,omitempty" mapstructure:"host,omitempty"`
	// Port is the local port the socket is bound to
	Port int `yaml:"port,omitempty" mapstructure:"port,omitempty"`
	// BufferSize is the size of the read buffer. Datagrams larger
	// than the buffer are truncated by the kernel.
	BufferSize int `yaml:"bufferSize,omitempty" mapstructure:"bufferSize,omitempty"`
}

// Validate validates the listener configuration
func (c *Listener) Validate() error {
	if err := ValidateHost(c.Host); err != nil {
		return fmt.Errorf("listener host validation failed: %w", err)
	}

	if err := ValidatePort(c.Port); err != nil {
		return fmt.Errorf("listener port validation failed: %w", err)
	}

	if c.BufferSize <= 0 || c.BufferSize > MaxListenerBufferSize {
		return fmt.Errorf("listener buffer size must be between 1 and %d, got %d", MaxListenerBufferSize, c.BufferSize)
	}

	return nil
}
