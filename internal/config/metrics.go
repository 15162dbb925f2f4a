package config

import (
	"fmt"
)

const (
	// DefaultMetricsHost is the address the metrics endpoint listens on
	DefaultMetricsHost = "127.0.0.1"
	// DefaultMetricsPort is the port the metrics endpoint listens on
	DefaultMetricsPort = 9464
)

// Metrics contains configuration for the Prometheus metrics endpoint
type Metrics struct {
	// Enabled turns the metrics endpoint on
	Enabled bool `yaml:"enabled,omitempty" mapstructure:"enabled,omitempty"`
	// Host is the address the metrics endpoint listens on
	Host string `yaml:"host,omitempty" mapstructure:"host,omitempty"`
	// Port is the port the metrics endpoint listens on
	Port int `yaml:"port,omitempty" mapstructure:"port,omitempty"`
}

// Validate validates the metrics configuration. Host and port are
// only checked when metrics are enabled.
func (c *Metrics) Validate() error {
	if !c.Enabled {
		return nil
	}

	if err := ValidateHost(c.Host); err != nil {
		return fmt.Errorf("metrics host validation failed: %w", err)
	}

	if err := ValidatePort(c.Port); err != nil {
		return fmt.Errorf("metrics port validation failed: %w", err)
	}

	return nil
}
