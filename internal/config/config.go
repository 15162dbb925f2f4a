// Package config contains the top level configuration structures and logic
package config

// Config is the configuration for dgram.
type Config struct {
	// Logging configuration for the logger
	Logging Logging `yaml:"logging,omitempty" mapstructure:"logging,omitempty"`
	// Listener configuration for the UDP socket
	Listener Listener `yaml:"listener,omitempty" mapstructure:"listener,omitempty"`
	// Metrics configuration for the Prometheus endpoint
	Metrics Metrics `yaml:"metrics,omitempty" mapstructure:"metrics,omitempty"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Listener.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}

// NewConfig returns a new config
func NewConfig() *Config {
	return &Config{}
}

// ApplyDefaults applies default values to the configuration
func (c *Config) ApplyDefaults() {
	if c.Logging.Type == "" {
		c.Logging.Type = LoggingTypeStdout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}

	if c.Listener.Host == "" {
		c.Listener.Host = DefaultListenerHost
	}
	if c.Listener.Port == 0 {
		c.Listener.Port = DefaultListenerPort
	}
	if c.Listener.BufferSize == 0 {
		c.Listener.BufferSize = DefaultListenerBufferSize
	}

	// Metrics stay disabled unless asked for, but the endpoint
	// address is always filled so enabling is a single switch.
	if c.Metrics.Host == "" {
		c.Metrics.Host = DefaultMetricsHost
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
}
