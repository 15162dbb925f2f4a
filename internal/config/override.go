package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable override
const EnvPrefix = "DGRAM_"

// Override is a configuration override
type Override struct {
	// Field is the config field to override
	Field string
	// Flag is the flag that will override the field
	Flag string
	// Env is the environment variable that will override the field
	Env string
	// Usage is the usage for the override
	Usage string
	// Default is the default value for the override
	Default any
}

// NewOverride creates a new override
func NewOverride(field, usage string, def any) *Override {
	return &Override{
		Field:   field,
		Flag:    createFlagName(field),
		Env:     createEnvName(field),
		Usage:   usage,
		Default: def,
	}
}

// Bind binds the override to the global viper instance
func (o *Override) Bind(flags *pflag.FlagSet) error {
	return o.BindTo(viper.GetViper(), flags)
}

// BindTo binds the override to the given viper instance
func (o *Override) BindTo(v *viper.Viper, flags *pflag.FlagSet) error {
	flag := o.createFlag(flags)
	if err := v.BindPFlag(o.Field, flag); err != nil {
		return err
	}
	return v.BindEnv(o.Field, o.Env)
}

// createFlag creates a flag for the override, reusing an existing one
func (o *Override) createFlag(flags *pflag.FlagSet) *pflag.Flag {
	if existingFlag := flags.Lookup(o.Flag); existingFlag != nil {
		return existingFlag
	}

	switch v := o.Default.(type) {
	case string:
		_ = flags.String(o.Flag, v, o.Usage)
	case LogLevel:
		_ = flags.String(o.Flag, string(v), o.Usage)
	case int:
		_ = flags.Int(o.Flag, v, o.Usage)
	case time.Duration:
		_ = flags.Duration(o.Flag, v, o.Usage)
	case bool:
		_ = flags.Bool(o.Flag, v, o.Usage)
	default:
		_ = flags.String(o.Flag, "", o.Usage)
	}

	return flags.Lookup(o.Flag)
}

// createFlagName creates a flag name from a field
func createFlagName(field string) string {
	return strings.ToLower(strings.ReplaceAll(field, ".", "-"))
}

// createEnvName creates an environment variable name from a field
func createEnvName(field string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))
}

// DefaultOverrides returns all overrides for the listener binary
func DefaultOverrides() []*Override {
	return []*Override{
		NewOverride("logging.type", "output of the log. One of: stdout", LoggingTypeStdout),
		NewOverride("logging.level", "log level to use. One of: debug|info|warn|error", LogLevelInfo),
		NewOverride("listener.host", "local address the UDP listener binds to", DefaultListenerHost),
		NewOverride("listener.port", "local port the UDP listener binds to", DefaultListenerPort),
		NewOverride("listener.bufferSize", "size in bytes of the datagram read buffer", DefaultListenerBufferSize),
		NewOverride("metrics.enabled", "serve Prometheus metrics", false),
		NewOverride("metrics.host", "address the metrics endpoint listens on", DefaultMetricsHost),
		NewOverride("metrics.port", "port the metrics endpoint listens on", DefaultMetricsPort),
	}
}

// Load binds the default overrides to a fresh viper instance, parses
// args and returns the resulting configuration with defaults applied.
func Load(flags *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, override := range DefaultOverrides() {
		if err := override.BindTo(v, flags); err != nil {
			return nil, fmt.Errorf("bind override %s: %w", override.Field, err)
		}
	}
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
