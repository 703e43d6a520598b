// Package config loads and holds the application configuration. Values come
// from a YAML file, environment variables with the ROCINANTE_ prefix, and
// baked-in defaults, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface is the read surface handed to the rest of the application. It
// exists so components can take a narrow dependency and tests can stub it.
type Interface interface {
	Logger() LoggerConfig
	Persona() PersonaConfig
	Timing() TimingConfig
	Jitter() JitterConfig
	Resolver() ResolverConfig

	SetTimingFatigueEnabled(bool)
	SetResolverMaxWaitTicks(int)
	SetResolverMaxRotationRetries(int)
}

// Config holds the whole application configuration. Callers outside this
// package should depend on Interface and go through the getters.
type Config struct {
	LoggerC   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	PersonaC  PersonaConfig  `mapstructure:"persona" yaml:"persona"`
	TimingC   TimingConfig   `mapstructure:"timing" yaml:"timing"`
	JitterC   JitterConfig   `mapstructure:"jitter" yaml:"jitter"`
	ResolverC ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
}

func (c *Config) Logger() LoggerConfig     { return c.LoggerC }
func (c *Config) Persona() PersonaConfig   { return c.PersonaC }
func (c *Config) Timing() TimingConfig     { return c.TimingC }
func (c *Config) Jitter() JitterConfig     { return c.JitterC }
func (c *Config) Resolver() ResolverConfig { return c.ResolverC }

func (c *Config) SetTimingFatigueEnabled(b bool) { c.TimingC.FatigueEnabled = b }
func (c *Config) SetResolverMaxWaitTicks(n int)  { c.ResolverC.MaxWaitTicks = n }
func (c *Config) SetResolverMaxRotationRetries(n int) {
	c.ResolverC.MaxRotationRetries = n
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// PersonaConfig controls session trait sampling.
type PersonaConfig struct {
	// CorrelationNoiseStdDev perturbs the base trait correlation matrix
	// per session.
	CorrelationNoiseStdDev float64 `mapstructure:"correlation_noise_std_dev" yaml:"correlation_noise_std_dev"`
}

// TimingConfig controls the delay layer.
type TimingConfig struct {
	FatigueEnabled bool `mapstructure:"fatigue_enabled" yaml:"fatigue_enabled"`
	// SeedOverride pins the random source for reproducible runs; 0 keeps
	// the crypto-backed source.
	SeedOverride int64 `mapstructure:"seed_override" yaml:"seed_override"`
}

// JitterConfig controls the Perlin path jitter.
type JitterConfig struct {
	Octaves     int     `mapstructure:"octaves" yaml:"octaves"`
	Persistence float64 `mapstructure:"persistence" yaml:"persistence"`
	Amplitude   float64 `mapstructure:"amplitude" yaml:"amplitude"`
}

// ResolverConfig controls the click-point acquisition state machine.
type ResolverConfig struct {
	MaxWaitTicks        int           `mapstructure:"max_wait_ticks" yaml:"max_wait_ticks"`
	RotationTriggerTick int           `mapstructure:"rotation_trigger_tick" yaml:"rotation_trigger_tick"`
	MaxRotationRetries  int           `mapstructure:"max_rotation_retries" yaml:"max_rotation_retries"`
	ViewportMargin      int           `mapstructure:"viewport_margin" yaml:"viewport_margin"`
	RotationTimeout     time.Duration `mapstructure:"rotation_timeout" yaml:"rotation_timeout"`
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "rocinante")
	v.SetDefault("logger.log_file", "rocinante.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Persona --
	v.SetDefault("persona.correlation_noise_std_dev", 0.1)

	// -- Timing --
	v.SetDefault("timing.fatigue_enabled", true)
	v.SetDefault("timing.seed_override", 0)

	// -- Jitter --
	v.SetDefault("jitter.octaves", 3)
	v.SetDefault("jitter.persistence", 0.5)
	v.SetDefault("jitter.amplitude", 2.5)

	// -- Resolver --
	v.SetDefault("resolver.max_wait_ticks", 8)
	v.SetDefault("resolver.rotation_trigger_tick", 3)
	v.SetDefault("resolver.max_rotation_retries", 3)
	v.SetDefault("resolver.viewport_margin", 5)
	v.SetDefault("resolver.rotation_timeout", "5s")
}

// Load reads configuration from the given file path (or the default search
// path when empty), merges environment overrides, and unmarshals into a
// Config. A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.rocinante")
		}
	}

	v.SetEnvPrefix("ROCINANTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.ResolverC.MaxWaitTicks <= 0 {
		return fmt.Errorf("resolver.max_wait_ticks must be a positive integer")
	}
	if c.ResolverC.RotationTriggerTick <= 0 || c.ResolverC.RotationTriggerTick >= c.ResolverC.MaxWaitTicks {
		return fmt.Errorf("resolver.rotation_trigger_tick must fall inside the wait window")
	}
	if c.ResolverC.MaxRotationRetries < 0 {
		return fmt.Errorf("resolver.max_rotation_retries must not be negative")
	}
	if c.JitterC.Octaves <= 0 {
		return fmt.Errorf("jitter.octaves must be a positive integer")
	}
	if c.JitterC.Persistence <= 0 || c.JitterC.Persistence > 1 {
		return fmt.Errorf("jitter.persistence must be in (0, 1]")
	}
	if c.PersonaC.CorrelationNoiseStdDev < 0 {
		return fmt.Errorf("persona.correlation_noise_std_dev must not be negative")
	}
	return nil
}
