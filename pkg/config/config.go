// Package config provides configuration file and environment support for
// lyrebird.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/fsutil"
)

// EnvPrefix prefixes every environment override, e.g. LYREBIRD_LOG.
const EnvPrefix = "LYREBIRD"

// Config represents the lyrebird configuration.
type Config struct {
	// Log is the action log target: a path, "-" for stdout, or "discard".
	// Empty selects the platform default.
	Log      string     `mapstructure:"log" yaml:"log" json:"log"`
	LogLevel string     `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	File     FileConfig `mapstructure:"file" yaml:"file" json:"file"`
	Net      NetConfig  `mapstructure:"net" yaml:"net" json:"net"`
}

// FileConfig configures the file actions.
type FileConfig struct {
	Content string `mapstructure:"content" yaml:"content" json:"content"`
}

// NetConfig configures the network actions.
type NetConfig struct {
	Message string `mapstructure:"message" yaml:"message" json:"message"`
	Timeout int    `mapstructure:"timeout" yaml:"timeout" json:"timeout"` // seconds
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		File: FileConfig{
			Content: "Hello from Lyrebird!\n",
		},
		Net: NetConfig{
			Message: "Ping from Lyrebird!",
			Timeout: 10,
		},
	}
}

// DefaultPath returns the per-user configuration file location, or "" when
// the platform has no user configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lyrebird", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path (if
// it exists) and LYREBIRD_* environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, errclass.ErrConfigInvalid.Wrap(fmt.Sprintf("read config %s", path), err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errclass.ErrConfigInvalid.Wrap("decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log", d.Log)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("file.content", d.File.Content)
	v.SetDefault("net.message", d.Net.Message)
	v.SetDefault("net.timeout", d.Net.Timeout)
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errclass.ErrConfigInvalid.WithMessagef("log_level must be one of debug, info, warn, error: %q", c.LogLevel)
	}
	if c.Net.Timeout <= 0 {
		return errclass.ErrConfigInvalid.WithMessagef("net.timeout must be a positive number of seconds: %d", c.Net.Timeout)
	}
	return nil
}

// Save writes cfg to path as YAML, replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
