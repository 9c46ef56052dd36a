// Package config handles configuration management for ATerm.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aterm-app/aterm/internal/agent"
	"github.com/aterm-app/aterm/internal/shell"
)

// Config holds all configuration for the application.
type Config struct {
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
	Env      []EnvVarConfig `mapstructure:"env" yaml:"env,omitempty"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// TerminalConfig holds shell selection and terminal rendering settings.
type TerminalConfig struct {
	ShellMode  string `mapstructure:"shell_mode" yaml:"shell_mode"`
	ShellPath  string `mapstructure:"shell_path" yaml:"shell_path,omitempty"`
	FontSize   int    `mapstructure:"font_size" yaml:"font_size"`
	Scrollback int    `mapstructure:"scrollback" yaml:"scrollback"`
}

// AgentConfig holds the global agent preset defaults.
type AgentConfig struct {
	Default string `mapstructure:"default" yaml:"default"`
}

// UIConfig holds appearance settings.
type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// EnvVarConfig is one global environment override, applied beneath
// workspace-scoped overrides.
type EnvVarConfig struct {
	Key     string `mapstructure:"key" yaml:"key"`
	Value   string `mapstructure:"value" yaml:"value"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Environment variable prefix
	v.SetEnvPrefix("ATERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in defaults without reading any file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("terminal.shell_mode", string(shell.ModeAuto))
	v.SetDefault("terminal.shell_path", "")
	v.SetDefault("terminal.font_size", 13)
	v.SetDefault("terminal.scrollback", 5000)

	v.SetDefault("agent.default", string(agent.KindClaudeCode))

	v.SetDefault("ui.theme", "dark")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	switch shell.Mode(cfg.Terminal.ShellMode) {
	case shell.ModeAuto, shell.ModePwsh, shell.ModePowershell, shell.ModeCmd:
	case shell.ModeCustom:
		if cfg.Terminal.ShellPath == "" {
			return fmt.Errorf("terminal.shell_path must be set when terminal.shell_mode is custom")
		}
	default:
		return fmt.Errorf("invalid terminal.shell_mode: %s", cfg.Terminal.ShellMode)
	}

	if cfg.Terminal.FontSize < 6 || cfg.Terminal.FontSize > 72 {
		return fmt.Errorf("terminal.font_size must be between 6 and 72, got %d", cfg.Terminal.FontSize)
	}
	if cfg.Terminal.Scrollback < 0 {
		return fmt.Errorf("terminal.scrollback cannot be negative")
	}

	if d := cfg.Agent.Default; d != "" && agent.Lookup(agent.Kind(d)) == nil {
		return fmt.Errorf("unknown agent.default: %s", d)
	}

	seen := make(map[string]bool)
	for _, e := range cfg.Env {
		if e.Key == "" {
			return fmt.Errorf("env entries require a non-empty key")
		}
		if seen[e.Key] {
			return fmt.Errorf("duplicate env key: %s", e.Key)
		}
		seen[e.Key] = true
	}

	return nil
}

// ResolveShell returns the shell path the configuration selects, empty when
// the platform default should be used.
func (c *Config) ResolveShell() string {
	mode := shell.Mode(c.Terminal.ShellMode)
	if mode == shell.ModeAuto {
		return ""
	}
	return shell.Resolve(mode, c.Terminal.ShellPath)
}

// DefaultAgent returns the configured global default agent kind.
func (c *Config) DefaultAgent() agent.Kind {
	if c.Agent.Default == "" {
		return agent.KindNone
	}
	return agent.Kind(c.Agent.Default)
}

// Save writes the configuration to the given path.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dir returns the user config directory for ATerm.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".aterm"), nil
	}
	return filepath.Join(base, "aterm"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultFile returns the default config file path.
func DefaultFile() string {
	dir, err := Dir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}
