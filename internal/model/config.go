package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// CloudConfig holds settings for the remote profile store.
type CloudConfig struct {
	// Enabled controls whether profiles are synced to the remote
	// document store at all.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// BaseURL is the root URL of the document store service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// UserID is the stable identifier supplied by the identity
	// provider. Falls back to the profile's user name for legacy
	// installations that predate the identity migration.
	UserID string `mapstructure:"user_id" yaml:"user_id"`
}

// MailboxConfig holds settings for the optional requests inbox: flagged
// mail in the configured IMAP mailbox becomes request items.
type MailboxConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// UserName is the display name used when creating a fresh profile.
	UserName string `mapstructure:"user_name" yaml:"user_name"`

	// DataDir is where the snapshot database and logs live.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	Cloud   CloudConfig   `mapstructure:"cloud" yaml:"cloud"`
	Mailbox MailboxConfig `mapstructure:"mailbox" yaml:"mailbox"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dayforge/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dayforge", "config.yaml")
}

// defaultDataDir returns ~/.local/share/dayforge, falling back to the
// working directory when the home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "dayforge")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		UserName: "Wanderer",
		DataDir:  defaultDataDir(),
		Mailbox: MailboxConfig{
			Port: "993",
			TLS:  true,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("user_name", "Wanderer")
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("mailbox.port", "993")
	v.SetDefault("mailbox.tls", true)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user_name", cfg.UserName)
	v.Set("data_dir", cfg.DataDir)
	v.Set("cloud", cfg.Cloud)
	v.Set("mailbox", cfg.Mailbox)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
