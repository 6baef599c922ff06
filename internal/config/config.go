package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig
	Install InstallConfig
	UI      UIConfig
	Log     LogConfig
}

// CatalogConfig holds catalog fetch settings.
type CatalogConfig struct {
	Endpoint     string
	DisplayDelay time.Duration `mapstructure:"display_delay"`
	Timeout      time.Duration
}

// InstallConfig selects how install requests reach the host.
type InstallConfig struct {
	Launcher  string
	ADBPath   string `mapstructure:"adb_path"`
	ADBSerial string `mapstructure:"adb_serial"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent    string
	Secondary string
	CardWidth int `mapstructure:"card_width"`
}

// LogConfig controls the log file. The TUI owns the terminal, so logs never go to stdout.
type LogConfig struct {
	Level  string
	Format string
	Path   string
}

var launchers = map[string]bool{"log": true, "adb": true, "open": true}

// Path returns the config file location: STOREFRONT_CONFIG or the user config dir.
func Path() string {
	if p := os.Getenv("STOREFRONT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "storefront", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.endpoint", "https://memeitizer.com/appstore/api/index.php")
	v.SetDefault("catalog.display_delay", "800ms")
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("install.launcher", "log")
	v.SetDefault("install.adb_path", "adb")
	v.SetDefault("install.adb_serial", "")
	v.SetDefault("ui.accent", "#00FF88")
	v.SetDefault("ui.secondary", "#8A2BE2")
	v.SetDefault("ui.card_width", 28)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "storefront", "storefront.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix STOREFRONT_.
// An explicit path wins over STOREFRONT_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	switch {
	case path != "":
		v.SetConfigFile(path)
	case os.Getenv("STOREFRONT_CONFIG") != "":
		v.SetConfigFile(os.Getenv("STOREFRONT_CONFIG"))
	default:
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "storefront"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine; an explicit one must exist and parse
		if !errors.As(err, &notFound) && (path != "" || !os.IsNotExist(err)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v)
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() (Config, error) {
	v := viper.New()
	setDefaults(v)
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Catalog.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog.endpoint must be an http(s) url, got %q", c.Catalog.Endpoint)
	}
	if c.Catalog.DisplayDelay < 0 {
		return fmt.Errorf("catalog.display_delay must not be negative")
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog.timeout must not be negative")
	}
	if !launchers[strings.ToLower(strings.TrimSpace(c.Install.Launcher))] {
		return fmt.Errorf("install.launcher must be one of log, adb, open; got %q", c.Install.Launcher)
	}
	if c.UI.CardWidth < 12 {
		return fmt.Errorf("ui.card_width must be at least 12")
	}
	return nil
}

// Save writes the provided config to path, creating the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.endpoint", cfg.Catalog.Endpoint)
	v.Set("catalog.display_delay", cfg.Catalog.DisplayDelay.String())
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("install.launcher", cfg.Install.Launcher)
	v.Set("install.adb_path", cfg.Install.ADBPath)
	v.Set("install.adb_serial", cfg.Install.ADBSerial)
	v.Set("ui.accent", cfg.UI.Accent)
	v.Set("ui.secondary", cfg.UI.Secondary)
	v.Set("ui.card_width", cfg.UI.CardWidth)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
