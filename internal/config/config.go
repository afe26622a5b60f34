// ABOUTME: Pushups configuration loaded with viper.
// ABOUTME: YAML file under XDG config home, PUSHUPS_* env overrides, sane defaults.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/pushups/internal/rabbit"
	"github.com/harperreed/pushups/internal/storage"
	"github.com/spf13/viper"
)

// Config stores pushups configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Rabbit   RabbitConfig   `mapstructure:"rabbit"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Debug          bool     `mapstructure:"debug"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	// Path supports ~ expansion. Defaults to ~/.local/share/pushups/pushups.db.
	Path string `mapstructure:"path"`
}

// RabbitConfig controls pacer quantization.
type RabbitConfig struct {
	// IntervalMinutes is how often rabbits advance; 0 means continuously.
	IntervalMinutes float64 `mapstructure:"interval_minutes"`
}

// Interval returns the rabbit step as a duration.
func (r RabbitConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes * float64(time.Minute))
}

// GetDBPath returns the configured database path with ~ expanded.
func (c *Config) GetDBPath() string {
	if c.Database.Path == "" {
		return storage.DefaultDBPath()
	}
	return ExpandPath(c.Database.Path)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "pushups", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.debug", false)
	v.SetDefault("database.path", "")
	v.SetDefault("rabbit.interval_minutes", rabbit.DefaultInterval.Minutes())
}

// Load reads config from path, or from the default location when path is
// empty. A missing file is not an error. Environment variables such as
// PUSHUPS_SERVER_ADDRESS override file values, and PORT overrides the
// listen port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("pushups")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Address = ":" + port
	}
	if cfg.Rabbit.IntervalMinutes < 0 {
		return nil, fmt.Errorf("rabbit.interval_minutes must not be negative")
	}

	return &cfg, nil
}
