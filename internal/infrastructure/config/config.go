package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Review   ReviewConfig   `mapstructure:"review"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds the local store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ReviewConfig holds review session configuration.
type ReviewConfig struct {
	// Limit caps how many due items one sitting pulls in; 0 means all.
	Limit int `mapstructure:"limit"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("database.path", "")
	viper.SetDefault("review.limit", 20)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// DatabasePath resolves the store location, defaulting to
// ~/.vocabloom/vocabloom.db when not configured.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".vocabloom", "vocabloom.db"), nil
}
