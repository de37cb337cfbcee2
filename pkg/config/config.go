// Package config loads bedtime settings from a .bedtime file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Path           string `json:"path"`
	LogLevel       string `json:"log_level"`
	LogDevelopment bool   `json:"log_development"`
	MetricsAddr    string `json:"metrics_addr"`
}

// BasePath is where the store keeps its files.
func (c *Config) BasePath() string {
	return c.Path
}

// Load reads .bedtime (yaml) from $BEDTIME_CONFIG_PATH, the working directory
// or $HOME. Every key can be set through a BEDTIME_ prefixed variable. A
// missing file is not an error.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", "~/.bedtime.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
	v.SetDefault("metrics_addr", "")
	v.SetConfigName(".bedtime") // .yaml is implicit
	v.SetEnvPrefix("BEDTIME")
	v.AutomaticEnv()

	if override := os.Getenv("BEDTIME_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}

	return &Config{
		Path:           path,
		LogLevel:       v.GetString("log_level"),
		LogDevelopment: v.GetBool("log_development"),
		MetricsAddr:    v.GetString("metrics_addr"),
	}, nil
}
