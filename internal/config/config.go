// Package config loads inspectdb configuration from an optional YAML file
// and INSPECTDB_* environment variables, layered over built-in defaults.
// Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, mapped by
// lowercasing and replacing underscores with dots: INSPECTDB_DATABASE_DSN
// sets database.dsn.
const EnvPrefix = "INSPECTDB_"

// Config holds inspectdb configuration.
type Config struct {
	Database Database `mapstructure:"database"`
	Log      Log      `mapstructure:"log"`
	Query    Query    `mapstructure:"query"`
}

// Database selects and configures the backing store.
type Database struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres
	DSN    string `mapstructure:"dsn"`
}

// Log configures the process logger.
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// Query configures expression evaluation.
type Query struct {
	Parallelism int `mapstructure:"parallelism"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: Database{
			Driver: "sqlite",
			DSN:    "inspection.db",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Query: Query{
			Parallelism: 1,
		},
	}
}

// Load reads configuration in increasing precedence: built-in defaults, a
// YAML config file, then INSPECTDB_* environment variables. path names an
// explicit config file and must exist; when empty, inspectdb.yaml is
// searched for in the working directory and $HOME/.inspectdb, and its
// absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("inspectdb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".inspectdb"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Viper's AutomaticEnv does not surface keys to Unmarshal unless they
	// are already known, so prefixed variables are copied in explicitly.
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		propKey := strings.TrimPrefix(key, EnvPrefix)
		propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
		v.Set(propKey, value)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
