// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultStorageFile = "tasks.json"
	DefaultLogLevel    = "info"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// StorageFile is the JSON file holding the task collection.
	StorageFile string `toml:"storage_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/taskdeck/taskdeck.toml or ~/.taskdeck.toml)
// 3. Project config file (taskdeck.toml or .taskdeck.toml in current directory)
// 4. Environment variables (TASKDECK_*)
// 5. CLI flags
//
// Flags are registered on fs; fs.Parse is called with args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		StorageFile: DefaultStorageFile,
		LogLevel:    DefaultLogLevel,
	}

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projectFile := findProjectConfigFile(); projectFile != "" {
		if err := loadConfigFile(cfg, projectFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
		}
	}

	loadFromEnv(cfg)

	fs.StringVar(&cfg.StorageFile, "file", cfg.StorageFile, "Path to the tasks file")
	fs.StringVar(&cfg.StorageFile, "f", cfg.StorageFile, "Path to the tasks file (shorthand)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.StorageFile = expandPath(cfg.StorageFile)
	return cfg, nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}
