// Package config provides configuration management for amplify-doctor
// using Viper.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Region is passed to the diagnosis CLI.
	Region string `mapstructure:"region" yaml:"region"`

	// Profile is the AWS credentials profile passed to the diagnosis CLI.
	Profile string `mapstructure:"profile" yaml:"profile"`

	// DiagnoseBinary is the external diagnosis CLI executable.
	DiagnoseBinary string `mapstructure:"diagnose_binary" yaml:"diagnose_binary"`

	// CheckTimeout bounds each individual check.
	CheckTimeout time.Duration `mapstructure:"check_timeout" yaml:"check_timeout"`

	// ScanDepth bounds the secret scan directory depth.
	ScanDepth int `mapstructure:"scan_depth" yaml:"scan_depth"`

	// CompatTable overrides the Node compatibility table location.
	CompatTable string `mapstructure:"compat_table" yaml:"compat_table"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support, e.g. AMPLIFY_DOCTOR_REGION
	viper.SetEnvPrefix("AMPLIFY_DOCTOR")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("region", "us-east-1")
	viper.SetDefault("profile", "default")
	viper.SetDefault("diagnose_binary", "amplify-diagnose")
	viper.SetDefault("check_timeout", 15*time.Second)
	viper.SetDefault("scan_depth", 3)
	viper.SetDefault("compat_table", paths.CompatTablePath())
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found
// (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user specified a path, this is an error; an implicit
			// load falls back to defaults.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}
