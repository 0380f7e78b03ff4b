// Package config loads runtime settings for the CLI and the API server.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds every tunable the binary reads. Values come from an optional
// statement-extractor.yaml in the working directory, overridden by
// STMX_-prefixed environment variables.
type Config struct {
	Port             int    `mapstructure:"port"`
	StaticDir        string `mapstructure:"static_dir"`
	LogLevel         string `mapstructure:"log_level"`
	NarrativeModel   string `mapstructure:"narrative_model"`
	IncludeCSVHeader bool   `mapstructure:"include_csv_header"`
	StoreMaxAge      string `mapstructure:"store_max_age"`
}

// Load reads configuration with sane defaults; a missing config file is not
// an error, a malformed one is.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("statement-extractor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("port", 8080)
	v.SetDefault("static_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("narrative_model", "gemini-2.0-flash")
	v.SetDefault("include_csv_header", true)
	v.SetDefault("store_max_age", "15m")

	v.SetEnvPrefix("STMX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}
