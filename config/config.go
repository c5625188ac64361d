// Package config loads run defaults from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-settable defaults of a run, read from
// HAMMERPLOT_* variables. Command-line flags take precedence.
type Config struct {
	Settings    string `default:"litedram_settings.json"`
	HTTPPort    int    `split_words:"true" default:"0"`
	OpenBrowser bool   `split_words:"true" default:"true"`
}

// Parse reads a .env file when one is present, then the environment.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Could not load .env: %s\n", err)
	}

	var config Config
	if err := envconfig.Process("hammerplot", &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &config, nil
}
