package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration

	// Output
	OutputDir   string
	DownloadDir string

	// Browser
	Headless   bool
	ChromePath string

	// Per-source overrides loaded from the optional YAML file
	Overrides *Overrides
}

// Load builds a Config by combining defaults, environment variables, CLI
// flags, and the optional YAML override file. Caller should pass the root
// *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		HTTPTimeout: DefaultHTTPTimeout,
		OutputDir:   DefaultOutputDir,
		DownloadDir: DefaultDownloadDir,
		Headless:    DefaultHeadless,
	}

	// Override from environment variables
	if v := os.Getenv("COLLECTOR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("COLLECTOR_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("COLLECTOR_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	overridePath := os.Getenv("COLLECTOR_CONFIG")

	// Read CLI flags if provided
	if cmd != nil {
		flags := cmd.Flags()
		if f := flags.Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := flags.Lookup("output"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.OutputDir = s
			}
		}
		if f := flags.Lookup("downloads"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.DownloadDir = s
			}
		}
		if f := flags.Lookup("chrome-path"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ChromePath = s
			}
		}
		if f := flags.Lookup("headful"); f != nil && f.Value.String() == "true" {
			cfg.Headless = false
		}
		if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
		if f := flags.Lookup("config"); f != nil {
			if s := f.Value.String(); s != "" {
				overridePath = s
			}
		}
	}

	if overridePath != "" {
		ov, err := LoadOverrides(overridePath)
		if err != nil {
			return nil, fmt.Errorf("override file %s: %w", overridePath, err)
		}
		cfg.Overrides = ov
		if ov.OutputDir != "" {
			cfg.OutputDir = ov.OutputDir
		}
		if ov.DownloadDir != "" {
			cfg.DownloadDir = ov.DownloadDir
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SourceOverride returns the override block for one source ID, or nil.
func (c *Config) SourceOverride(id string) *SourceTuning {
	if c == nil || c.Overrides == nil {
		return nil
	}
	if t, ok := c.Overrides.Sources[id]; ok {
		return t
	}
	return nil
}
