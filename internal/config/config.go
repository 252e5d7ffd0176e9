package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/loglens/loglens/internal/domain"
)

// ErrInvalid marks a self-contradictory configuration. It is raised before
// any line is processed.
var ErrInvalid = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for the analyze command
	Analyze AnalyzeConfig `mapstructure:"analyze"`
}

// AnalyzeConfig holds default values for the analyze command
type AnalyzeConfig struct {
	Bucket           string            `mapstructure:"bucket"`            // time bucket granularity, e.g. "1h"
	TopK             int               `mapstructure:"top_k"`             // most-frequent-message capacity
	Retain           int               `mapstructure:"retain"`            // unmatched lines kept for diagnostics
	MaxErrorRate     float64           `mapstructure:"max_error_rate"`    // unparsed ratio that triggers a warning
	TimestampLayouts []string          `mapstructure:"timestamp_layouts"` // accepted timestamp formats (Go layouts)
	SeverityAliases  map[string]string `mapstructure:"severity_aliases"`  // extra token -> severity mappings
	LogDir           string            `mapstructure:"log_dir"`           // directory searched for rotated logs
	LogPrefix        string            `mapstructure:"log_prefix"`        // rotated log filename prefix
	ReportDir        string            `mapstructure:"report_dir"`        // where report artifacts are written
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "",
		Quiet:   false,
		Verbose: false,
		Analyze: AnalyzeConfig{
			Bucket:       "1h",
			TopK:         10,
			Retain:       20,
			MaxErrorRate: 0.8,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.loglens.yaml or ./.loglens.yml
// 2. ~/.loglens.yaml or ~/.loglens.yml
// 3. $XDG_CONFIG_HOME/loglens/config.yaml (or ~/.config/loglens/config.yaml)
// 4. /etc/loglens/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for contradictions. Aggregation and
// classification never start with an invalid configuration.
func Validate(cfg *Config) error {
	if cfg.Format != "" && cfg.Format != "ndjson" && cfg.Format != "text" {
		return fmt.Errorf("%w: format must be ndjson or text, got %q", ErrInvalid, cfg.Format)
	}
	if cfg.Analyze.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalid, cfg.Analyze.TopK)
	}
	if cfg.Analyze.Retain < 0 {
		return fmt.Errorf("%w: retain must not be negative, got %d", ErrInvalid, cfg.Analyze.Retain)
	}
	if cfg.Analyze.MaxErrorRate < 0 || cfg.Analyze.MaxErrorRate > 1 {
		return fmt.Errorf("%w: max_error_rate must be within [0, 1], got %g", ErrInvalid, cfg.Analyze.MaxErrorRate)
	}
	bucket, err := time.ParseDuration(cfg.Analyze.Bucket)
	if err != nil {
		return fmt.Errorf("%w: bucket %q is not a duration: %v", ErrInvalid, cfg.Analyze.Bucket, err)
	}
	if bucket <= 0 {
		return fmt.Errorf("%w: bucket must be positive, got %s", ErrInvalid, bucket)
	}
	for token, target := range cfg.Analyze.SeverityAliases {
		if sev, ok := domain.ParseSeverity(target, map[string]domain.Severity{}); !ok || sev == domain.SeverityUnknown {
			return fmt.Errorf("%w: severity alias %q maps to unknown severity %q", ErrInvalid, token, target)
		}
	}
	return nil
}

// Aliases converts the configured alias table into domain severities,
// merged over the built-in defaults.
func (c *AnalyzeConfig) Aliases() map[string]domain.Severity {
	aliases := domain.DefaultAliases()
	for token, target := range c.SeverityAliases {
		if sev, ok := domain.ParseSeverity(target, map[string]domain.Severity{}); ok {
			aliases[strings.ToUpper(token)] = sev
		}
	}
	return aliases
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".loglens.yaml", ".loglens.yml", "loglens.yaml", "loglens.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "loglens"))
	}
	searchPaths = append(searchPaths, "/etc/loglens")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOGLENS_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("LOGLENS_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("LOGLENS_LOG_DIR"); v != "" {
		cfg.Analyze.LogDir = v
	}
	if v := os.Getenv("LOGLENS_REPORT_DIR"); v != "" {
		cfg.Analyze.ReportDir = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
