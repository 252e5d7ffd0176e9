package cli

import (
	"encoding/json"
	"fmt"

	"github.com/loglens/loglens/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"analyze": cfg.Analyze,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Analyze defaults:")
	fmt.Fprintf(globals.Stdout, "  bucket:         %s\n", cfg.Analyze.Bucket)
	fmt.Fprintf(globals.Stdout, "  top_k:          %d\n", cfg.Analyze.TopK)
	fmt.Fprintf(globals.Stdout, "  retain:         %d\n", cfg.Analyze.Retain)
	fmt.Fprintf(globals.Stdout, "  max_error_rate: %g\n", cfg.Analyze.MaxErrorRate)

	if cfg.Analyze.LogDir != "" {
		fmt.Fprintf(globals.Stdout, "  log_dir:        %s\n", cfg.Analyze.LogDir)
	}
	if cfg.Analyze.LogPrefix != "" {
		fmt.Fprintf(globals.Stdout, "  log_prefix:     %s\n", cfg.Analyze.LogPrefix)
	}
	if cfg.Analyze.ReportDir != "" {
		fmt.Fprintf(globals.Stdout, "  report_dir:     %s\n", cfg.Analyze.ReportDir)
	}
	if len(cfg.Analyze.TimestampLayouts) > 0 {
		fmt.Fprintf(globals.Stdout, "  timestamp_layouts: %v\n", cfg.Analyze.TimestampLayouts)
	}
	if len(cfg.Analyze.SeverityAliases) > 0 {
		fmt.Fprintf(globals.Stdout, "  severity_aliases:  %v\n", cfg.Analyze.SeverityAliases)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ~/.loglens.yaml")
		fmt.Fprintln(globals.Stdout, "  ./.loglens.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/loglens/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# loglens configuration file
# Place this file at ~/.loglens.yaml, ./.loglens.yaml, or ~/.config/loglens/config.yaml

# Output format: "ndjson" or "text" (default: text on a TTY, ndjson otherwise)
# format: ndjson

# Suppress non-report output (info messages, warnings)
quiet: false

# Enable verbose/debug output
verbose: false

# Default values for the analyze command
analyze:
  # Time bucket granularity for per-bucket counters
  bucket: 1h

  # How many of the most frequent messages to keep
  top_k: 10

  # How many unmatched lines to retain for diagnostics (oldest evicted first)
  retain: 20

  # Warn when the unparsed-line ratio exceeds this threshold
  max_error_rate: 0.8

  # Directory searched for rotated logs (analyze --dir / latest)
  # log_dir: /var/log/myapp

  # Rotated log filename prefix, e.g. "access.log"
  # log_prefix: access.log

  # Where report-YYYY.MM.DD.json artifacts are written
  # report_dir: ./reports

  # Extra timestamp layouts (Go reference-time syntax), tried before giving up
  # timestamp_layouts:
  #   - "2006-01-02 15:04:05 MST"

  # Extra severity aliases mapped onto the canonical set
  # severity_aliases:
  #   SEVERE: ERROR
  #   EMERG: CRITICAL
`
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
