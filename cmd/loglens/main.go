package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/loglens/loglens/internal/cli"
	"github.com/loglens/loglens/internal/config"
)

const quickStart = `loglens - aggregate statistics from log files

START HERE (this is the command you want):
  loglens analyze app.log

Flags:
  -f    Output format: text or ndjson (default: text on a TTY)
  -v    Verbose diagnostics on stderr

Other useful commands:
  loglens analyze --dir /var/log/myapp   Analyze the latest rotated log
  loglens latest /var/log/myapp          Show the latest rotated log
  loglens examples                       Usage examples for all commands
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":         defaultFormat(cfg),
		"config_bucket":         cfg.Analyze.Bucket,
		"config_top":            fmt.Sprintf("%d", cfg.Analyze.TopK),
		"config_retain":         fmt.Sprintf("%d", cfg.Analyze.Retain),
		"config_max_error_rate": fmt.Sprintf("%g", cfg.Analyze.MaxErrorRate),
		"config_prefix":         cfg.Analyze.LogPrefix,
		"config_report_dir":     cfg.Analyze.ReportDir,
	}

	ctx := kong.Parse(&c,
		kong.Name("loglens"),
		kong.Description("Aggregate severity, time-bucket and message statistics from log files\n\nSTART HERE: loglens analyze <file>"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobals(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}

// defaultFormat resolves the output format when the config does not pin
// one: text for humans on a TTY, ndjson for pipes and agents.
func defaultFormat(cfg *config.Config) string {
	if cfg.Format != "" {
		return cfg.Format
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "text"
	}
	return "ndjson"
}
