package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/loglens/loglens/internal/config"
	"github.com/loglens/loglens/internal/logging"
)

// CLI is the root command structure for loglens
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress non-report output (info messages, warnings)"`
	Verbose bool   `short:"v" help:"Show debug output (classification misses, timings)"`

	// Commands
	Analyze  AnalyzeCmd  `cmd:"" default:"withargs" help:"Analyze a log file and emit an aggregated report"`
	Latest   LatestCmd   `cmd:"" help:"Show the latest rotated log in a directory"`
	Config   ConfigCmd   `cmd:"" help:"Show or manage configuration"`
	Examples ExamplesCmd `cmd:"" help:"Show usage examples for loglens commands"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Log     *zap.Logger
	Clock   clock.Clock
}

// NewGlobals creates a new Globals instance from CLI flags and config
func NewGlobals(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}

	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Clock:   clock.New(),
	}

	// Config values apply when CLI flags weren't explicitly set
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = cfg.Quiet
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = cfg.Verbose
	}

	g.Log = logging.New(g.Verbose)
	return g
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		_, err := io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := fmt.Fprintf(globals.Stdout, "loglens version %s (%s)\n", Version, Commit)
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
