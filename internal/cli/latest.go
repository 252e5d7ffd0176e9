package cli

import (
	"errors"
	"fmt"

	"github.com/loglens/loglens/internal/report"
	"github.com/loglens/loglens/internal/source"
)

// LatestCmd shows the latest rotated log in a directory
type LatestCmd struct {
	Dir    string `arg:"" optional:"" help:"Directory to search (default: configured log_dir or .)"`
	Prefix string `help:"Rotated log filename prefix" default:"${config_prefix}"`
}

// Run executes the latest command
func (c *LatestCmd) Run(globals *Globals) error {
	dir := c.Dir
	if dir == "" {
		dir = globals.Config.Analyze.LogDir
	}
	if dir == "" {
		dir = "."
	}

	latest, err := source.FindLatest(dir, c.Prefix)
	if errors.Is(err, source.ErrNoLogFound) {
		return outputErrorCommon(globals, "NO_LOG_FOUND", fmt.Sprintf("no rotated log found in %s", dir))
	}
	if err != nil {
		return outputErrorCommon(globals, "DISCOVERY_FAILED", err.Error())
	}

	if globals.Format == "ndjson" {
		return report.NewNDJSONWriter(globals.Stdout).WriteInfo("latest log", latest.Path)
	}
	_, err = fmt.Fprintln(globals.Stdout, latest.Path)
	return err
}
