package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/loglens/loglens/internal/aggregate"
	"github.com/loglens/loglens/internal/classify"
	"github.com/loglens/loglens/internal/domain"
	"github.com/loglens/loglens/internal/report"
	"github.com/loglens/loglens/internal/source"
)

// AnalyzeCmd analyzes a log file and emits an aggregated report
type AnalyzeCmd struct {
	File string `arg:"" optional:"" help:"Log file to analyze (.gz supported)"`
	Dir  string `help:"Discover the latest rotated log in this directory instead of naming a file"`

	Prefix       string        `help:"Rotated log filename prefix used with --dir" default:"${config_prefix}"`
	Bucket       time.Duration `help:"Time bucket granularity" default:"${config_bucket}"`
	Top          int           `help:"Number of most frequent messages to keep" default:"${config_top}"`
	Retain       int           `help:"Unmatched lines retained for diagnostics" default:"${config_retain}"`
	MaxErrorRate float64       `help:"Warn when the unparsed ratio exceeds this" default:"${config_max_error_rate}"`
	Normalize    bool          `help:"Group messages by normalized template (numbers, hex, UUIDs collapsed)"`
	ReportDir    string        `help:"Write a report-YYYY.MM.DD.json artifact into this directory" default:"${config_report_dir}"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	start := globals.Clock.Now()

	path, logDate, err := c.resolveInput(globals)
	if err != nil {
		return err
	}

	// The original analyzer convention: one report per rotated log. When a
	// date is known and the artifact exists, the work is already done.
	var artifactPath string
	if c.ReportDir != "" {
		if logDate.IsZero() {
			outputWarning(globals, "cannot derive report name: input filename carries no YYYYMMDD date, skipping artifact")
		} else {
			artifactPath = filepath.Join(c.ReportDir, logDate.Format("report-2006.01.02.json"))
			if _, err := os.Stat(artifactPath); err == nil {
				return c.outputInfo(globals, "report already exists", artifactPath)
			}
		}
	}

	classifier := classify.New(classify.Options{
		TimestampLayouts: globals.Config.Analyze.TimestampLayouts,
		Aliases:          globals.Config.Analyze.Aliases(),
	})

	state, err := aggregate.New(aggregate.Options{
		BucketSize:         c.Bucket,
		TopK:               c.Top,
		UnmatchedRetention: c.Retain,
		Normalize:          c.Normalize,
	})
	if err != nil {
		return c.outputError(globals, "BAD_CONFIG", err.Error())
	}

	reader, err := source.Open(path)
	if err != nil {
		return c.outputError(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	defer func() {
		if err := reader.Close(); err != nil {
			globals.Log.Debug("failed to close input", zap.Error(err))
		}
	}()

	for reader.Scan() {
		res := classifier.Classify(reader.Line(), reader.LineNo())
		if res.Unmatched != nil {
			globals.Log.Debug("unmatched line", zap.Int("line", res.Unmatched.LineNo))
		}
		if err := state.Ingest(res); err != nil {
			return c.outputError(globals, "INGEST_FAILED", err.Error())
		}
	}
	if err := reader.Err(); err != nil {
		// Partial state still finalizes; the report covers what was read.
		outputWarning(globals, fmt.Sprintf("input truncated: %s", err))
	}

	summary, err := state.Finalize()
	if err != nil {
		return c.outputError(globals, "FINALIZE_FAILED", err.Error())
	}
	doc := report.Build(summary)

	if doc.TotalLines > 0 && doc.UnparsedRatio > c.MaxErrorRate {
		outputWarning(globals, fmt.Sprintf("unparsed ratio %.2f exceeds threshold %.2f: check parser coverage for %s",
			doc.UnparsedRatio, c.MaxErrorRate, path))
	}

	if globals.Format == "ndjson" {
		if err := report.NewNDJSONWriter(globals.Stdout).WriteReport(doc); err != nil {
			return err
		}
	} else {
		if err := report.NewTextWriter(globals.Stdout).WriteReport(doc); err != nil {
			return err
		}
	}

	if artifactPath != "" {
		if err := writeArtifact(artifactPath, doc); err != nil {
			return c.outputError(globals, "REPORT_WRITE_FAILED", err.Error())
		}
		if !globals.Quiet {
			if err := c.outputInfo(globals, "report created", artifactPath); err != nil {
				return err
			}
		}
	}

	globals.Log.Debug("analysis complete",
		zap.String("path", path),
		zap.Int("lines", doc.TotalLines),
		zap.Int("unparsed", doc.UnparsedLines),
		zap.Duration("elapsed", globals.Clock.Since(start)))

	return nil
}

// resolveInput picks the input file: an explicit argument, or the latest
// rotated log discovered under --dir.
func (c *AnalyzeCmd) resolveInput(globals *Globals) (string, time.Time, error) {
	if c.File != "" {
		date, _ := source.DateFromName(c.File)
		return c.File, date, nil
	}

	dir := c.Dir
	if dir == "" {
		dir = globals.Config.Analyze.LogDir
	}
	if dir == "" {
		return "", time.Time{}, c.outputError(globals, "NO_INPUT", "provide a log file or --dir to discover one")
	}

	latest, err := source.FindLatest(dir, c.Prefix)
	if errors.Is(err, source.ErrNoLogFound) {
		return "", time.Time{}, c.outputError(globals, "NO_LOG_FOUND", fmt.Sprintf("no rotated log found in %s", dir))
	}
	if err != nil {
		return "", time.Time{}, c.outputError(globals, "DISCOVERY_FAILED", err.Error())
	}

	globals.Log.Debug("discovered latest log", zap.String("path", latest.Path), zap.Bool("compressed", latest.Compressed))
	return latest.Path, latest.Date, nil
}

func writeArtifact(path string, doc *domain.ReportDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (c *AnalyzeCmd) outputInfo(globals *Globals, message, path string) error {
	if globals.Format == "ndjson" {
		return report.NewNDJSONWriter(globals.Stdout).WriteInfo(message, path)
	}
	_, err := fmt.Fprintf(globals.Stdout, "%s: %s\n", message, path)
	return err
}

func (c *AnalyzeCmd) outputError(globals *Globals, code, message string) error {
	return outputErrorCommon(globals, code, message)
}
