package cli

import (
	"github.com/loglens/loglens/internal/report"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so machine consumers always get structured
// failures.
func outputErrorCommon(globals *Globals, code, message string) error {
	if globals != nil && globals.Format == "ndjson" {
		report.NewNDJSONWriter(globals.Stdout).WriteError(code, message)
	} else if globals != nil {
		report.NewTextWriter(globals.Stderr).WriteError(code, message)
	}
	return &CLIError{Code: code, Message: message}
}

// outputWarning emits a warning in the active format unless quiet is set
func outputWarning(globals *Globals, message string) {
	if globals == nil || globals.Quiet {
		return
	}
	if globals.Format == "ndjson" {
		report.NewNDJSONWriter(globals.Stdout).WriteWarning(message)
		return
	}
	report.NewTextWriter(globals.Stderr).WriteWarning(message)
}
