package domain

import (
	"strings"
	"time"
)

// Severity represents the ordered classification of a log event's importance
type Severity string

const (
	SeverityDebug    Severity = "DEBUG"
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
	SeverityUnknown  Severity = "UNKNOWN"
)

// Rank returns the ordering of a severity (higher = more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityDebug:
		return 0
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityCritical:
		return 4
	default:
		return -1
	}
}

// Severities returns the known severities in ascending order of importance
func Severities() []Severity {
	return []Severity{
		SeverityDebug,
		SeverityInfo,
		SeverityWarning,
		SeverityError,
		SeverityCritical,
	}
}

// DefaultAliases maps common shorthand tokens to canonical severities
func DefaultAliases() map[string]Severity {
	return map[string]Severity{
		"TRACE":  SeverityDebug,
		"NOTICE": SeverityInfo,
		"WARN":   SeverityWarning,
		"ERR":    SeverityError,
		"FATAL":  SeverityCritical,
		"CRIT":   SeverityCritical,
	}
}

// ParseSeverity converts a token to a Severity, case-insensitively.
// The aliases map supplements the canonical names; pass nil for the defaults.
// Unrecognized tokens map to SeverityUnknown with ok=false rather than
// failing, so a line with an odd level token can still be classified.
func ParseSeverity(token string, aliases map[string]Severity) (Severity, bool) {
	upper := strings.ToUpper(strings.TrimSpace(token))
	switch Severity(upper) {
	case SeverityDebug, SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return Severity(upper), true
	}
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if sev, ok := aliases[upper]; ok {
		return sev, true
	}
	return SeverityUnknown, false
}

// LogRecord represents one successfully classified log line. It is never
// mutated after the classifier returns it.
type LogRecord struct {
	Timestamp *time.Time // nil when no configured layout parsed the line
	Severity  Severity
	Message   string
}

// UnmatchedLine is a line that failed classification, kept with its
// position for diagnostics. It is never promoted to a LogRecord.
type UnmatchedLine struct {
	Text   string `json:"text"`
	LineNo int    `json:"line"`
}
