package classify

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/loglens/loglens/internal/domain"
)

// Result is the outcome of classifying one raw line. Exactly one of
// Record and Unmatched is non-nil.
type Result struct {
	Record    *domain.LogRecord
	Unmatched *domain.UnmatchedLine
}

// Options configure the classifier. Zero values fall back to the defaults.
type Options struct {
	// TimestampLayouts are tried in order; the first successful parse wins.
	TimestampLayouts []string
	// Aliases supplements the canonical severity names (e.g. WARN -> WARNING).
	Aliases map[string]domain.Severity
}

// DefaultTimestampLayouts returns the timestamp formats accepted out of
// the box. Order matters: more specific layouts come first.
func DefaultTimestampLayouts() []string {
	return []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000000",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		"02/Jan/2006:15:04:05 -0700",
	}
}

// Classifier extracts structured records from raw log lines. It is a pure
// function of its input and the configured pattern set; Classify never
// fails, it always returns one of the two Result variants.
type Classifier struct {
	layouts []string
	aliases map[string]domain.Severity
}

// New creates a classifier with the given options
func New(opts Options) *Classifier {
	layouts := opts.TimestampLayouts
	if len(layouts) == 0 {
		layouts = DefaultTimestampLayouts()
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = domain.DefaultAliases()
	}
	return &Classifier{layouts: layouts, aliases: aliases}
}

// Classify parses one raw line (no embedded newline) into a LogRecord, or
// an UnmatchedLine when no pattern applies. Patterns are attempted in a
// fixed priority order, which also resolves any ambiguity between them.
func (c *Classifier) Classify(line string, lineNo int) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{Unmatched: &domain.UnmatchedLine{Text: line, LineNo: lineNo}}
	}

	for _, try := range []func(string) *domain.LogRecord{
		c.tryTimestampSeverity,
		c.tryBracketedTimestamp,
		c.tryJSON,
		c.trySeverityPrefix,
		c.tryTimestampOnly,
	} {
		if rec := try(trimmed); rec != nil {
			return Result{Record: rec}
		}
	}

	return Result{Unmatched: &domain.UnmatchedLine{Text: line, LineNo: lineNo}}
}

// tryTimestampSeverity matches "TIMESTAMP SEVERITY MESSAGE"
func (c *Classifier) tryTimestampSeverity(s string) *domain.LogRecord {
	ts, rest := c.leadingTimestamp(s)
	if ts == nil || rest == "" {
		return nil
	}
	token, message := splitToken(rest)
	sev, ok := domain.ParseSeverity(strings.TrimSuffix(token, ":"), c.aliases)
	if !ok {
		// Unrecognized severity token: handled by tryTimestampOnly so the
		// token stays part of the message.
		return nil
	}
	return &domain.LogRecord{Timestamp: ts, Severity: sev, Message: message}
}

// tryBracketedTimestamp matches "[TIMESTAMP] SEVERITY MESSAGE". A line with
// a recognizable timestamp but an odd severity token still classifies, with
// severity UNKNOWN and the token folded into the message.
func (c *Classifier) tryBracketedTimestamp(s string) *domain.LogRecord {
	if !strings.HasPrefix(s, "[") {
		return nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return nil
	}
	ts := c.parseTimestamp(strings.TrimSpace(s[1:end]))
	if ts == nil {
		return nil
	}
	rest := strings.TrimSpace(s[end+1:])
	token, message := splitToken(rest)
	if sev, ok := domain.ParseSeverity(strings.TrimSuffix(token, ":"), c.aliases); ok {
		return &domain.LogRecord{Timestamp: ts, Severity: sev, Message: message}
	}
	return &domain.LogRecord{Timestamp: ts, Severity: domain.SeverityUnknown, Message: rest}
}

// tryJSON matches single-object JSON lines, extracting the conventional
// timestamp/level/message keys without a full unmarshal.
func (c *Classifier) tryJSON(s string) *domain.LogRecord {
	if !strings.HasPrefix(s, "{") || !gjson.Valid(s) {
		return nil
	}

	msg := firstResult(s, "msg", "message")
	if !msg.Exists() {
		return nil
	}

	sev := domain.SeverityUnknown
	if level := firstResult(s, "level", "severity", "lvl"); level.Exists() {
		sev, _ = domain.ParseSeverity(level.String(), c.aliases)
	}

	var ts *time.Time
	if raw := firstResult(s, "timestamp", "time", "ts"); raw.Exists() {
		if raw.Type == gjson.Number {
			t := time.Unix(raw.Int(), 0).UTC()
			ts = &t
		} else {
			ts = c.parseTimestamp(raw.String())
		}
	}

	return &domain.LogRecord{Timestamp: ts, Severity: sev, Message: msg.String()}
}

// trySeverityPrefix matches "SEVERITY: MESSAGE" (colon optional). The token
// must be a recognized severity; timestamp absence does not block
// classification here.
func (c *Classifier) trySeverityPrefix(s string) *domain.LogRecord {
	token, message := splitToken(s)
	sev, ok := domain.ParseSeverity(strings.TrimSuffix(token, ":"), c.aliases)
	if !ok {
		return nil
	}
	return &domain.LogRecord{Severity: sev, Message: message}
}

// tryTimestampOnly matches "TIMESTAMP MESSAGE" where no recognized severity
// follows the timestamp. The record carries severity UNKNOWN.
func (c *Classifier) tryTimestampOnly(s string) *domain.LogRecord {
	ts, rest := c.leadingTimestamp(s)
	if ts == nil {
		return nil
	}
	return &domain.LogRecord{Timestamp: ts, Severity: domain.SeverityUnknown, Message: rest}
}

// leadingTimestamp tries to parse a timestamp from the front of the line.
// Layouts may contain a single internal space (date + time), so one- and
// two-token prefixes are both attempted.
func (c *Classifier) leadingTimestamp(s string) (*time.Time, string) {
	first := strings.IndexAny(s, " \t")
	candidates := make([]int, 0, 2)
	if first < 0 {
		candidates = append(candidates, len(s))
	} else {
		candidates = append(candidates, first)
		second := strings.IndexAny(s[first+1:], " \t")
		if second < 0 {
			candidates = append(candidates, len(s))
		} else {
			candidates = append(candidates, first+1+second)
		}
	}

	for _, end := range candidates {
		if ts := c.parseTimestamp(s[:end]); ts != nil {
			return ts, strings.TrimSpace(s[end:])
		}
	}
	return nil, s
}

// parseTimestamp walks the configured layouts; first success wins.
func (c *Classifier) parseTimestamp(s string) *time.Time {
	for _, layout := range c.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// splitToken splits off the first whitespace-delimited token
func splitToken(s string) (token, rest string) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

func firstResult(json string, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := gjson.Get(json, p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
