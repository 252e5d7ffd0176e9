package domain

import "time"

// BucketCount is the number of classified records whose timestamps fall
// into one time bucket.
type BucketCount struct {
	Start time.Time
	Count int
}

// MessageCount is an observed message (or message template) and how many
// times it occurred.
type MessageCount struct {
	Message string
	Count   int
}

// Summary is the immutable snapshot of one aggregation run. Once built,
// the aggregation state that produced it can be discarded.
type Summary struct {
	TotalLines     int
	UnparsedLines  int
	SeverityCounts map[Severity]int
	BucketCounts   []BucketCount // chronological
	TopMessages    []MessageCount
	Unmatched      []UnmatchedLine // oldest first, bounded
	BucketSize     time.Duration

	// Observed time window over records with a parseable timestamp.
	WindowStart time.Time
	WindowEnd   time.Time
}

// TimeBucketCount is a rendered per-bucket counter in the report document
type TimeBucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// TopMessage is a rendered top-K entry in the report document
type TopMessage struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ReportDocument is the structured report derived from a Summary. It is
// fully deterministic: no clock, environment, or map-iteration ordering
// leaks into it.
type ReportDocument struct {
	Type          string `json:"type"`          // Always "report"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility

	TotalLines    int     `json:"total_lines"`
	UnparsedLines int     `json:"unparsed_lines"`
	UnparsedRatio float64 `json:"unparsed_ratio"`

	SeverityCounts  map[string]int     `json:"severity_counts"`
	SeverityPercent map[string]float64 `json:"severity_percent"`

	TimeBucketCounts []TimeBucketCount `json:"time_bucket_counts"`
	TopMessages      []TopMessage      `json:"top_messages"`
	UnmatchedSamples []UnmatchedLine   `json:"unmatched_samples,omitempty"`

	WindowStart string `json:"window_start,omitempty"`
	WindowEnd   string `json:"window_end,omitempty"`
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (report package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
