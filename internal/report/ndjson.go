package report

import (
	"encoding/json"
	"io"

	"github.com/loglens/loglens/internal/domain"
)

// NDJSONWriter writes report output as NDJSON
type NDJSONWriter struct {
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep log text unescaped and avoid extra allocations
	return &NDJSONWriter{encoder: enc}
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Path          string `json:"path,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// WriteReport outputs a report document
func (w *NDJSONWriter) WriteReport(doc *domain.ReportDocument) error {
	return w.encoder.Encode(doc)
}

// WriteError outputs a structured error
func (w *NDJSONWriter) WriteError(code, message string) error {
	out := domain.NewErrorOutput(code, message)
	out.SchemaVersion = SchemaVersion
	return w.encoder.Encode(out)
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, path string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Path:          path,
	})
}
