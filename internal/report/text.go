package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/loglens/loglens/internal/domain"
)

// TextWriter renders report output as styled, human-readable text. Output
// is byte-identical for the same document.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteReport renders the full report
func (w *TextWriter) WriteReport(doc *domain.ReportDocument) error {
	if _, err := fmt.Fprintln(w.w, Styles.Header.Render("Log Analysis Report")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.w); err != nil {
		return err
	}

	status := StatusText(doc.SeverityCounts[string(domain.SeverityError)], doc.SeverityCounts[string(domain.SeverityCritical)])
	if _, err := fmt.Fprintf(w.w, "%s %s\n\n", Styles.Label.Render("Status:"), status); err != nil {
		return err
	}

	if doc.WindowStart != "" {
		if _, err := fmt.Fprintf(w.w, "%s %s to %s\n",
			Styles.Label.Render("Window:"), doc.WindowStart, doc.WindowEnd); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w.w, "%s %s\n",
		Styles.Label.Render("Total lines:"), Styles.Value.Render(strconv.Itoa(doc.TotalLines))); err != nil {
		return err
	}
	unparsed := fmt.Sprintf("%d (%.2f%%)", doc.UnparsedLines, doc.UnparsedRatio*100)
	if _, err := fmt.Fprintf(w.w, "%s %s\n\n",
		Styles.Label.Render("Unparsed lines:"), Styles.Value.Render(unparsed)); err != nil {
		return err
	}

	if err := w.writeSeverityTable(doc); err != nil {
		return err
	}
	if err := w.writeBucketTable(doc); err != nil {
		return err
	}
	if err := w.writeTopMessages(doc); err != nil {
		return err
	}
	return w.writeUnmatched(doc)
}

func (w *TextWriter) writeSeverityTable(doc *domain.ReportDocument) error {
	if len(doc.SeverityCounts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.w, Styles.Value.Render("Severity")); err != nil {
		return err
	}

	table := tablewriter.NewTable(w.w)
	table.Header([]string{"Severity", "Count", "Percent"})

	severities := append(domain.Severities(), domain.SeverityUnknown)
	for _, sev := range severities {
		count, ok := doc.SeverityCounts[string(sev)]
		if !ok {
			continue
		}
		table.Append([]string{
			SeverityStyle(string(sev)).Render(string(sev)),
			strconv.Itoa(count),
			fmt.Sprintf("%.2f%%", doc.SeverityPercent[string(sev)]),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.w)
	return err
}

func (w *TextWriter) writeBucketTable(doc *domain.ReportDocument) error {
	if len(doc.TimeBucketCounts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.w, Styles.Value.Render("Time buckets")); err != nil {
		return err
	}

	table := tablewriter.NewTable(w.w)
	table.Header([]string{"Bucket", "Count"})
	for _, b := range doc.TimeBucketCounts {
		table.Append([]string{b.Bucket, strconv.Itoa(b.Count)})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.w)
	return err
}

func (w *TextWriter) writeTopMessages(doc *domain.ReportDocument) error {
	if len(doc.TopMessages) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.w, Styles.Value.Render("Top messages")); err != nil {
		return err
	}
	for _, m := range doc.TopMessages {
		if _, err := fmt.Fprintf(w.w, "  (%dx) %s\n", m.Count, m.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.w)
	return err
}

func (w *TextWriter) writeUnmatched(doc *domain.ReportDocument) error {
	if len(doc.UnmatchedSamples) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.w, Styles.Value.Render("Unmatched samples")); err != nil {
		return err
	}
	for _, u := range doc.UnmatchedSamples {
		line := fmt.Sprintf("  line %d: %s", u.LineNo, u.Text)
		if _, err := fmt.Fprintln(w.w, Styles.Muted.Render(line)); err != nil {
			return err
		}
	}
	return nil
}

// WriteError outputs a styled error
func (w *TextWriter) WriteError(code, message string) error {
	errorLabel := Styles.Danger.Render("Error")
	codeStr := Styles.Warning.Render("[" + code + "]")
	_, err := fmt.Fprintf(w.w, "%s %s: %s\n", errorLabel, codeStr, message)
	return err
}

// WriteWarning outputs a styled warning
func (w *TextWriter) WriteWarning(message string) error {
	_, err := fmt.Fprintf(w.w, "%s %s\n", Styles.Warning.Render("Warning:"), message)
	return err
}
