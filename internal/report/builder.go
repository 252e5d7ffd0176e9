package report

import (
	"math"
	"time"

	"github.com/loglens/loglens/internal/domain"
)

// SchemaVersion identifies the report document schema
const SchemaVersion = 1

// bucketLayout renders bucket keys at minute precision regardless of
// granularity, e.g. "2024-01-01T10:00" for hourly buckets.
const bucketLayout = "2006-01-02T15:04"

// Build renders a finalized summary into a report document. It is a pure
// transformation of the summary: the same input always yields the same
// document, and an empty summary yields a valid empty report.
func Build(s *domain.Summary) *domain.ReportDocument {
	doc := &domain.ReportDocument{
		Type:             "report",
		SchemaVersion:    SchemaVersion,
		TotalLines:       s.TotalLines,
		UnparsedLines:    s.UnparsedLines,
		SeverityCounts:   make(map[string]int, len(s.SeverityCounts)),
		SeverityPercent:  make(map[string]float64, len(s.SeverityCounts)),
		TimeBucketCounts: make([]domain.TimeBucketCount, 0, len(s.BucketCounts)),
		TopMessages:      make([]domain.TopMessage, 0, len(s.TopMessages)),
	}

	if s.TotalLines > 0 {
		doc.UnparsedRatio = round6(float64(s.UnparsedLines) / float64(s.TotalLines))
	}

	for sev, n := range s.SeverityCounts {
		doc.SeverityCounts[string(sev)] = n
		if s.TotalLines > 0 {
			doc.SeverityPercent[string(sev)] = round6(float64(n) / float64(s.TotalLines) * 100)
		}
	}

	for _, b := range s.BucketCounts {
		doc.TimeBucketCounts = append(doc.TimeBucketCounts, domain.TimeBucketCount{
			Bucket: b.Start.UTC().Format(bucketLayout),
			Count:  b.Count,
		})
	}

	for _, m := range s.TopMessages {
		doc.TopMessages = append(doc.TopMessages, domain.TopMessage{
			Message: m.Message,
			Count:   m.Count,
		})
	}

	if len(s.Unmatched) > 0 {
		doc.UnmatchedSamples = append([]domain.UnmatchedLine(nil), s.Unmatched...)
	}

	if !s.WindowStart.IsZero() {
		doc.WindowStart = s.WindowStart.UTC().Format(time.RFC3339)
		doc.WindowEnd = s.WindowEnd.UTC().Format(time.RFC3339)
	}

	return doc
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
