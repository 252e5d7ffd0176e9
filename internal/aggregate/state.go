package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/loglens/loglens/internal/classify"
	"github.com/loglens/loglens/internal/domain"
)

var (
	// ErrFinalized is returned when a state is used after Finalize. Ingesting
	// into a finalized state would corrupt the summary, so it is a hard error
	// rather than a silent no-op.
	ErrFinalized = errors.New("aggregation state already finalized")

	// ErrBadConfig is returned by New when the supplied options are
	// self-contradictory. It fails fast, before any line is processed.
	ErrBadConfig = errors.New("invalid aggregator configuration")
)

// Options configure one aggregation run
type Options struct {
	// BucketSize is the time-bucket granularity (e.g. one hour).
	BucketSize time.Duration
	// TopK bounds the most-frequent-message structure.
	TopK int
	// UnmatchedRetention bounds how many unmatched lines are kept for
	// diagnostics; oldest are evicted first. Zero retains none.
	UnmatchedRetention int
	// Normalize groups messages by a normalized template (numbers, hex
	// addresses and UUIDs collapsed) instead of the raw string.
	Normalize bool
}

// DefaultOptions returns the standard aggregation options
func DefaultOptions() Options {
	return Options{
		BucketSize:         time.Hour,
		TopK:               10,
		UnmatchedRetention: 20,
	}
}

// State is the mutable accumulator for one analysis run. It has a strict
// single-writer invariant: one run owns it from New to Finalize, and no
// ingestion is allowed afterwards.
type State struct {
	opts Options

	total    int
	unparsed int
	severity map[domain.Severity]int
	buckets  map[time.Time]int
	top      *topK
	retained *retentionRing

	windowSet bool
	windowMin time.Time
	windowMax time.Time

	finalized bool
}

// New creates an aggregation state, validating the options first
func New(opts Options) (*State, error) {
	if opts.TopK <= 0 {
		return nil, fmt.Errorf("%w: top-k capacity must be positive, got %d", ErrBadConfig, opts.TopK)
	}
	if opts.BucketSize <= 0 {
		return nil, fmt.Errorf("%w: bucket size must be positive, got %s", ErrBadConfig, opts.BucketSize)
	}
	if opts.UnmatchedRetention < 0 {
		return nil, fmt.Errorf("%w: unmatched retention must not be negative, got %d", ErrBadConfig, opts.UnmatchedRetention)
	}
	return &State{
		opts:     opts,
		severity: make(map[domain.Severity]int),
		buckets:  make(map[time.Time]int),
		top:      newTopK(opts.TopK),
		retained: newRetentionRing(opts.UnmatchedRetention),
	}, nil
}

// Ingest folds one classified line into the state. Records are ingested in
// source order; counters are commutative but the top-K tie-break is
// order-sensitive, so replays of the same input reproduce the same result.
func (s *State) Ingest(res classify.Result) error {
	if s.finalized {
		return ErrFinalized
	}

	switch {
	case res.Record != nil:
		rec := res.Record
		s.total++
		s.severity[rec.Severity]++
		if rec.Timestamp != nil {
			ts := rec.Timestamp.UTC()
			s.buckets[ts.Truncate(s.opts.BucketSize)]++
			s.observe(ts)
		}
		key := rec.Message
		if s.opts.Normalize {
			key = NormalizeMessage(key)
		}
		s.top.Offer(key)

	case res.Unmatched != nil:
		s.total++
		s.unparsed++
		s.retained.Push(*res.Unmatched)
	}

	return nil
}

// Merge combines another unfinalized state into this one. Counter addition
// is commutative and associative; the top-K structures are k-way merged.
// The other state is consumed and must not be used afterwards.
func (s *State) Merge(other *State) error {
	if s.finalized || other.finalized {
		return ErrFinalized
	}
	if s.opts.BucketSize != other.opts.BucketSize {
		return fmt.Errorf("%w: cannot merge states with bucket sizes %s and %s",
			ErrBadConfig, s.opts.BucketSize, other.opts.BucketSize)
	}

	s.total += other.total
	s.unparsed += other.unparsed
	for sev, n := range other.severity {
		s.severity[sev] += n
	}
	for bucket, n := range other.buckets {
		s.buckets[bucket] += n
	}
	s.top.Merge(other.top)
	for _, u := range other.retained.All() {
		s.retained.Push(u)
	}
	if other.windowSet {
		s.observe(other.windowMin)
		s.observe(other.windowMax)
	}

	other.finalized = true
	return nil
}

// Finalize snapshots the state into an immutable Summary. It succeeds on
// empty and partial state, and may be called exactly once per run.
func (s *State) Finalize() (*domain.Summary, error) {
	if s.finalized {
		return nil, ErrFinalized
	}
	s.finalized = true

	severity := make(map[domain.Severity]int, len(s.severity))
	for sev, n := range s.severity {
		severity[sev] = n
	}

	buckets := make([]domain.BucketCount, 0, len(s.buckets))
	for start, n := range s.buckets {
		buckets = append(buckets, domain.BucketCount{Start: start, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return &domain.Summary{
		TotalLines:     s.total,
		UnparsedLines:  s.unparsed,
		SeverityCounts: severity,
		BucketCounts:   buckets,
		TopMessages:    s.top.Ranked(),
		Unmatched:      s.retained.All(),
		BucketSize:     s.opts.BucketSize,
		WindowStart:    s.windowMin,
		WindowEnd:      s.windowMax,
	}, nil
}

func (s *State) observe(ts time.Time) {
	if !s.windowSet {
		s.windowMin, s.windowMax = ts, ts
		s.windowSet = true
		return
	}
	if ts.Before(s.windowMin) {
		s.windowMin = ts
	}
	if ts.After(s.windowMax) {
		s.windowMax = ts
	}
}
