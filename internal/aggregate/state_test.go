package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/classify"
	"github.com/loglens/loglens/internal/domain"
)

func record(ts string, sev domain.Severity, msg string) classify.Result {
	rec := &domain.LogRecord{Severity: sev, Message: msg}
	if ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			panic(err)
		}
		rec.Timestamp = &t
	}
	return classify.Result{Record: rec}
}

func unmatched(text string, lineNo int) classify.Result {
	return classify.Result{Unmatched: &domain.UnmatchedLine{Text: text, LineNo: lineNo}}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "zero top-k", opts: Options{BucketSize: time.Hour, TopK: 0}},
		{name: "negative top-k", opts: Options{BucketSize: time.Hour, TopK: -1}},
		{name: "zero bucket size", opts: Options{BucketSize: 0, TopK: 10}},
		{name: "negative retention", opts: Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := New(tt.opts)
			assert.Nil(t, state)
			assert.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestState_ConcreteScenario(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 5, UnmatchedRetention: 10})
	require.NoError(t, err)

	inputs := []classify.Result{
		record("2024-01-01T10:00:00Z", domain.SeverityError, "disk full"),
		record("2024-01-01T10:05:00Z", domain.SeverityInfo, "ok"),
		unmatched("garbage line", 3),
		record("2024-01-01T11:00:00Z", domain.SeverityError, "disk full"),
	}
	for _, in := range inputs {
		require.NoError(t, state.Ingest(in))
	}

	summary, err := state.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalLines)
	assert.Equal(t, 1, summary.UnparsedLines)
	assert.Equal(t, map[domain.Severity]int{
		domain.SeverityError: 2,
		domain.SeverityInfo:  1,
	}, summary.SeverityCounts)

	require.Len(t, summary.BucketCounts, 2)
	assert.Equal(t, "2024-01-01T10:00", summary.BucketCounts[0].Start.UTC().Format("2006-01-02T15:04"))
	assert.Equal(t, 2, summary.BucketCounts[0].Count)
	assert.Equal(t, "2024-01-01T11:00", summary.BucketCounts[1].Start.UTC().Format("2006-01-02T15:04"))
	assert.Equal(t, 1, summary.BucketCounts[1].Count)

	assert.Equal(t, []domain.MessageCount{
		{Message: "disk full", Count: 2},
		{Message: "ok", Count: 1},
	}, summary.TopMessages)

	require.Len(t, summary.Unmatched, 1)
	assert.Equal(t, "garbage line", summary.Unmatched[0].Text)
}

func TestState_CounterInvariant(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 5})
	require.NoError(t, err)

	severities := []domain.Severity{
		domain.SeverityDebug, domain.SeverityInfo, domain.SeverityWarning,
		domain.SeverityError, domain.SeverityCritical, domain.SeverityUnknown,
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		if rng.Intn(5) == 0 {
			require.NoError(t, state.Ingest(unmatched("junk", i)))
			continue
		}
		sev := severities[rng.Intn(len(severities))]
		require.NoError(t, state.Ingest(record("", sev, "msg")))
	}

	summary, err := state.Finalize()
	require.NoError(t, err)

	classified := 0
	for _, n := range summary.SeverityCounts {
		classified += n
	}
	assert.Equal(t, summary.TotalLines, summary.UnparsedLines+classified)
}

func TestState_BucketInvariant(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 5})
	require.NoError(t, err)

	// Two records with timestamps, one without.
	require.NoError(t, state.Ingest(record("2024-01-01T10:00:00Z", domain.SeverityInfo, "a")))
	require.NoError(t, state.Ingest(record("2024-01-01T12:30:00Z", domain.SeverityInfo, "b")))
	require.NoError(t, state.Ingest(record("", domain.SeverityInfo, "c")))

	summary, err := state.Finalize()
	require.NoError(t, err)

	bucketed := 0
	for _, b := range summary.BucketCounts {
		bucketed += b.Count
	}
	assert.Equal(t, 2, bucketed, "bucket counters cover only records with a resolvable timestamp")
	assert.Equal(t, 3, summary.SeverityCounts[domain.SeverityInfo])
}

func TestState_IngestAfterFinalize(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 5})
	require.NoError(t, err)

	_, err = state.Finalize()
	require.NoError(t, err)

	err = state.Ingest(record("", domain.SeverityInfo, "late"))
	assert.ErrorIs(t, err, ErrFinalized)

	_, err = state.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestState_EmptyFinalize(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 5})
	require.NoError(t, err)

	summary, err := state.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalLines)
	assert.Equal(t, 0, summary.UnparsedLines)
	assert.Empty(t, summary.SeverityCounts)
	assert.Empty(t, summary.BucketCounts)
	assert.Empty(t, summary.TopMessages)
	assert.Empty(t, summary.Unmatched)
}

func TestState_OrderIndependentCounters(t *testing.T) {
	inputs := []classify.Result{
		record("2024-01-01T10:00:00Z", domain.SeverityError, "a"),
		record("2024-01-01T10:30:00Z", domain.SeverityInfo, "b"),
		record("2024-01-01T11:00:00Z", domain.SeverityError, "c"),
		unmatched("junk", 4),
		record("2024-01-01T12:00:00Z", domain.SeverityWarning, "d"),
	}

	run := func(order []int) *domain.Summary {
		state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 5})
		require.NoError(t, err)
		for _, i := range order {
			require.NoError(t, state.Ingest(inputs[i]))
		}
		summary, err := state.Finalize()
		require.NoError(t, err)
		return summary
	}

	forward := run([]int{0, 1, 2, 3, 4})
	reversed := run([]int{4, 3, 2, 1, 0})

	assert.Equal(t, forward.SeverityCounts, reversed.SeverityCounts)
	assert.Equal(t, forward.BucketCounts, reversed.BucketCounts)
	assert.Equal(t, forward.TotalLines, reversed.TotalLines)
	assert.Equal(t, forward.UnparsedLines, reversed.UnparsedLines)
}

func TestState_MergeMatchesSequential(t *testing.T) {
	inputs := []classify.Result{
		record("2024-01-01T10:00:00Z", domain.SeverityError, "disk full"),
		record("2024-01-01T10:05:00Z", domain.SeverityInfo, "ok"),
		unmatched("garbage", 3),
		record("2024-01-01T11:00:00Z", domain.SeverityError, "disk full"),
		record("2024-01-01T11:30:00Z", domain.SeverityWarning, "slow"),
	}
	opts := Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 10}

	sequential, err := New(opts)
	require.NoError(t, err)
	for _, in := range inputs {
		require.NoError(t, sequential.Ingest(in))
	}
	want, err := sequential.Finalize()
	require.NoError(t, err)

	left, err := New(opts)
	require.NoError(t, err)
	right, err := New(opts)
	require.NoError(t, err)
	for _, in := range inputs[:2] {
		require.NoError(t, left.Ingest(in))
	}
	for _, in := range inputs[2:] {
		require.NoError(t, right.Ingest(in))
	}
	require.NoError(t, left.Merge(right))
	got, err := left.Finalize()
	require.NoError(t, err)

	assert.Equal(t, want.TotalLines, got.TotalLines)
	assert.Equal(t, want.UnparsedLines, got.UnparsedLines)
	assert.Equal(t, want.SeverityCounts, got.SeverityCounts)
	assert.Equal(t, want.BucketCounts, got.BucketCounts)
	assert.Equal(t, want.WindowStart, got.WindowStart)
	assert.Equal(t, want.WindowEnd, got.WindowEnd)
	assert.ElementsMatch(t, want.TopMessages, got.TopMessages)

	// A consumed state cannot be used again.
	assert.ErrorIs(t, right.Ingest(inputs[0]), ErrFinalized)
}

func TestState_MergeRejectsMismatchedBuckets(t *testing.T) {
	a, err := New(Options{BucketSize: time.Hour, TopK: 10})
	require.NoError(t, err)
	b, err := New(Options{BucketSize: time.Minute, TopK: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, a.Merge(b), ErrBadConfig)
}

func TestState_UnmatchedRetentionEvictsOldest(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 2})
	require.NoError(t, err)

	require.NoError(t, state.Ingest(unmatched("first", 1)))
	require.NoError(t, state.Ingest(unmatched("second", 2)))
	require.NoError(t, state.Ingest(unmatched("third", 3)))

	summary, err := state.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 3, summary.UnparsedLines)
	require.Len(t, summary.Unmatched, 2)
	assert.Equal(t, "second", summary.Unmatched[0].Text)
	assert.Equal(t, "third", summary.Unmatched[1].Text)
}

func TestState_ZeroRetention(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, UnmatchedRetention: 0})
	require.NoError(t, err)

	require.NoError(t, state.Ingest(unmatched("junk", 1)))

	summary, err := state.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.UnparsedLines)
	assert.Empty(t, summary.Unmatched)
}

func TestState_NormalizedKeys(t *testing.T) {
	state, err := New(Options{BucketSize: time.Hour, TopK: 10, Normalize: true})
	require.NoError(t, err)

	require.NoError(t, state.Ingest(record("", domain.SeverityError, "request 17 failed")))
	require.NoError(t, state.Ingest(record("", domain.SeverityError, "request 99 failed")))

	summary, err := state.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []domain.MessageCount{{Message: "request <n> failed", Count: 2}}, summary.TopMessages)
}
