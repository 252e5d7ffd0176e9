package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglens/loglens/internal/domain"
)

func TestTopK_CapacityOne(t *testing.T) {
	// Two distinct equal-count messages with K=1: the retained entry is the
	// one most recently inserted when capacity was first exceeded.
	top := newTopK(1)
	top.Offer("alpha")
	top.Offer("beta")

	assert.Equal(t, []domain.MessageCount{{Message: "beta", Count: 1}}, top.Ranked())
}

func TestTopK_EqualCountEvictsMostRecentlySeen(t *testing.T) {
	top := newTopK(2)
	top.Offer("alpha")
	top.Offer("beta")
	top.Offer("gamma")

	// alpha and beta tie at count 1; beta was seen more recently, so it is
	// the eviction candidate when gamma arrives.
	ranked := top.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, "alpha", ranked[0].Message)
	assert.Equal(t, "gamma", ranked[1].Message)
}

func TestTopK_HigherCountsAreNotDisplaced(t *testing.T) {
	top := newTopK(2)
	top.Offer("alpha")
	top.Offer("alpha")
	top.Offer("beta")
	top.Offer("beta")
	top.Offer("gamma")

	// Both retained entries have count 2; a first occurrence cannot displace
	// either of them.
	ranked := top.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, "alpha", ranked[0].Message)
	assert.Equal(t, "beta", ranked[1].Message)
}

func TestTopK_RankedOrdering(t *testing.T) {
	top := newTopK(5)
	top.Offer("beta")
	top.Offer("alpha")
	top.Offer("beta")
	top.Offer("alpha")
	top.Offer("gamma")

	// Counts first; ties broken by first-seen order.
	assert.Equal(t, []domain.MessageCount{
		{Message: "beta", Count: 2},
		{Message: "alpha", Count: 2},
		{Message: "gamma", Count: 1},
	}, top.Ranked())
}

func TestTopK_CountsTrackUpdates(t *testing.T) {
	top := newTopK(3)
	for i := 0; i < 5; i++ {
		top.Offer("hot")
	}
	top.Offer("cold")

	assert.Equal(t, []domain.MessageCount{
		{Message: "hot", Count: 5},
		{Message: "cold", Count: 1},
	}, top.Ranked())
}

func TestTopK_Merge(t *testing.T) {
	t.Run("counts add across states", func(t *testing.T) {
		a := newTopK(5)
		a.Offer("disk full")
		a.Offer("disk full")
		a.Offer("ok")

		b := newTopK(5)
		b.Offer("disk full")
		b.Offer("slow")

		a.Merge(b)

		// "slow" was first seen at sequence 2 in its chunk, "ok" at 3, so the
		// merged tie at count 1 keeps that relative order.
		assert.Equal(t, []domain.MessageCount{
			{Message: "disk full", Count: 3},
			{Message: "slow", Count: 1},
			{Message: "ok", Count: 1},
		}, a.Ranked())
	})

	t.Run("merged result stays bounded", func(t *testing.T) {
		a := newTopK(2)
		a.Offer("one")
		a.Offer("one")
		a.Offer("two")

		b := newTopK(2)
		b.Offer("three")
		b.Offer("three")
		b.Offer("three")

		a.Merge(b)

		ranked := a.Ranked()
		require.Len(t, ranked, 2)
		assert.Equal(t, "three", ranked[0].Message)
		assert.Equal(t, 3, ranked[0].Count)
		assert.Equal(t, "one", ranked[1].Message)
		assert.Equal(t, 2, ranked[1].Count)
	})
}
