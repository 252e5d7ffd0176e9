package aggregate

import (
	"sort"

	"github.com/loglens/loglens/internal/domain"
)

// topEntry tracks one retained message key. The first/last-seen sequence
// numbers make ordering and eviction deterministic for a given input order.
type topEntry struct {
	key       string
	count     int
	firstSeen uint64
	lastSeen  uint64
}

// topK is a bounded frequency structure: at most k distinct keys with the
// highest observed counts. When a new distinct key arrives at capacity it
// displaces the weakest retained entry only if that entry's count is down
// at the newcomer's level; among equal-count candidates the most recently
// seen is evicted first.
type topK struct {
	k       int
	seq     uint64
	entries map[string]*topEntry
}

func newTopK(k int) *topK {
	return &topK{k: k, entries: make(map[string]*topEntry, k)}
}

// Offer records one occurrence of key
func (t *topK) Offer(key string) {
	t.seq++

	if e, ok := t.entries[key]; ok {
		e.count++
		e.lastSeen = t.seq
		return
	}

	if len(t.entries) < t.k {
		t.entries[key] = &topEntry{key: key, count: 1, firstSeen: t.seq, lastSeen: t.seq}
		return
	}

	var victim *topEntry
	for _, e := range t.entries {
		if victim == nil ||
			e.count < victim.count ||
			(e.count == victim.count && e.lastSeen > victim.lastSeen) {
			victim = e
		}
	}
	if victim.count > 1 {
		// Every retained entry outranks a first occurrence.
		return
	}
	delete(t.entries, victim.key)
	t.entries[key] = &topEntry{key: key, count: 1, firstSeen: t.seq, lastSeen: t.seq}
}

// Merge folds another topK into this one and reselects the top k. Counts
// add; first-seen takes the minimum so cross-chunk ordering stays stable.
func (t *topK) Merge(other *topK) {
	for key, oe := range other.entries {
		if e, ok := t.entries[key]; ok {
			e.count += oe.count
			if oe.firstSeen < e.firstSeen {
				e.firstSeen = oe.firstSeen
			}
			if oe.lastSeen > e.lastSeen {
				e.lastSeen = oe.lastSeen
			}
			continue
		}
		t.entries[key] = &topEntry{key: key, count: oe.count, firstSeen: oe.firstSeen, lastSeen: oe.lastSeen}
	}
	if oseq := other.seq; oseq > t.seq {
		t.seq = oseq
	}

	if len(t.entries) <= t.k {
		return
	}
	ranked := t.ranked()
	for _, e := range ranked[t.k:] {
		delete(t.entries, e.key)
	}
}

// Ranked returns the retained messages ordered by descending count, ties
// broken by first-seen order.
func (t *topK) Ranked() []domain.MessageCount {
	ranked := t.ranked()
	out := make([]domain.MessageCount, len(ranked))
	for i, e := range ranked {
		out[i] = domain.MessageCount{Message: e.key, Count: e.count}
	}
	return out
}

func (t *topK) ranked() []*topEntry {
	entries := make([]*topEntry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		if entries[i].firstSeen != entries[j].firstSeen {
			return entries[i].firstSeen < entries[j].firstSeen
		}
		// Sequence numbers collide only across merged states.
		return entries[i].key < entries[j].key
	})
	return entries
}
