package aggregate

import "github.com/loglens/loglens/internal/domain"

// retentionRing is a bounded circular buffer of unmatched lines. Once full,
// the oldest entry is overwritten, keeping memory bounded on arbitrarily
// long inputs. The state's single-writer invariant makes locking
// unnecessary.
type retentionRing struct {
	buffer []domain.UnmatchedLine
	size   int
	head   int
	count  int
}

func newRetentionRing(size int) *retentionRing {
	return &retentionRing{
		buffer: make([]domain.UnmatchedLine, size),
		size:   size,
	}
}

// Push adds a line, evicting the oldest once capacity is reached
func (r *retentionRing) Push(line domain.UnmatchedLine) {
	if r.size == 0 {
		return
	}
	r.buffer[r.head] = line
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// All returns the retained lines in order, oldest first
func (r *retentionRing) All() []domain.UnmatchedLine {
	result := make([]domain.UnmatchedLine, r.count)
	if r.count < r.size {
		copy(result, r.buffer[:r.count])
	} else {
		copy(result, r.buffer[r.head:])
		copy(result[r.size-r.head:], r.buffer[:r.head])
	}
	return result
}
