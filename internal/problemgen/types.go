package problemgen

import (
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/weakness"
)

// WeakSource exposes the pairs still outstanding per weakness class.
// *weakness.Tracker satisfies it.
type WeakSource interface {
	Pairs(c weakness.Class) []operand.Pair
}

// RecentQueue is a bounded FIFO of recently presented canonical pairs.
type RecentQueue struct {
	limit int
	items []operand.Pair
}

// NewRecentQueue creates a queue holding at most limit pairs.
func NewRecentQueue(limit int) *RecentQueue {
	if limit < 0 {
		limit = 0
	}
	return &RecentQueue{limit: limit, items: make([]operand.Pair, 0, limit+1)}
}

// Contains reports whether the canonical form of p is queued.
func (q *RecentQueue) Contains(p operand.Pair) bool {
	key := p.Key()
	for _, it := range q.items {
		if it == key {
			return true
		}
	}
	return false
}

// Push appends the canonical form of p, dropping the oldest entries once the
// queue exceeds its limit.
func (q *RecentQueue) Push(p operand.Pair) {
	q.items = append(q.items, p.Key())
	for len(q.items) > q.limit {
		q.items = q.items[1:]
	}
}

// Evict drops and returns the oldest entry.
func (q *RecentQueue) Evict() (operand.Pair, bool) {
	if len(q.items) == 0 {
		return operand.Pair{}, false
	}
	oldest := q.items[0]
	q.items = q.items[1:]
	return oldest, true
}

// Len returns the number of queued pairs.
func (q *RecentQueue) Len() int {
	return len(q.items)
}

// Items returns the queued pairs, oldest first.
func (q *RecentQueue) Items() []operand.Pair {
	out := make([]operand.Pair, len(q.items))
	copy(out, q.items)
	return out
}
