// Package weakness tracks operand pairs the learner has missed or answered
// too slowly during a single drill session.
package weakness

import (
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/multiplier/internal/operand"
)

// DefaultRepeatCap is the default ceiling on a pair's repeat count.
const DefaultRepeatCap = 5

// Class is the failure mode a pair is currently held for.
type Class int

const (
	Error Class = iota // answered incorrectly
	Slow               // answered correctly but over the allowed time
)

// Classes lists every weakness class.
var Classes = []Class{Error, Slow}

func (c Class) String() string {
	switch c {
	case Error:
		return "error"
	case Slow:
		return "slow"
	}
	return "unknown"
}

// Tracker holds one repeat-count mapping per class plus a high-water mark
// shared across both. A pair is absent from a class once resolved; counts
// stored are always in 1..cap.
//
// The high-water mark never decreases during a session and is the floor for
// any later reinforcement of the same pair, in either class.
type Tracker struct {
	repeatCap int
	counts    map[Class]map[operand.Pair]int
	highWater map[operand.Pair]int
}

// NewTracker creates an empty tracker. A non-positive cap falls back to
// DefaultRepeatCap.
func NewTracker(repeatCap int) *Tracker {
	if repeatCap <= 0 {
		repeatCap = DefaultRepeatCap
	}
	t := &Tracker{
		repeatCap: repeatCap,
		counts:    make(map[Class]map[operand.Pair]int, len(Classes)),
		highWater: make(map[operand.Pair]int),
	}
	for _, c := range Classes {
		t.counts[c] = make(map[operand.Pair]int)
	}
	return t
}

// RepeatCap returns the configured cap.
func (t *Tracker) RepeatCap() int {
	return t.repeatCap
}

// Reinforce increments the pair's count in class c, raised to the pair's
// high-water mark and clamped to the cap, and returns the stored count.
func (t *Tracker) Reinforce(c Class, p operand.Pair) int {
	key := p.Key()
	mark := t.highWater[key]

	n := t.counts[c][key] + 1
	if mark > n {
		n = mark
	}
	n = min(n, t.repeatCap)

	t.counts[c][key] = n
	t.highWater[key] = max(mark, n)
	return n
}

// Relieve decrements the pair's count in class c, removing the pair once the
// count reaches zero. Pairs not present are ignored. The high-water mark is
// left untouched.
func (t *Tracker) Relieve(c Class, p operand.Pair) {
	key := p.Key()
	n, ok := t.counts[c][key]
	if !ok {
		return
	}
	if n > 1 {
		t.counts[c][key] = n - 1
		return
	}
	delete(t.counts[c], key)
}

// Count returns the pair's current count in class c, 0 when absent.
func (t *Tracker) Count(c Class, p operand.Pair) int {
	return t.counts[c][p.Key()]
}

// Contains reports whether the pair is outstanding in class c.
func (t *Tracker) Contains(c Class, p operand.Pair) bool {
	_, ok := t.counts[c][p.Key()]
	return ok
}

// HighWater returns the highest count ever assigned to the pair.
func (t *Tracker) HighWater(p operand.Pair) int {
	return t.highWater[p.Key()]
}

// Outstanding is the sum of counts in class c: the number of blocking
// repeats still required.
func (t *Tracker) Outstanding(c Class) int {
	return lo.Sum(lo.Values(t.counts[c]))
}

// Distinct is the number of pairs outstanding in class c.
func (t *Tracker) Distinct(c Class) int {
	return len(t.counts[c])
}

// IsEmpty reports whether every given class is empty. With no arguments it
// checks all classes.
func (t *Tracker) IsEmpty(classes ...Class) bool {
	if len(classes) == 0 {
		classes = Classes
	}
	for _, c := range classes {
		if len(t.counts[c]) > 0 {
			return false
		}
	}
	return true
}

// Pairs returns the canonical pairs outstanding in class c in a stable
// order, so that seeded random picks are reproducible.
func (t *Tracker) Pairs(c Class) []operand.Pair {
	pairs := lo.Keys(t.counts[c])
	slices.SortFunc(pairs, operand.Compare)
	return pairs
}

// Status is a point-in-time view of one class.
type Status struct {
	Class       Class
	Outstanding int
	Distinct    int
}

// Snapshot returns the status of every class.
func (t *Tracker) Snapshot() []Status {
	return lo.Map(Classes, func(c Class, _ int) Status {
		return Status{Class: c, Outstanding: t.Outstanding(c), Distinct: t.Distinct(c)}
	})
}
