package mastery

import (
	"math"
	"time"

	"github.com/abhisek/multiplier/internal/operand"
)

// PerformanceRatio is allowed / elapsed; above 1 means faster than required.
// A zero elapsed time yields +Inf.
func PerformanceRatio(allowed, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return math.Inf(1)
	}
	return allowed.Seconds() / elapsed.Seconds()
}

// ReportRatio converts a performance ratio to the percentage by which the
// allowed time was beaten (positive) or missed (negative).
func ReportRatio(ratio float64) float64 {
	return (ratio - 1) * 100
}

// Extreme is one recorded performance ratio and the pair it was scored on.
type Extreme struct {
	Pair  operand.Pair
	Ratio float64
}

// Extremes tracks the best and worst ratios since the last reset. The zero
// value has nothing recorded.
type Extremes struct {
	min Extreme
	max Extreme
	set bool
}

// Record folds a new ratio into the extremes.
func (e *Extremes) Record(p operand.Pair, ratio float64) {
	x := Extreme{Pair: p, Ratio: ratio}
	if !e.set {
		e.min, e.max, e.set = x, x, true
		return
	}
	if ratio < e.min.Ratio {
		e.min = x
	}
	if ratio > e.max.Ratio {
		e.max = x
	}
}

// Reset forgets everything recorded.
func (e *Extremes) Reset() {
	*e = Extremes{}
}

// Get returns the worst and best ratios; ok is false when nothing has been
// recorded since the last reset.
func (e Extremes) Get() (worst, best Extreme, ok bool) {
	return e.min, e.max, e.set
}
