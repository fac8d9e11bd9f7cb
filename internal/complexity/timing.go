package complexity

import (
	"fmt"
	"time"

	"github.com/abhisek/multiplier/internal/operand"
)

// TimingPolicy selects how the allowed answer time is sized.
type TimingPolicy string

const (
	// TimingFlat allows the same reference time for every question.
	TimingFlat TimingPolicy = "flat"

	// TimingComplexity scales the reference time by Assess.
	TimingComplexity TimingPolicy = "complexity"
)

// ParseTimingPolicy parses a policy name. Empty selects TimingComplexity.
func ParseTimingPolicy(s string) (TimingPolicy, error) {
	switch TimingPolicy(s) {
	case "", TimingComplexity:
		return TimingComplexity, nil
	case TimingFlat:
		return TimingFlat, nil
	}
	return "", fmt.Errorf("unknown timing policy %q (want %q or %q)", s, TimingFlat, TimingComplexity)
}

// Timer computes allowed answer times.
type Timer struct {
	Policy           TimingPolicy
	AnswersPerMinute float64
	Coefficients     Coefficients
}

// ReferenceTime is the time allowed for one trivial single-digit product.
func (t Timer) ReferenceTime() time.Duration {
	if t.AnswersPerMinute <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / t.AnswersPerMinute)
}

// AllowedTime returns the time budget for answering p.
func (t Timer) AllowedTime(p operand.Pair) time.Duration {
	ref := t.ReferenceTime()
	if t.Policy == TimingFlat {
		return ref
	}
	score := Assess(p.A, p.B, t.Coefficients)
	return time.Duration(float64(ref) * score)
}
