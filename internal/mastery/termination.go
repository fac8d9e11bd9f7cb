package mastery

import (
	"fmt"
	"math"
	"time"
)

// TerminationPolicy selects the success criterion applied once every
// weakness has been cleared.
type TerminationPolicy string

const (
	// TerminationStreak requires a run of consecutive fast answers.
	TerminationStreak TerminationPolicy = "streak"

	// TerminationRate requires the trailing window of correct answers since
	// the error set last emptied to average at least the required rate.
	TerminationRate TerminationPolicy = "rate"
)

// ParseTerminationPolicy parses a policy name. Empty selects TerminationStreak.
func ParseTerminationPolicy(s string) (TerminationPolicy, error) {
	switch TerminationPolicy(s) {
	case "", TerminationStreak:
		return TerminationStreak, nil
	case TerminationRate:
		return TerminationRate, nil
	}
	return "", fmt.Errorf("unknown termination policy %q (want %q or %q)", s, TerminationStreak, TerminationRate)
}

// Observation is what a policy sees after each answer has been applied.
type Observation struct {
	Outcome     Outcome
	Elapsed     time.Duration
	Streak      int  // consecutive fast answers, after this one
	ErrorsEmpty bool // error class empty, after this one
}

// Terminator evaluates one termination policy. Callers must additionally
// require every weakness class to be empty before declaring success.
type Terminator interface {
	Policy() TerminationPolicy
	Observe(obs Observation)
	Satisfied() bool
}

// TerminatorConfig holds the inputs for NewTerminator.
type TerminatorConfig struct {
	Policy           TerminationPolicy
	Required         int
	AnswersPerMinute float64
	ResetOnSlow      bool
}

// NewTerminator builds the terminator for cfg.Policy.
func NewTerminator(cfg TerminatorConfig) Terminator {
	if cfg.Policy == TerminationRate {
		return &RateWindow{
			Required:         cfg.Required,
			AnswersPerMinute: cfg.AnswersPerMinute,
			ResetOnSlow:      cfg.ResetOnSlow,
		}
	}
	return &StreakGoal{Required: cfg.Required}
}

// StreakGoal is satisfied once the consecutive-success counter reaches
// Required.
type StreakGoal struct {
	Required int
	streak   int
}

func (s *StreakGoal) Policy() TerminationPolicy { return TerminationStreak }

func (s *StreakGoal) Observe(obs Observation) {
	s.streak = obs.Streak
}

func (s *StreakGoal) Satisfied() bool {
	return s.streak >= s.Required
}

// RateWindow keeps the elapsed times of the most recent Required correct
// answers given while the error set was empty. Any incorrect answer, or any
// answer leaving errors outstanding, clears the window. A correct-but-slow
// answer clears it too when ResetOnSlow is set; otherwise its time counts.
type RateWindow struct {
	Required         int
	AnswersPerMinute float64
	ResetOnSlow      bool

	times []time.Duration
}

func (r *RateWindow) Policy() TerminationPolicy { return TerminationRate }

func (r *RateWindow) Observe(obs Observation) {
	switch {
	case !obs.Outcome.Correct(), !obs.ErrorsEmpty:
		r.times = r.times[:0]
		return
	case obs.Outcome == OutcomeSlow && r.ResetOnSlow:
		r.times = r.times[:0]
		return
	}

	r.times = append(r.times, obs.Elapsed)
	if r.Required > 0 && len(r.times) > r.Required {
		r.times = r.times[len(r.times)-r.Required:]
	}
}

// Len is the number of answers currently in the window.
func (r *RateWindow) Len() int {
	return len(r.times)
}

// Rate is the average answers per minute over the window, 0 when empty.
func (r *RateWindow) Rate() float64 {
	if len(r.times) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range r.times {
		total += d
	}
	if total <= 0 {
		return math.Inf(1)
	}
	return float64(len(r.times)) * float64(time.Minute) / float64(total)
}

func (r *RateWindow) Satisfied() bool {
	return len(r.times) >= r.Required && r.Rate() >= r.AnswersPerMinute
}
