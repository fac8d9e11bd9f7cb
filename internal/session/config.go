package session

import (
	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/problemgen"
	"github.com/abhisek/multiplier/internal/weakness"
)

// Config is the fully parsed configuration of one drill session.
type Config struct {
	// DigitsOperand1 and DigitsOperand2 are the operand widths.
	DigitsOperand1 int
	DigitsOperand2 int

	// AnswersPerMinute sets the reference time for a trivial product
	// (60s / AnswersPerMinute) and, under TerminationRate, the required rate.
	AnswersPerMinute float64

	// ConsecutiveSuccesses is the required streak (or window size under
	// TerminationRate).
	ConsecutiveSuccesses int

	// Coefficients tune the carry cost of the complexity model.
	Coefficients complexity.Coefficients

	// NonRepeatQueueLength is the number of recent pairs never repeated.
	NonRepeatQueueLength int

	// ReinforceRepeatCap caps a pair's weakness count.
	ReinforceRepeatCap int

	Timing      complexity.TimingPolicy
	Termination mastery.TerminationPolicy

	// RateWindowResetsOnSlow clears the rate window on a correct-but-slow
	// answer. Only used under TerminationRate.
	RateWindowResetsOnSlow bool

	// LogAnswers keeps every Answer for the answer log.
	LogAnswers bool

	// Seed seeds the session's random source. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the defaults for every optional setting. Required
// settings are left at a usable single-digit drill.
func DefaultConfig() Config {
	return Config{
		DigitsOperand1:         1,
		DigitsOperand2:         1,
		AnswersPerMinute:       30,
		ConsecutiveSuccesses:   10,
		Coefficients:           complexity.DefaultCoefficients(),
		NonRepeatQueueLength:   problemgen.DefaultNonRepeatQueueLength,
		ReinforceRepeatCap:     weakness.DefaultRepeatCap,
		Timing:                 complexity.TimingComplexity,
		Termination:            mastery.TerminationStreak,
		RateWindowResetsOnSlow: true,
	}
}

// Timer builds the allowed-time calculator for the config.
func (c Config) Timer() complexity.Timer {
	return complexity.Timer{
		Policy:           c.Timing,
		AnswersPerMinute: c.AnswersPerMinute,
		Coefficients:     c.Coefficients,
	}
}

// GeneratorConfig builds the operand generator config.
func (c Config) GeneratorConfig() problemgen.Config {
	cfg := problemgen.DefaultConfig()
	cfg.DigitsOperand1 = c.DigitsOperand1
	cfg.DigitsOperand2 = c.DigitsOperand2
	cfg.NonRepeatQueueLength = c.NonRepeatQueueLength
	return cfg
}

// TerminatorConfig builds the termination policy config.
func (c Config) TerminatorConfig() mastery.TerminatorConfig {
	return mastery.TerminatorConfig{
		Policy:           c.Termination,
		Required:         c.ConsecutiveSuccesses,
		AnswersPerMinute: c.AnswersPerMinute,
		ResetOnSlow:      c.RateWindowResetsOnSlow,
	}
}
