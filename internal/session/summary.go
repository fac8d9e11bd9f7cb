package session

import (
	"time"

	"github.com/abhisek/multiplier/internal/mastery"
)

// SessionSummary holds the data displayed when a session ends.
type SessionSummary struct {
	SessionID   string
	Succeeded   bool
	Termination mastery.TerminationPolicy

	ConsecutiveSuccesses int
	RequiredSuccesses    int
	AnswersPerMinute     float64

	// Worst and Best are the extremes of the final streak. Only valid when
	// HasExtremes is set.
	Worst       mastery.Extreme
	Best        mastery.Extreme
	HasExtremes bool

	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	TotalSlow      int
	TotalIncorrect int
	Accuracy       float64
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}
	worst, best, ok := state.Extremes.Get()

	return &SessionSummary{
		SessionID:            state.SessionID,
		Succeeded:            state.Phase == PhaseSucceeded,
		Termination:          state.Terminator.Policy(),
		ConsecutiveSuccesses: state.ConsecutiveSuccesses,
		RequiredSuccesses:    state.Config.ConsecutiveSuccesses,
		AnswersPerMinute:     state.Config.AnswersPerMinute,
		Worst:                worst,
		Best:                 best,
		HasExtremes:          ok,
		Duration:             state.Elapsed,
		TotalQuestions:       state.TotalQuestions,
		TotalCorrect:         state.TotalCorrect,
		TotalSlow:            state.TotalSlow,
		TotalIncorrect:       state.TotalIncorrect,
		Accuracy:             accuracy,
	}
}
