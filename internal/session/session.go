package session

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/problemgen"
	"github.com/abhisek/multiplier/internal/weakness"
)

// Feedback is the classified result of one answer, for display.
type Feedback struct {
	Pair      operand.Pair
	Submitted string
	Outcome   mastery.Outcome
	Elapsed   time.Duration
	Allowed   time.Duration
	Ratio     float64

	// Weakness totals after this answer.
	OutstandingErrors int
	DistinctErrors    int
	OutstandingSlow   int
	DistinctSlow      int

	ConsecutiveSuccesses int
	RequiredSuccesses    int

	// Seq is the 1-based question number.
	Seq int

	// Succeeded is set when this answer ended the session.
	Succeeded bool
}

// NextQuestion draws the next pair and makes it the current question.
func NextQuestion(state *SessionState) operand.Pair {
	p := state.Generator.Next(state.Tracker)
	state.CurrentQuestion = &p
	return p
}

// HandleAnswer classifies the learner's answer to the current question,
// updates the streak, extremes, weakness classes and termination policy, and
// checks for success. Returns nil when no question is pending.
func HandleAnswer(state *SessionState, learnerAnswer string, elapsed time.Duration) *Feedback {
	q := state.CurrentQuestion
	if q == nil || state.Phase == PhaseSucceeded {
		return nil
	}
	p := *q
	state.CurrentQuestion = nil

	allowed := state.Timer.AllowedTime(p)
	ratio := mastery.PerformanceRatio(allowed, elapsed)
	outcome := classify(p, learnerAnswer, elapsed, allowed)

	state.TotalQuestions++
	switch outcome {
	case mastery.OutcomeIncorrect:
		state.TotalIncorrect++
		state.ConsecutiveSuccesses = 0
		state.Extremes.Reset()
		state.Tracker.Reinforce(weakness.Error, p)

	case mastery.OutcomeFast:
		state.TotalCorrect++
		state.ConsecutiveSuccesses++
		state.Extremes.Record(p, ratio)
		state.Tracker.Relieve(weakness.Slow, p)
		state.Tracker.Relieve(weakness.Error, p)

	case mastery.OutcomeSlow:
		state.TotalCorrect++
		state.TotalSlow++
		state.ConsecutiveSuccesses = 0
		state.Extremes.Reset()
		// A correct answer still earns error relief; the slowness is
		// tracked separately.
		state.Tracker.Relieve(weakness.Error, p)
		state.Tracker.Reinforce(weakness.Slow, p)
	}

	state.Terminator.Observe(mastery.Observation{
		Outcome:     outcome,
		Elapsed:     elapsed,
		Streak:      state.ConsecutiveSuccesses,
		ErrorsEmpty: state.Tracker.IsEmpty(weakness.Error),
	})

	if state.Tracker.IsEmpty() && state.Terminator.Satisfied() {
		state.Phase = PhaseSucceeded
	}
	state.Elapsed = time.Since(state.StartTime)

	submitted := strings.TrimSpace(learnerAnswer)
	if state.Config.LogAnswers {
		state.Answers = append(state.Answers, Answer{
			Pair:      p,
			Submitted: submitted,
			Correct:   outcome.Correct(),
			Elapsed:   elapsed,
			Ratio:     ratio,
			HasRatio:  state.Timer.Policy != complexity.TimingFlat,
		})
	}

	fb := &Feedback{
		Pair:                 p,
		Submitted:            submitted,
		Outcome:              outcome,
		Elapsed:              elapsed,
		Allowed:              allowed,
		Ratio:                ratio,
		OutstandingErrors:    state.Tracker.Outstanding(weakness.Error),
		DistinctErrors:       state.Tracker.Distinct(weakness.Error),
		OutstandingSlow:      state.Tracker.Outstanding(weakness.Slow),
		DistinctSlow:         state.Tracker.Distinct(weakness.Slow),
		ConsecutiveSuccesses: state.ConsecutiveSuccesses,
		RequiredSuccesses:    state.Config.ConsecutiveSuccesses,
		Seq:                  state.TotalQuestions,
		Succeeded:            state.Phase == PhaseSucceeded,
	}

	state.Log.WithFields(logrus.Fields{
		"pair":      p.String(),
		"outcome":   outcome,
		"elapsed":   elapsed,
		"allowed":   allowed,
		"streak":    state.ConsecutiveSuccesses,
		"errors":    fb.OutstandingErrors,
		"slow":      fb.OutstandingSlow,
		"succeeded": fb.Succeeded,
	}).Debug("answer handled")

	return fb
}

// classify decides the outcome. Unparseable input is incorrect.
func classify(p operand.Pair, input string, elapsed, allowed time.Duration) mastery.Outcome {
	if !problemgen.CheckAnswer(input, p.Product()) {
		return mastery.OutcomeIncorrect
	}
	if elapsed <= allowed {
		return mastery.OutcomeFast
	}
	return mastery.OutcomeSlow
}
