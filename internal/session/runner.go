package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/store"
)

// ErrInputClosed is returned by Run when the learner's input ends before the
// session succeeds.
var ErrInputClosed = errors.New("input closed before the drill was completed")

// Prompter is the learner-facing channel of a session.
type Prompter interface {
	// Intro shows the banner and waits for the learner to start.
	Intro(cfg Config) error

	// Present shows the question for p.
	Present(seq int, p operand.Pair)

	// ReadAnswer blocks for one line of input.
	ReadAnswer() (string, error)

	// Feedback reports the classified answer.
	Feedback(fb *Feedback)

	// Continue waits for the learner before the next question.
	Continue() error

	// Summary shows the end-of-session results.
	Summary(s *SessionSummary)
}

// History is the subset of store.SessionRepo a running session writes to.
type History interface {
	StartSession(ctx context.Context, data store.SessionStartData) error
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	FinishSession(ctx context.Context, data store.SessionEndData) error
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// History records the session; nil disables recording.
	History History

	// Now is the clock used to time answers. Defaults to time.Now.
	Now func() time.Time

	Logger logrus.FieldLogger
}

// Runner drives one session against a Prompter until success or end of
// input.
type Runner struct {
	state    *SessionState
	prompter Prompter
	history  History
	now      func() time.Time
}

// NewRunner creates a Runner for state.
func NewRunner(state *SessionState, prompter Prompter, opts RunnerOptions) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger != nil {
		state.SetLogger(opts.Logger)
	}
	return &Runner{
		state:    state,
		prompter: prompter,
		history:  opts.History,
		now:      opts.Now,
	}
}

// State returns the session being run.
func (r *Runner) State() *SessionState {
	return r.state
}

// Run presents questions until the session succeeds. The summary is returned
// even when input ends early, alongside ErrInputClosed.
func (r *Runner) Run(ctx context.Context) (*SessionSummary, error) {
	state := r.state
	state.StartTime = r.now()
	r.recordStart(ctx)

	if err := r.prompter.Intro(state.Config); err != nil {
		return r.finish(ctx, inputErr(err))
	}
	state.StartTime = r.now()

	for state.Phase == PhaseDrilling {
		if err := ctx.Err(); err != nil {
			return r.finish(ctx, err)
		}

		p := NextQuestion(state)
		r.prompter.Present(state.TotalQuestions+1, p)

		asked := r.now()
		input, err := r.prompter.ReadAnswer()
		if err != nil {
			return r.finish(ctx, inputErr(err))
		}
		answered := r.now()

		fb := HandleAnswer(state, input, answered.Sub(asked))
		state.Elapsed = answered.Sub(state.StartTime)
		r.recordAnswer(ctx, fb, answered)
		r.prompter.Feedback(fb)

		if state.Phase == PhaseSucceeded {
			break
		}
		if err := r.prompter.Continue(); err != nil {
			return r.finish(ctx, inputErr(err))
		}
	}

	return r.finish(ctx, nil)
}

func (r *Runner) finish(ctx context.Context, runErr error) (*SessionSummary, error) {
	summary := BuildSummary(r.state)
	r.prompter.Summary(summary)
	r.recordFinish(ctx, summary)
	return summary, runErr
}

func inputErr(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrInputClosed
	}
	return fmt.Errorf("read input: %w", err)
}

// History failures never interrupt a drill; they are logged and dropped.

func (r *Runner) recordStart(ctx context.Context) {
	if r.history == nil {
		return
	}
	cfg := r.state.Config
	err := r.history.StartSession(ctx, store.SessionStartData{
		ID:                r.state.SessionID,
		StartedAt:         r.state.StartTime,
		DigitsOperand1:    cfg.DigitsOperand1,
		DigitsOperand2:    cfg.DigitsOperand2,
		AnswersPerMinute:  cfg.AnswersPerMinute,
		RequiredSuccesses: cfg.ConsecutiveSuccesses,
		TimingPolicy:      string(r.state.Timer.Policy),
		TerminationPolicy: string(r.state.Terminator.Policy()),
	})
	if err != nil {
		r.state.Log.WithError(err).Warn("history: start session")
		r.history = nil
	}
}

func (r *Runner) recordAnswer(ctx context.Context, fb *Feedback, at time.Time) {
	if r.history == nil || fb == nil {
		return
	}
	err := r.history.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:  r.state.SessionID,
		Seq:        fb.Seq,
		OperandA:   fb.Pair.A,
		OperandB:   fb.Pair.B,
		Submitted:  fb.Submitted,
		Outcome:    string(fb.Outcome),
		ElapsedMs:  fb.Elapsed.Milliseconds(),
		AllowedMs:  fb.Allowed.Milliseconds(),
		Ratio:      fb.Ratio,
		AnsweredAt: at,
	})
	if err != nil {
		r.state.Log.WithError(err).Warn("history: append answer")
	}
}

func (r *Runner) recordFinish(ctx context.Context, s *SessionSummary) {
	if r.history == nil {
		return
	}
	// Record the end even when ctx was cancelled.
	ctx = context.WithoutCancel(ctx)
	err := r.history.FinishSession(ctx, store.SessionEndData{
		ID:         s.SessionID,
		EndedAt:    r.now(),
		Questions:  s.TotalQuestions,
		Correct:    s.TotalCorrect,
		Slow:       s.TotalSlow,
		Incorrect:  s.TotalIncorrect,
		Succeeded:  s.Succeeded,
		DurationMs: s.Duration.Milliseconds(),
	})
	if err != nil {
		r.state.Log.WithError(err).Warn("history: finish session")
	}
}
