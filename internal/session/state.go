package session

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/logging"
	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/problemgen"
	"github.com/abhisek/multiplier/internal/weakness"
)

// SessionPhase is the drill state machine's state.
type SessionPhase int

const (
	PhaseDrilling  SessionPhase = iota // serving questions
	PhaseSucceeded                     // terminal: mastery demonstrated
)

func (p SessionPhase) String() string {
	if p == PhaseSucceeded {
		return "succeeded"
	}
	return "drilling"
}

// SessionState is all mutable state of one drill session. Nothing in it is
// shared with another session.
type SessionState struct {
	// Config is the session configuration.
	Config Config

	// SessionID is the UUID for this session.
	SessionID string

	// Phase is the current state machine state.
	Phase SessionPhase

	// Tracker holds outstanding error and slow pairs.
	Tracker *weakness.Tracker

	// Generator draws the next pair, owning the non-repeat queue.
	Generator *problemgen.Generator

	// Timer sizes the allowed time per question.
	Timer complexity.Timer

	// Terminator evaluates the configured termination policy.
	Terminator mastery.Terminator

	// CurrentQuestion is the pair awaiting an answer (nil between questions).
	CurrentQuestion *operand.Pair

	// ConsecutiveSuccesses counts fast correct answers since the last
	// incorrect or slow one.
	ConsecutiveSuccesses int

	// Extremes records best/worst performance ratios since the last reset.
	Extremes mastery.Extremes

	// Answers is the answer log, filled only when Config.LogAnswers is set.
	Answers []Answer

	TotalQuestions int
	TotalCorrect   int
	TotalSlow      int
	TotalIncorrect int

	// StartTime is when the session began.
	StartTime time.Time

	// Elapsed is the wall time from StartTime to the last answer.
	Elapsed time.Duration

	// Log receives diagnostics.
	Log logrus.FieldLogger
}

// NewSessionState creates a session drawing all randomness from rnd. A nil
// rnd is seeded from cfg.Seed, or from the clock when that is zero.
func NewSessionState(cfg Config, sessionID string, rnd *rand.Rand) *SessionState {
	if rnd == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rnd = rand.New(rand.NewSource(seed))
	}
	log := logging.Discard()

	return &SessionState{
		Config:     cfg,
		SessionID:  sessionID,
		Phase:      PhaseDrilling,
		Tracker:    weakness.NewTracker(cfg.ReinforceRepeatCap),
		Generator:  problemgen.New(rnd, cfg.GeneratorConfig()).WithLogger(log),
		Timer:      cfg.Timer(),
		Terminator: mastery.NewTerminator(cfg.TerminatorConfig()),
		StartTime:  time.Now(),
		Log:        log,
	}
}

// SetLogger routes session and generator diagnostics to l.
func (s *SessionState) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	s.Log = l.WithField("session_id", s.SessionID)
	s.Generator.WithLogger(s.Log)
}
