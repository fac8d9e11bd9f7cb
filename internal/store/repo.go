package store

import (
	"context"
	"time"
)

// SessionStartData describes a drill session as it begins.
type SessionStartData struct {
	ID                string
	StartedAt         time.Time
	DigitsOperand1    int
	DigitsOperand2    int
	AnswersPerMinute  float64
	RequiredSuccesses int
	TimingPolicy      string
	TerminationPolicy string
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID  string
	Seq        int
	OperandA   int
	OperandB   int
	Submitted  string
	Outcome    string
	ElapsedMs  int64
	AllowedMs  int64
	Ratio      float64 // non-finite values are stored as NULL
	AnsweredAt time.Time
}

// SessionEndData captures the totals of a finished (or abandoned) session.
type SessionEndData struct {
	ID         string
	EndedAt    time.Time
	Questions  int
	Correct    int
	Slow       int
	Incorrect  int
	Succeeded  bool
	DurationMs int64
}

// SessionRecord is one row of session history.
type SessionRecord struct {
	ID                string
	StartedAt         time.Time
	EndedAt           time.Time // zero if the session never finished
	DigitsOperand1    int
	DigitsOperand2    int
	AnswersPerMinute  float64
	RequiredSuccesses int
	TimingPolicy      string
	TerminationPolicy string
	Questions         int
	Correct           int
	Slow              int
	Incorrect         int
	Succeeded         bool
	DurationMs        int64
}

// PairStats aggregates the history of one canonical operand pair.
type PairStats struct {
	A, B      int
	Attempts  int
	Incorrect int
	Slow      int
}

// Misses is the number of attempts that were incorrect or slow.
func (p PairStats) Misses() int {
	return p.Incorrect + p.Slow
}

// SessionRepo records drill sessions and answers.
type SessionRepo interface {
	// StartSession inserts a new session row.
	StartSession(ctx context.Context, data SessionStartData) error

	// AppendAnswer records one answer of a started session.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// FinishSession stores the final totals of a session.
	FinishSession(ctx context.Context, data SessionEndData) error

	// ListSessions returns the most recent sessions first (0 = unlimited).
	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// HardestPairs returns the pairs with the most misses across history.
	HardestPairs(ctx context.Context, limit int) ([]PairStats, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}
