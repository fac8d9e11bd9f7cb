package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/operand"
)

// Answer is one logged question. It is immutable once appended.
type Answer struct {
	Pair      operand.Pair
	Submitted string
	Correct   bool
	Elapsed   time.Duration

	// Ratio is allowed/elapsed; rendered only when HasRatio is set
	// (complexity-weighted timing).
	Ratio    float64
	HasRatio bool
}

// String renders the answer as "a×b=v,secs[,ratio%]", using ≠ for a wrong
// value.
func (a Answer) String() string {
	sign := "="
	if !a.Correct {
		sign = "≠"
	}
	s := fmt.Sprintf("%s%s%s,%.2f", a.Pair, sign, a.Submitted, a.Elapsed.Seconds())
	if a.HasRatio {
		s += fmt.Sprintf(",%.2f%%", mastery.ReportRatio(a.Ratio))
	}
	return s
}

// WriteLog writes one rendered answer per line.
func WriteLog(w io.Writer, answers []Answer) error {
	var b strings.Builder
	for _, a := range answers {
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write answer log: %w", err)
	}
	return nil
}
