package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/weakness"
)

// testState runs with flat timing at 30 answers/minute: 2s per question.
func testState(required int) *SessionState {
	cfg := DefaultConfig()
	cfg.Timing = complexity.TimingFlat
	cfg.ConsecutiveSuccesses = required
	cfg.LogAnswers = true
	return NewSessionState(cfg, "test-session-id", rand.New(rand.NewSource(1)))
}

func answer(state *SessionState, p operand.Pair, input string, elapsed time.Duration) *Feedback {
	state.CurrentQuestion = &p
	return HandleAnswer(state, input, elapsed)
}

func TestHandleAnswer_NoQuestion(t *testing.T) {
	state := testState(3)
	if fb := HandleAnswer(state, "12", time.Second); fb != nil {
		t.Errorf("expected nil feedback, got %+v", fb)
	}
	if state.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", state.TotalQuestions)
	}
}

func TestHandleAnswer_IncorrectThenCorrect(t *testing.T) {
	state := testState(3)
	p := operand.New(3, 4)

	fb := answer(state, p, "17", time.Second)
	if fb.Outcome != mastery.OutcomeIncorrect {
		t.Fatalf("Outcome = %s, want incorrect", fb.Outcome)
	}
	if got := state.Tracker.Count(weakness.Error, p); got != 1 {
		t.Errorf("error count = %d, want 1", got)
	}
	if state.ConsecutiveSuccesses != 0 {
		t.Errorf("streak = %d, want 0", state.ConsecutiveSuccesses)
	}

	fb = answer(state, p, "12", time.Second)
	if fb.Outcome != mastery.OutcomeFast {
		t.Fatalf("Outcome = %s, want fast", fb.Outcome)
	}
	if state.Tracker.Contains(weakness.Error, p) {
		t.Error("expected 3×4 removed from the error class")
	}
	if state.ConsecutiveSuccesses != 1 {
		t.Errorf("streak = %d, want 1", state.ConsecutiveSuccesses)
	}
	if state.TotalQuestions != 2 || state.TotalCorrect != 1 || state.TotalIncorrect != 1 {
		t.Errorf("totals = %d/%d/%d", state.TotalQuestions, state.TotalCorrect, state.TotalIncorrect)
	}
}

func TestHandleAnswer_UnparseableIsIncorrect(t *testing.T) {
	state := testState(3)
	fb := answer(state, operand.New(2, 5), " ten ", time.Second)
	if fb.Outcome != mastery.OutcomeIncorrect {
		t.Errorf("Outcome = %s, want incorrect", fb.Outcome)
	}
	if fb.Submitted != "ten" {
		t.Errorf("Submitted = %q, want %q", fb.Submitted, "ten")
	}
}

func TestHandleAnswer_SlowReclassification(t *testing.T) {
	state := testState(3)
	p := operand.New(6, 7)
	answer(state, operand.New(2, 2), "4", time.Second)

	fb := answer(state, p, "42", 5*time.Second)
	if fb.Outcome != mastery.OutcomeSlow {
		t.Fatalf("Outcome = %s, want slow", fb.Outcome)
	}
	if got := state.Tracker.Count(weakness.Slow, p); got != 1 {
		t.Errorf("slow count = %d, want 1", got)
	}
	if state.Tracker.Contains(weakness.Error, p) {
		t.Error("slow answer must not add an error")
	}
	if state.ConsecutiveSuccesses != 0 {
		t.Errorf("streak = %d, want 0", state.ConsecutiveSuccesses)
	}
	if _, _, ok := state.Extremes.Get(); ok {
		t.Error("extremes should reset on a slow answer")
	}
	if fb.OutstandingSlow != 1 || fb.DistinctSlow != 1 {
		t.Errorf("slow totals = %d/%d, want 1/1", fb.OutstandingSlow, fb.DistinctSlow)
	}
}

func TestHandleAnswer_SlowAnswerToErrorPair(t *testing.T) {
	state := testState(3)
	p := operand.New(7, 8)
	for i := 0; i < 3; i++ {
		answer(state, p, "54", time.Second)
	}
	if got := state.Tracker.Count(weakness.Error, p); got != 3 {
		t.Fatalf("error count = %d, want 3", got)
	}

	answer(state, p.Flip(), "56", 4*time.Second)
	if got := state.Tracker.Count(weakness.Error, p); got != 2 {
		t.Errorf("error count = %d, want 2", got)
	}
	if got := state.Tracker.Count(weakness.Slow, p); got != 3 {
		t.Errorf("slow count = %d, want 3 from the high-water mark", got)
	}
}

func TestHandleAnswer_FastRelievesBothClasses(t *testing.T) {
	state := testState(3)
	p := operand.New(4, 9)
	answer(state, p, "35", time.Second)
	answer(state, p, "36", 3*time.Second)
	answer(state, p, "36", 3*time.Second)

	answer(state, p, "36", time.Second)
	if state.Tracker.Contains(weakness.Error, p) {
		t.Error("expected error class cleared")
	}
	if got := state.Tracker.Count(weakness.Slow, p); got != 1 {
		t.Errorf("slow count = %d, want 1", got)
	}
}

func TestHandleAnswer_SuccessRequiresEmptyClasses(t *testing.T) {
	state := testState(1)

	answer(state, operand.New(3, 4), "11", time.Second)
	fb := answer(state, operand.New(5, 6), "30", time.Second)
	if fb.Succeeded || state.Phase != PhaseDrilling {
		t.Fatal("must not succeed with errors outstanding")
	}
	if state.ConsecutiveSuccesses != 1 {
		t.Fatalf("streak = %d, want 1", state.ConsecutiveSuccesses)
	}

	fb = answer(state, operand.New(4, 3), "12", time.Second)
	if !fb.Succeeded || state.Phase != PhaseSucceeded {
		t.Fatal("expected success once the error class emptied")
	}
	if fb := answer(state, operand.New(2, 2), "4", time.Second); fb != nil {
		t.Error("no answers are handled after success")
	}
}

func TestHandleAnswer_SlowPairsBlockSuccess(t *testing.T) {
	state := testState(2)
	answer(state, operand.New(8, 9), "72", 3*time.Second)
	answer(state, operand.New(2, 3), "6", time.Second)
	answer(state, operand.New(2, 4), "8", time.Second)
	if state.Phase != PhaseDrilling {
		t.Fatal("must not succeed with slow pairs outstanding")
	}
	answer(state, operand.New(9, 8), "72", time.Second)
	if state.Phase != PhaseSucceeded {
		t.Fatal("expected success")
	}
}

func TestHandleAnswer_Extremes(t *testing.T) {
	state := testState(5)
	// Ratios 2, 1.25 and 4 against the 2s budget.
	answer(state, operand.New(2, 3), "6", time.Second)
	answer(state, operand.New(2, 4), "8", 1600*time.Millisecond)
	answer(state, operand.New(2, 5), "10", 500*time.Millisecond)

	worst, best, ok := state.Extremes.Get()
	if !ok {
		t.Fatal("expected extremes")
	}
	if worst.Pair != operand.New(2, 4) || !almostEqual(worst.Ratio, 1.25) {
		t.Errorf("worst = %+v", worst)
	}
	if best.Pair != operand.New(2, 5) || !almostEqual(best.Ratio, 4) {
		t.Errorf("best = %+v", best)
	}

	answer(state, operand.New(2, 6), "11", time.Second)
	if _, _, ok := state.Extremes.Get(); ok {
		t.Error("extremes should reset on an incorrect answer")
	}
}

func TestHandleAnswer_RateTermination(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing = complexity.TimingFlat
	cfg.Termination = mastery.TerminationRate
	cfg.ConsecutiveSuccesses = 2
	state := NewSessionState(cfg, "rate", rand.New(rand.NewSource(1)))

	answer(state, operand.New(2, 3), "6", time.Second)
	if state.Phase != PhaseDrilling {
		t.Fatal("window not yet full")
	}
	answer(state, operand.New(2, 4), "8", time.Second)
	if state.Phase != PhaseSucceeded {
		t.Fatal("expected success at 60 answers/minute")
	}
}

func TestHandleAnswer_AnswerLog(t *testing.T) {
	state := testState(5)
	answer(state, operand.New(4, 3), "12", 1500*time.Millisecond)
	answer(state, operand.New(3, 4), "17", 2*time.Second)

	if len(state.Answers) != 2 {
		t.Fatalf("len(Answers) = %d, want 2", len(state.Answers))
	}
	if got := state.Answers[0].String(); got != "4×3=12,1.50" {
		t.Errorf("Answers[0] = %q", got)
	}
	if got := state.Answers[1].String(); got != "3×4≠17,2.00" {
		t.Errorf("Answers[1] = %q", got)
	}
}

func TestHandleAnswer_NoLogWhenDisabled(t *testing.T) {
	state := testState(5)
	state.Config.LogAnswers = false
	answer(state, operand.New(4, 3), "12", time.Second)
	if len(state.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(state.Answers))
	}
}

func TestNextQuestion_SetsCurrent(t *testing.T) {
	state := testState(5)
	p := NextQuestion(state)
	if state.CurrentQuestion == nil || *state.CurrentQuestion != p {
		t.Fatalf("CurrentQuestion = %v, want %v", state.CurrentQuestion, p)
	}
	if p.A < 2 || p.A > 9 || p.B < 2 || p.B > 9 {
		t.Errorf("pair %v out of single-digit range", p)
	}
}

func TestBuildSummary(t *testing.T) {
	state := testState(1)
	answer(state, operand.New(3, 4), "11", time.Second)
	answer(state, operand.New(3, 4), "12", 3*time.Second)
	answer(state, operand.New(3, 4), "12", time.Second)

	s := BuildSummary(state)
	if !s.Succeeded {
		t.Error("expected success")
	}
	if s.TotalQuestions != 3 || s.TotalCorrect != 2 || s.TotalSlow != 1 || s.TotalIncorrect != 1 {
		t.Errorf("totals = %+v", s)
	}
	if !almostEqual(s.Accuracy, 2.0/3.0) {
		t.Errorf("Accuracy = %v", s.Accuracy)
	}
	if !s.HasExtremes || !almostEqual(s.Best.Ratio, 2) {
		t.Errorf("extremes = %+v/%+v", s.Worst, s.Best)
	}
	if s.Termination != mastery.TerminationStreak {
		t.Errorf("Termination = %s", s.Termination)
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
