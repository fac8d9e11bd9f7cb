// Package console is the line-based learner channel: it prints questions and
// feedback and reads answers and keypresses.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/session"
	"github.com/abhisek/multiplier/internal/ui/components"
	"github.com/abhisek/multiplier/internal/ui/theme"
)

const (
	readyPrompt    = "Press any key when ready..."
	continuePrompt = "Press any key to continue..."

	progressWidth = 40

	keyCtrlC = 3
	keyCtrlD = 4
)

// Console implements session.Prompter over a reader and writer. Keypress
// waits and screen clears only happen when input is a terminal; otherwise
// answers are read line by line with no pauses.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	inFd        int
	interactive bool
	clearScreen bool
}

var _ session.Prompter = (*Console)(nil)

// New creates a Console. Terminal features are enabled when in (and, for
// screen clears, out) is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:   bufio.NewReader(in),
		out:  out,
		inFd: -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.inFd = int(f.Fd())
		c.interactive = true
	}
	if f, ok := out.(*os.File); ok && c.interactive && term.IsTerminal(int(f.Fd())) {
		c.clearScreen = true
	}
	return c
}

// Interactive reports whether keypress acknowledgments are enabled.
func (c *Console) Interactive() bool {
	return c.interactive
}

func (c *Console) Intro(cfg session.Config) error {
	c.println(theme.Title.Render(fmt.Sprintf("Quiz of multiplying %d-digit and %d-digit numbers.", cfg.DigitsOperand1, cfg.DigitsOperand2)))
	c.println()
	logging := "Disabled"
	if cfg.LogAnswers {
		logging = "Enabled"
	}
	c.println(theme.Body.Render("Logging: " + logging + "."))
	if cfg.Termination == mastery.TerminationRate {
		c.println(theme.Body.Render(fmt.Sprintf("Required window of correct answers: %d.", cfg.ConsecutiveSuccesses)))
	} else {
		c.println(theme.Body.Render(fmt.Sprintf("Required consecutive successes: %d.", cfg.ConsecutiveSuccesses)))
	}
	c.println(theme.Body.Render(fmt.Sprintf("Required minimum speed: %g Answers/min.", cfg.AnswersPerMinute)))
	c.println(theme.Body.Render(fmt.Sprintf("Non-repeat length: %d.", cfg.NonRepeatQueueLength)))
	c.println(theme.Body.Render(fmt.Sprintf("Reinforcement repeats capped at: %d.", cfg.ReinforceRepeatCap)))
	c.println(theme.Hint.Render(fmt.Sprintf("Timing: %s. Termination: %s.", cfg.Timing, cfg.Termination)))
	c.println()
	return c.waitKey(readyPrompt)
}

func (c *Console) Present(_ int, p operand.Pair) {
	c.print(theme.Question.Render(fmt.Sprintf("%d × %d = ", p.A, p.B)))
}

func (c *Console) ReadAnswer() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Feedback(fb *session.Feedback) {
	if fb == nil {
		return
	}
	if fb.Outcome == mastery.OutcomeIncorrect {
		c.println(theme.Incorrect.Render("Incorrect!") + " " + theme.Body.Render("("+errorStatus(fb)+")"))
		return
	}

	head := theme.Correct.Render("Correct")
	limit := fmt.Sprintf("(Within time limit %.2fs).", fb.Allowed.Seconds())
	if fb.Outcome == mastery.OutcomeSlow {
		head = theme.Slow.Render("Correct")
		limit = fmt.Sprintf("(took too long for %.2fs).", fb.Allowed.Seconds())
	}
	msg := fmt.Sprintf(" taking %.2fs, perf ratio %.2f%% %s %s",
		fb.Elapsed.Seconds(), mastery.ReportRatio(fb.Ratio), limit, status(fb))
	c.println(head + theme.Body.Render(msg))

	if fb.OutstandingErrors == 0 && fb.OutstandingSlow == 0 && fb.RequiredSuccesses > 0 {
		bar := components.NewProgressBar("Streak", fb.ConsecutiveSuccesses, fb.RequiredSuccesses, true, progressWidth)
		c.println(bar.View())
	}
}

func (c *Console) Continue() error {
	return c.waitKey(continuePrompt)
}

func (c *Console) Summary(s *session.SessionSummary) {
	c.println()
	if s.Succeeded {
		c.println(theme.Correct.Render(fmt.Sprintf("Congratulations! You succeeded %d times in a row above required %.2f A/min.",
			s.ConsecutiveSuccesses, s.AnswersPerMinute)))
		if s.HasExtremes {
			c.println(theme.Body.Render(fmt.Sprintf("Max performance ratio: %.2f%% (%s).", mastery.ReportRatio(s.Best.Ratio), s.Best.Pair)))
			c.println(theme.Body.Render(fmt.Sprintf("Min performance ratio: %.2f%% (%s).", mastery.ReportRatio(s.Worst.Ratio), s.Worst.Pair)))
		}
	}
	c.println(theme.Hint.Render(fmt.Sprintf("%d question(s): %d correct (%d slow), %d incorrect in %s.",
		s.TotalQuestions, s.TotalCorrect, s.TotalSlow, s.TotalIncorrect, s.Duration.Round(100*time.Millisecond))))
}

// Printf writes a plain message, e.g. where the answer log was saved.
func (c *Console) Printf(format string, args ...any) {
	c.print(fmt.Sprintf(format, args...))
}

func status(fb *session.Feedback) string {
	switch {
	case fb.OutstandingErrors > 0:
		return "(" + errorStatus(fb) + ")"
	case fb.OutstandingSlow > 0:
		return fmt.Sprintf("(%d slow answer(s) remain for %d sets.)", fb.OutstandingSlow, fb.DistinctSlow)
	}
	return fmt.Sprintf("(ConsSucc=%d/%d)", fb.ConsecutiveSuccesses, fb.RequiredSuccesses)
}

func errorStatus(fb *session.Feedback) string {
	return fmt.Sprintf("%d blocking question(s) remain for %d incorrect sets.", fb.OutstandingErrors, fb.DistinctErrors)
}

func (c *Console) waitKey(prompt string) error {
	if !c.interactive {
		return nil
	}
	c.print(theme.Hint.Render(prompt))
	key, err := c.readKey()
	c.println()
	if err != nil {
		return err
	}
	if key == keyCtrlC || key == keyCtrlD {
		return io.EOF
	}
	c.clear()
	return nil
}

// readKey reads a single keypress in raw mode, falling back to a full line
// when the terminal cannot be switched.
func (c *Console) readKey() (byte, error) {
	state, err := term.MakeRaw(c.inFd)
	if err != nil {
		line, err := c.in.ReadString('\n')
		if line == "" {
			return 0, err
		}
		return line[0], nil
	}
	defer term.Restore(c.inFd, state)

	key, err := c.in.ReadByte()
	if err != nil {
		return 0, err
	}
	// Drop the rest of a multi-byte key such as an arrow.
	if n := c.in.Buffered(); n > 0 {
		_, _ = c.in.Discard(n)
	}
	return key, nil
}

func (c *Console) clear() {
	if c.clearScreen {
		io.WriteString(c.out, ansi.CursorHomePosition+ansi.EraseEntireScreen)
	}
}

func (c *Console) print(s string) {
	lipgloss.Fprint(c.out, s)
}

func (c *Console) println(s ...string) {
	lipgloss.Fprintln(c.out, strings.Join(s, ""))
}
