package problemgen

// DefaultNonRepeatQueueLength is the default number of recent pairs that may
// not be presented again.
const DefaultNonRepeatQueueLength = 3

// DefaultMaxAttempts bounds rejection sampling before the non-repeat window
// is shrunk.
const DefaultMaxAttempts = 1000

// Config controls operand generation.
type Config struct {
	// DigitsOperand1 and DigitsOperand2 are the decimal widths of freshly
	// drawn operands. Which one leads is randomized per question.
	DigitsOperand1 int
	DigitsOperand2 int

	// NonRepeatQueueLength is how many recently presented canonical pairs are
	// excluded from the next draw. Zero disables the check.
	NonRepeatQueueLength int

	// MaxAttempts is the number of rejected draws tolerated before the oldest
	// queued pair is released.
	MaxAttempts int
}

// DefaultConfig returns a Config for single-digit drills.
func DefaultConfig() Config {
	return Config{
		DigitsOperand1:       1,
		DigitsOperand2:       1,
		NonRepeatQueueLength: DefaultNonRepeatQueueLength,
		MaxAttempts:          DefaultMaxAttempts,
	}
}
