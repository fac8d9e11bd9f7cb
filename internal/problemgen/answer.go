package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAnswer parses the learner's input as an integer. Surrounding
// whitespace and leading zeros are accepted.
func ParseAnswer(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return n, nil
}

// CheckAnswer reports whether input is the integer want. Unparseable input is
// simply wrong.
func CheckAnswer(input string, want int) bool {
	n, err := ParseAnswer(input)
	return err == nil && n == want
}
