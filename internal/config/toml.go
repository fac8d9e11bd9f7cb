package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const templateHeader = `# multiplier configuration
#
# [drill] digits_operand1, digits_operand2, answers_per_minute and
# consecutive_successes are required. Any key can be overridden from the
# environment, e.g. MULTIPLIER_DRILL_ANSWERS_PER_MINUTE=40.
#
# timing_policy:      "complexity" scales the allowed time by the digit
#                     complexity of each product; "flat" allows 60s/answers_per_minute.
# termination_policy: "streak" needs consecutive_successes fast answers in a row;
#                     "rate" needs the last consecutive_successes correct answers
#                     to average answers_per_minute.
# log.answers_file:   answer log written at the end of a session (empty = off).

`

// Example returns the defaults with the required settings filled in for a
// single-digit drill.
func Example() *File {
	f := Defaults()
	d1, d2, streak := 1, 1, 10
	apm := 30.0
	f.Drill.DigitsOperand1 = &d1
	f.Drill.DigitsOperand2 = &d2
	f.Drill.AnswersPerMinute = &apm
	f.Drill.ConsecutiveSuccesses = &streak
	return f
}

// Encode writes f as TOML.
func Encode(w io.Writer, f *File) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// WriteTemplate writes the commented example config to path. An existing
// file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := io.WriteString(fh, templateHeader); err != nil {
		fh.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := Encode(fh, Example()); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
