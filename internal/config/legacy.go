package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LegacyExt marks a config file in the line-oriented format:
//
//	line 1  operand 1 digits
//	line 2  operand 2 digits
//	line 3  required answers per minute
//	line 4  required consecutive successes
//	line 5  answer log path (blank disables)
//	line 6  non-carry addition coefficient
//	line 7  carry addition coefficient
//	line 8  non-repeat queue length
//	line 9  reinforce repeat cap
//
// Lines 5 to 9 may be omitted or left blank.
const LegacyExt = ".cfg"

// LoadLegacy reads a legacy .cfg file.
func LoadLegacy(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	defer fh.Close()

	f, err := ParseLegacy(fh)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// ParseLegacy parses the legacy line format. Required lines that are missing
// are left unset for Validate to report; lines that are present but
// malformed are errors.
func ParseLegacy(r io.Reader) (*File, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	line := func(n int) string {
		if n-1 < len(lines) {
			return lines[n-1]
		}
		return ""
	}

	f := Defaults()
	d := &f.Drill

	var err error
	if d.DigitsOperand1, err = optInt(line(1), 1); err != nil {
		return nil, err
	}
	if d.DigitsOperand2, err = optInt(line(2), 2); err != nil {
		return nil, err
	}
	if s := line(3); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, lineErr(3, s, err)
		}
		d.AnswersPerMinute = &v
	}
	if d.ConsecutiveSuccesses, err = optInt(line(4), 4); err != nil {
		return nil, err
	}

	f.Log.AnswersFile = line(5)

	if s := line(6); s != "" {
		if d.NonCarryCoeff, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, lineErr(6, s, err)
		}
	}
	if s := line(7); s != "" {
		if d.CarryCoeff, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, lineErr(7, s, err)
		}
	}
	if s := line(8); s != "" {
		if d.NonRepeatQueueLength, err = strconv.Atoi(s); err != nil {
			return nil, lineErr(8, s, err)
		}
	}
	if s := line(9); s != "" {
		if d.ReinforceRepeatCap, err = strconv.Atoi(s); err != nil {
			return nil, lineErr(9, s, err)
		}
	}
	return f, nil
}

func optInt(s string, n int) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, lineErr(n, s, err)
	}
	return &v, nil
}

func lineErr(n int, s string, err error) error {
	return fmt.Errorf("line %d %q: %w", n, s, err)
}
