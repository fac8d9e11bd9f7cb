package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/mastery"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const sampleTOML = `
[drill]
digits_operand1 = 2
digits_operand2 = 1
answers_per_minute = 25.5
consecutive_successes = 12
timing_policy = "flat"

[log]
answers_file = "answers.txt"
`

func TestLoad_TOML(t *testing.T) {
	f, err := Load(writeFile(t, "config.toml", sampleTOML), true)
	require.NoError(t, err)
	require.NoError(t, Validate(f, "config.toml"))

	require.NotNil(t, f.Drill.DigitsOperand1)
	assert.Equal(t, 2, *f.Drill.DigitsOperand1)
	assert.Equal(t, 25.5, *f.Drill.AnswersPerMinute)
	assert.Equal(t, "flat", f.Drill.TimingPolicy)
	assert.Equal(t, "answers.txt", f.Log.AnswersFile)

	// Defaults fill everything not in the file.
	assert.Equal(t, 0.8, f.Drill.NonCarryCoeff)
	assert.Equal(t, 1.5, f.Drill.CarryCoeff)
	assert.Equal(t, 3, f.Drill.NonRepeatQueueLength)
	assert.Equal(t, 5, f.Drill.ReinforceRepeatCap)
	assert.Equal(t, "streak", f.Drill.TerminationPolicy)
	assert.True(t, f.Drill.RateWindowResetsOnSlow)
	assert.Equal(t, "warn", f.Log.Level)
	assert.True(t, f.History.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	f, err := Load(missing, false)
	require.NoError(t, err)
	assert.Nil(t, f.Drill.DigitsOperand1)

	err = Validate(f, missing)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
	assert.Equal(t, missing, verr.Source)

	_, err = Load(missing, true)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MULTIPLIER_DRILL_DIGITS_OPERAND1", "3")
	t.Setenv("MULTIPLIER_DRILL_CARRY_COEFF", "2.5")
	t.Setenv("MULTIPLIER_LOG_LEVEL", "debug")

	f, err := Load(writeFile(t, "config.toml", sampleTOML), true)
	require.NoError(t, err)
	assert.Equal(t, 3, *f.Drill.DigitsOperand1)
	assert.Equal(t, 2.5, f.Drill.CarryCoeff)
	assert.Equal(t, "debug", f.Log.Level)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "[drill\n"), true)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
		ok     bool
	}{
		{"example", func(*File) {}, true},
		{"zero digits", func(f *File) { z := 0; f.Drill.DigitsOperand1 = &z }, false},
		{"zero rate", func(f *File) { z := 0.0; f.Drill.AnswersPerMinute = &z }, false},
		{"zero streak", func(f *File) { z := 0; f.Drill.ConsecutiveSuccesses = &z }, false},
		{"missing streak", func(f *File) { f.Drill.ConsecutiveSuccesses = nil }, false},
		{"negative queue", func(f *File) { f.Drill.NonRepeatQueueLength = -1 }, false},
		{"zero queue", func(f *File) { f.Drill.NonRepeatQueueLength = 0 }, true},
		{"zero cap", func(f *File) { f.Drill.ReinforceRepeatCap = 0 }, false},
		{"bad timing", func(f *File) { f.Drill.TimingPolicy = "fast" }, false},
		{"rate termination", func(f *File) { f.Drill.TerminationPolicy = "rate" }, true},
		{"bad log format", func(f *File) { f.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Example()
			tt.mutate(f)
			err := Validate(f, "")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
		})
	}
}

func TestParseLegacy_Full(t *testing.T) {
	in := "2\n1\n30\n15\nlog.txt\n0.7\n1.4\n4\n6\n"
	f, err := ParseLegacy(strings.NewReader(in))
	require.NoError(t, err)
	require.NoError(t, Validate(f, ""))

	assert.Equal(t, 2, *f.Drill.DigitsOperand1)
	assert.Equal(t, 1, *f.Drill.DigitsOperand2)
	assert.Equal(t, 30.0, *f.Drill.AnswersPerMinute)
	assert.Equal(t, 15, *f.Drill.ConsecutiveSuccesses)
	assert.Equal(t, "log.txt", f.Log.AnswersFile)
	assert.Equal(t, 0.7, f.Drill.NonCarryCoeff)
	assert.Equal(t, 1.4, f.Drill.CarryCoeff)
	assert.Equal(t, 4, f.Drill.NonRepeatQueueLength)
	assert.Equal(t, 6, f.Drill.ReinforceRepeatCap)
}

func TestParseLegacy_OptionalLinesDefault(t *testing.T) {
	f, err := ParseLegacy(strings.NewReader("1\n1\n20\n10\n"))
	require.NoError(t, err)
	require.NoError(t, Validate(f, ""))

	assert.Empty(t, f.Log.AnswersFile)
	assert.Equal(t, 0.8, f.Drill.NonCarryCoeff)
	assert.Equal(t, 1.5, f.Drill.CarryCoeff)
	assert.Equal(t, 3, f.Drill.NonRepeatQueueLength)
	assert.Equal(t, 5, f.Drill.ReinforceRepeatCap)
}

func TestParseLegacy_Errors(t *testing.T) {
	_, err := ParseLegacy(strings.NewReader("1\ntwo\n20\n10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	f, err := ParseLegacy(strings.NewReader("1\n1\n"))
	require.NoError(t, err, "missing required lines are a validation failure")
	assert.Error(t, Validate(f, ""))
}

func TestLoad_LegacyExtension(t *testing.T) {
	f, err := Load(writeFile(t, "multiplier.cfg", "1\n2\n30\n8\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 2, *f.Drill.DigitsOperand2)
}

func TestSession(t *testing.T) {
	f, err := ParseLegacy(strings.NewReader("2\n1\n30\n15\nlog.txt\n"))
	require.NoError(t, err)
	f.Drill.TerminationPolicy = "rate"
	f.Drill.Seed = 42

	cfg, err := f.Session()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.DigitsOperand1)
	assert.Equal(t, 30.0, cfg.AnswersPerMinute)
	assert.Equal(t, 15, cfg.ConsecutiveSuccesses)
	assert.Equal(t, complexity.TimingComplexity, cfg.Timing)
	assert.Equal(t, mastery.TerminationRate, cfg.Termination)
	assert.True(t, cfg.LogAnswers)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, complexity.DefaultCoefficients(), cfg.Coefficients)

	_, err = Defaults().Session()
	assert.Error(t, err)
}

func TestWriteTemplate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	require.NoError(t, WriteTemplate(path, false))
	assert.Error(t, WriteTemplate(path, false), "existing file needs force")
	require.NoError(t, WriteTemplate(path, true))

	f, err := Load(path, true)
	require.NoError(t, err)
	require.NoError(t, Validate(f, path))
	assert.Equal(t, Example(), f)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Example()))
	out := buf.String()
	assert.Contains(t, out, "[drill]")
	assert.Contains(t, out, "digits_operand1 = 1")
	assert.Contains(t, out, `timing_policy = "complexity"`)
}

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "multiplier", "config.toml"), DefaultConfigPath())
}
