// Package config loads drill settings from TOML (or the legacy line-oriented
// .cfg format), environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/multiplier/internal/complexity"
	"github.com/abhisek/multiplier/internal/logging"
	"github.com/abhisek/multiplier/internal/mastery"
	"github.com/abhisek/multiplier/internal/problemgen"
	"github.com/abhisek/multiplier/internal/session"
	"github.com/abhisek/multiplier/internal/weakness"
)

// EnvPrefix prefixes every environment override, e.g.
// MULTIPLIER_DRILL_DIGITS_OPERAND1.
const EnvPrefix = "MULTIPLIER"

// File is the configuration file layout.
type File struct {
	Drill   Drill   `mapstructure:"drill" toml:"drill" json:"drill"`
	Log     Log     `mapstructure:"log" toml:"log" json:"log"`
	History History `mapstructure:"history" toml:"history" json:"history"`
}

// Drill holds the session settings. The four pointer fields are required.
type Drill struct {
	DigitsOperand1       *int     `mapstructure:"digits_operand1" toml:"digits_operand1,omitempty" json:"digits_operand1,omitempty"`
	DigitsOperand2       *int     `mapstructure:"digits_operand2" toml:"digits_operand2,omitempty" json:"digits_operand2,omitempty"`
	AnswersPerMinute     *float64 `mapstructure:"answers_per_minute" toml:"answers_per_minute,omitempty" json:"answers_per_minute,omitempty"`
	ConsecutiveSuccesses *int     `mapstructure:"consecutive_successes" toml:"consecutive_successes,omitempty" json:"consecutive_successes,omitempty"`

	NonCarryCoeff          float64 `mapstructure:"non_carry_coeff" toml:"non_carry_coeff" json:"non_carry_coeff"`
	CarryCoeff             float64 `mapstructure:"carry_coeff" toml:"carry_coeff" json:"carry_coeff"`
	NonRepeatQueueLength   int     `mapstructure:"non_repeat_queue_length" toml:"non_repeat_queue_length" json:"non_repeat_queue_length"`
	ReinforceRepeatCap     int     `mapstructure:"reinforce_repeat_cap" toml:"reinforce_repeat_cap" json:"reinforce_repeat_cap"`
	TimingPolicy           string  `mapstructure:"timing_policy" toml:"timing_policy" json:"timing_policy"`
	TerminationPolicy      string  `mapstructure:"termination_policy" toml:"termination_policy" json:"termination_policy"`
	RateWindowResetsOnSlow bool    `mapstructure:"rate_window_resets_on_slow" toml:"rate_window_resets_on_slow" json:"rate_window_resets_on_slow"`
	Seed                   int64   `mapstructure:"seed" toml:"seed" json:"seed"`
}

// Log configures the answer log file and diagnostic logging.
type Log struct {
	// AnswersFile receives the answer log; empty disables answer logging.
	AnswersFile string `mapstructure:"answers_file" toml:"answers_file" json:"answers_file"`
	Level       string `mapstructure:"level" toml:"level" json:"level"`
	Format      string `mapstructure:"format" toml:"format" json:"format"`
}

// History configures the session history database.
type History struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// DB is the SQLite path; empty uses store.DefaultDBPath.
	DB string `mapstructure:"db" toml:"db" json:"db"`
}

// Defaults returns a File with every optional setting at its default and the
// required settings unset.
func Defaults() *File {
	coeff := complexity.DefaultCoefficients()
	return &File{
		Drill: Drill{
			NonCarryCoeff:          coeff.NonCarry,
			CarryCoeff:             coeff.Carry,
			NonRepeatQueueLength:   problemgen.DefaultNonRepeatQueueLength,
			ReinforceRepeatCap:     weakness.DefaultRepeatCap,
			TimingPolicy:           string(complexity.TimingComplexity),
			TerminationPolicy:      string(mastery.TerminationStreak),
			RateWindowResetsOnSlow: true,
		},
		Log: Log{
			Level:  logging.DefaultLevel,
			Format: logging.DefaultFormat,
		},
		History: History{Enabled: true},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("drill.non_carry_coeff", d.Drill.NonCarryCoeff)
	v.SetDefault("drill.carry_coeff", d.Drill.CarryCoeff)
	v.SetDefault("drill.non_repeat_queue_length", d.Drill.NonRepeatQueueLength)
	v.SetDefault("drill.reinforce_repeat_cap", d.Drill.ReinforceRepeatCap)
	v.SetDefault("drill.timing_policy", d.Drill.TimingPolicy)
	v.SetDefault("drill.termination_policy", d.Drill.TerminationPolicy)
	v.SetDefault("drill.rate_window_resets_on_slow", d.Drill.RateWindowResetsOnSlow)
	v.SetDefault("drill.seed", d.Drill.Seed)

	v.SetDefault("log.answers_file", d.Log.AnswersFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.db", d.History.DB)
}

// requiredKeys have no default, so they are bound to the environment
// explicitly.
var requiredKeys = []string{
	"drill.digits_operand1",
	"drill.digits_operand2",
	"drill.answers_per_minute",
	"drill.consecutive_successes",
}

// Load reads the configuration at path. A missing file is not an error unless
// mustExist is set; defaults and environment overrides still apply. A path
// ending in .cfg is read with the legacy line format. The result is not
// validated: callers apply flag overrides first and then call Validate.
func Load(path string, mustExist bool) (*File, error) {
	if strings.EqualFold(filepath.Ext(path), LegacyExt) {
		f, err := LoadLegacy(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range requiredKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if mustExist || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &f, nil
}

// Session converts a validated File to a session configuration.
func (f *File) Session() (session.Config, error) {
	d := f.Drill
	if d.DigitsOperand1 == nil || d.DigitsOperand2 == nil || d.AnswersPerMinute == nil || d.ConsecutiveSuccesses == nil {
		return session.Config{}, errors.New("required drill settings missing")
	}
	timing, err := complexity.ParseTimingPolicy(d.TimingPolicy)
	if err != nil {
		return session.Config{}, err
	}
	termination, err := mastery.ParseTerminationPolicy(d.TerminationPolicy)
	if err != nil {
		return session.Config{}, err
	}

	return session.Config{
		DigitsOperand1:         *d.DigitsOperand1,
		DigitsOperand2:         *d.DigitsOperand2,
		AnswersPerMinute:       *d.AnswersPerMinute,
		ConsecutiveSuccesses:   *d.ConsecutiveSuccesses,
		Coefficients:           complexity.Coefficients{NonCarry: d.NonCarryCoeff, Carry: d.CarryCoeff},
		NonRepeatQueueLength:   d.NonRepeatQueueLength,
		ReinforceRepeatCap:     d.ReinforceRepeatCap,
		Timing:                 timing,
		Termination:            termination,
		RateWindowResetsOnSlow: d.RateWindowResetsOnSlow,
		LogAnswers:             f.Log.AnswersFile != "",
		Seed:                   d.Seed,
	}, nil
}
