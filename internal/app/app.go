// Package app wires a drill session to the console, the history store and
// the answer log.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/multiplier/internal/console"
	"github.com/abhisek/multiplier/internal/logging"
	"github.com/abhisek/multiplier/internal/session"
)

// Options holds the dependencies of one drill run.
type Options struct {
	Session session.Config

	// AnswersFile receives the answer log when set.
	AnswersFile string

	// History records the session; nil disables recording.
	History session.History

	Logger logrus.FieldLogger

	In  io.Reader
	Out io.Writer

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Run runs one drill session to completion or end of input. The summary is
// returned in both cases; session.ErrInputClosed reports the latter.
func Run(ctx context.Context, opts Options) (*session.SessionSummary, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.AnswersFile != "" {
		opts.Session.LogAnswers = true
	}

	id := uuid.New().String()
	log := opts.Logger.WithField("session_id", id)
	state := session.NewSessionState(opts.Session, id, nil)
	con := console.New(opts.In, opts.Out)
	runner := session.NewRunner(state, con, session.RunnerOptions{
		History: opts.History,
		Now:     opts.Now,
		Logger:  opts.Logger,
	})

	log.WithFields(logrus.Fields{
		"digits":      fmt.Sprintf("%dx%d", opts.Session.DigitsOperand1, opts.Session.DigitsOperand2),
		"timing":      opts.Session.Timing,
		"termination": opts.Session.Termination,
	}).Info("session started")

	summary, runErr := runner.Run(ctx)

	log.WithFields(logrus.Fields{
		"questions":   summary.TotalQuestions,
		"succeeded":   summary.Succeeded,
		"guard_trips": state.Generator.GuardTrips(),
	}).Info("session ended")

	if opts.AnswersFile != "" {
		if err := writeAnswers(opts.AnswersFile, state.Answers); err != nil {
			return summary, errors.Join(runErr, err)
		}
		con.Printf("Answers logged in file '%s'.\n", opts.AnswersFile)
	}
	return summary, runErr
}

func writeAnswers(path string, answers []session.Answer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create answer log dir: %w", err)
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create answer log: %w", err)
	}
	if err := session.WriteLog(fh, answers); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
