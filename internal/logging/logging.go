// Package logging builds the diagnostic logger. Diagnostics go to stderr and
// stay quiet by default so they do not interleave with drill prompts.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	DefaultLevel  = "warn"
	DefaultFormat = "text"
)

// New builds a logger writing to w at the given level. Format is "text" or
// "json".
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
