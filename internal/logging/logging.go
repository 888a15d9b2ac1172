// Package logging configures the application logger. The terminal belongs to
// the dashboard, so log lines only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	// File is the log destination. Empty discards everything.
	File string
	// Level is a logrus level name.
	Level string
}

// New builds a logger. The returned closer releases the log file.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		DisableColors:   true,
	})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	if opts.File == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
