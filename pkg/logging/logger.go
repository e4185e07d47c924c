// Package logging provides the levelled, field-carrying logger used by the
// validator trace and the verischema command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level for logs.
type LogLevel = logrus.Level

const (
	LevelError = logrus.ErrorLevel
	LevelWarn  = logrus.WarnLevel
	LevelInfo  = logrus.InfoLevel
	LevelDebug = logrus.DebugLevel
)

// ParseLogLevel parses a string into a LogLevel. Unknown names map to LevelWarn.
func ParseLogLevel(s string) LogLevel {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return LevelWarn
	}
	return level
}

// Logger is the interface used by the validator for logging.
type Logger interface {
	// Debugf, Infof, Warnf, Errorf log formatted messages at respective levels.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger augmented with the provided fields.
	With(fields map[string]any) Logger
}

// Config selects the writer, level and timestamping of a text logger.
type Config struct {
	Level     LogLevel
	Output    io.Writer
	Timestamp bool
}

// entryLogger adapts a logrus entry to Logger. Children share the parent's
// *logrus.Logger, and with it the output lock.
type entryLogger struct {
	entry *logrus.Entry
}

// New creates a text logger from cfg. A nil Output writes to os.Stderr.
//
// Lines follow the logrus text format: level=warning msg="..." key=value.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(cfg.Level)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: !cfg.Timestamp,
		FullTimestamp:    cfg.Timestamp,
	})
	return &entryLogger{entry: logrus.NewEntry(base)}
}

func (l *entryLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &entryLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *entryLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *entryLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *entryLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *entryLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// NewNop returns a logger that discards all output.
func NewNop() Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetLevel(logrus.PanicLevel)
	return &entryLogger{entry: logrus.NewEntry(base)}
}
