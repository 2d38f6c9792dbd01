// Package log provides the structured diagnostic logger used by the
// estimator and its CLI driver, wrapping logrus the way a flight-computer
// style service would: JSON output, configurable level, one shared
// instance per filter.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin handle around a logrus.Logger, kept as its own type so
// callers depend on this package rather than logrus directly.
type Logger struct {
	*logrus.Logger
}

// New returns a JSON-formatted logger at the given level ("debug", "info",
// "warn", "error"; unrecognized values fall back to "info"), writing to w.
func New(level string, w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	l.SetLevel(parseLevel(level))
	return &Logger{Logger: l}
}

// NewNop returns a logger that discards all output, used as the zero-config
// default so a Filter never needs a nil check before logging.
func NewNop() *Logger {
	return New("error", io.Discard)
}

// Stdout returns a logger at the given level writing to os.Stdout.
func Stdout(level string) *Logger {
	return New(level, os.Stdout)
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
