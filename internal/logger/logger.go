package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the process-wide structured logger. Level falls back to
// the LOG_LEVEL environment variable, then to info.
func Init(level string) *logrus.Logger {
	l := logrus.New()

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
	}

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(parsed)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("invalid_level", level).Warn("invalid log level, using info")
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.SetOutput(os.Stderr)

	log = l
	return l
}

// Get returns the process logger, initializing it with defaults on first use.
func Get() *logrus.Logger {
	if log == nil {
		return Init("")
	}
	return log
}

// WithLeague tags entries with the league being processed.
func WithLeague(league string) *logrus.Entry {
	return Get().WithField("league", league)
}

// WithMatchup tags entries with both sides of a pairing.
func WithMatchup(league, teamA, teamB string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"league": league,
		"team_a": teamA,
		"team_b": teamB,
	})
}
