// Package logger provides the shared structured logger configuration.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is re-exported so callers don't import logrus directly.
type Fields = logrus.Fields

// New builds a logger writing text-formatted entries to stderr at the given
// level. Unknown levels fall back to info rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// WithComponent scopes a logger to one component so every entry carries its
// origin.
func WithComponent(log *logrus.Logger, component string) *logrus.Entry {
	return log.WithField("component", component)
}
