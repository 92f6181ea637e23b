// Package logging configures the shared structured logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	// Log is the shared entry carrying service-wide fields. Packages derive
	// their own entries from it with WithField.
	Log *logrus.Entry
)

func init() {
	Init("development")
}

// Init builds the shared logger. Production gets JSON output for log
// ingestion; everything else gets plain text for readability.
func Init(environment string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithFields(logrus.Fields{
		"service": "snapchat",
		"env":     environment,
	})
}

// SetLevel adjusts the minimum level of the shared logger.
func SetLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// SetOutput redirects the shared logger, used by tests to silence it.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}
