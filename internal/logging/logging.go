// Package logging provides the shared logrus logger used across the application.
// Packages grab the shared instance at init time via GetLogger and may be
// re-pointed at a configured logger through their own SetLogger hooks.
package logging

import (
	"github.com/sirupsen/logrus"
)

// shared is the process-wide logger instance. It is configured once at
// startup by the root command and handed to every package that logs.
var shared = logrus.New()

// GetLogger returns the shared logger instance.
func GetLogger() *logrus.Logger {
	return shared
}

// Configure applies level and format to the shared logger.
// Unknown levels fall back to info; any format other than "json" selects
// the text formatter with full timestamps.
func Configure(level, format string) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		shared.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	shared.SetLevel(logLevel)

	if format == "json" {
		shared.SetFormatter(&logrus.JSONFormatter{})
	} else {
		shared.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return shared
}

// SetAllLogLevels forces the given level on the global logrus logger and the
// shared instance so that loggers created before configuration agree with it.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	shared.SetLevel(level)
}
