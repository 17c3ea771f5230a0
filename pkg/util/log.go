// Package util provides logging construction and common error types.
package util

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing to stderr at the given level.
// Unknown level strings fall back to info. The logger is passed explicitly
// into component constructors; no package-global instance exists.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// NewTestLogger returns a silent logger for use in tests.
func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithEndpoint returns an entry carrying device and interface fields.
func WithEndpoint(log *logrus.Logger, deviceID, interfaceID string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"device":    deviceID,
		"interface": interfaceID,
	})
}
