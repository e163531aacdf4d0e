// Package logging configures logrus for the CLI and the HTTP server
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Init configures the standard logrus logger
func Init(level, format string) error {
	return Configure(logrus.StandardLogger(), level, format, os.Stderr)
}

// Configure sets level, formatter and output on l. JSON output uses the
// timestamp/level/message keys.
func Configure(l *logrus.Logger, level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		l.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format %q: want %s or %s", format, FormatJSON, FormatText)
	}

	l.SetOutput(out)
	l.SetLevel(lvl)
	return nil
}

// Component returns an entry of the standard logger tagged with a component name
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
