package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logger.
// Production uses JSON lines; everything else uses the text formatter.
func Setup(env, level string) *logrus.Logger {
	l := logrus.StandardLogger()
	configure(l, env, level, os.Stderr)
	return l
}

func configure(l *logrus.Logger, env, level string, out io.Writer) {
	l.SetOutput(out)
	if env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
}

// For returns a logger tagged with the component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
