package purge

import (
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
)

// newErrorLogger returns a retryablehttp.LeveledLogger that only forwards
// errors to the given logr.Logger.
func newErrorLogger(log logr.Logger) retryablehttp.LeveledLogger {
	return &errorLogger{log: log}
}

type errorLogger struct {
	log logr.Logger
}

func (l *errorLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error(nil, msg, keysAndValues...)
}

func (l *errorLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *errorLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(1).Info(msg, keysAndValues...)
}

func (l *errorLogger) Warn(msg string, keysAndValues ...interface{}) {}
