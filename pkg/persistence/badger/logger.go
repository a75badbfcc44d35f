package badger

import (
	"strings"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// zapBadgerLogger forwards Badger's printf-style logging to a sugared zap
// logger. Badger's info output (compactions, table flushes) goes to debug.
type zapBadgerLogger struct {
	sugar *zap.SugaredLogger
}

var _ badgerdb.Logger = (*zapBadgerLogger)(nil)

func newZapBadgerLogger(l *zap.Logger) *zapBadgerLogger {
	return &zapBadgerLogger{sugar: l.With(zap.String("component", "badger")).Sugar()}
}

// Badger terminates most format strings with a newline.
func trimFormat(format string) string {
	return strings.TrimRight(format, "\n")
}

func (l *zapBadgerLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(trimFormat(format), args...)
}

func (l *zapBadgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(trimFormat(format), args...)
}

func (l *zapBadgerLogger) Infof(format string, args ...interface{}) {
	l.sugar.Debugf(trimFormat(format), args...)
}

func (l *zapBadgerLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(trimFormat(format), args...)
}
