package multihost

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger receives leveled, key/value structured debug output.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// KitLogger adapts a go-kit logger to Logger.
type KitLogger struct {
	logger log.Logger
}

// NewSimpleLogger logs logfmt lines to stderr.
func NewSimpleLogger() *KitLogger {
	return NewKitLogger(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)))
}

// NewKitLogger wraps logger, tagging every line with a timestamp and the
// component name. A nil logger discards everything.
func NewKitLogger(logger log.Logger) *KitLogger {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "component", "multihost")
	return &KitLogger{logger: logger}
}

func (l *KitLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(level.Debug(l.logger), msg, keysAndValues)
}

func (l *KitLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(level.Info(l.logger), msg, keysAndValues)
}

func (l *KitLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(level.Warn(l.logger), msg, keysAndValues)
}

func (l *KitLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(level.Error(l.logger), msg, keysAndValues)
}

func (l *KitLogger) log(logger log.Logger, msg string, keysAndValues []interface{}) {
	kv := make([]interface{}, 0, len(keysAndValues)+3)
	kv = append(kv, "msg", msg)
	kv = append(kv, keysAndValues...)
	if len(keysAndValues)%2 != 0 {
		kv = append(kv, log.ErrMissingValue)
	}
	_ = logger.Log(kv...)
}
