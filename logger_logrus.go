package libemit

import "github.com/sirupsen/logrus"

// logrusLogger adapts a logrus logger or entry to the Logger interface.
type logrusLogger struct {
	inner logrus.FieldLogger
}

// NewLogrusLogger wraps a logrus logger (or a derived entry) as a Logger.
func NewLogrusLogger(inner logrus.FieldLogger) Logger {
	return logrusLogger{inner: inner}
}

func (l logrusLogger) WithField(key string, value any) Logger {
	return logrusLogger{inner: l.inner.WithField(key, value)}
}

func (l logrusLogger) Debugf(format string, args ...any) { l.inner.Debugf(format, args...) }
func (l logrusLogger) Infof(format string, args ...any)  { l.inner.Infof(format, args...) }
func (l logrusLogger) Warnf(format string, args ...any)  { l.inner.Warnf(format, args...) }
func (l logrusLogger) Errorf(format string, args ...any) { l.inner.Errorf(format, args...) }
