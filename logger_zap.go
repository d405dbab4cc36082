package libemit

import "go.uber.org/zap"

// zapLogger adapts a zap sugared logger to the Logger interface.
type zapLogger struct {
	inner *zap.SugaredLogger
}

// NewZapLogger wraps a zap sugared logger as a Logger.
func NewZapLogger(inner *zap.SugaredLogger) Logger {
	return zapLogger{inner: inner}
}

func (l zapLogger) WithField(key string, value any) Logger {
	return zapLogger{inner: l.inner.With(key, value)}
}

func (l zapLogger) Debugf(format string, args ...any) { l.inner.Debugf(format, args...) }
func (l zapLogger) Infof(format string, args ...any)  { l.inner.Infof(format, args...) }
func (l zapLogger) Warnf(format string, args ...any)  { l.inner.Warnf(format, args...) }
func (l zapLogger) Errorf(format string, args ...any) { l.inner.Errorf(format, args...) }
