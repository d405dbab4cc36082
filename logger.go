package libemit

// Logger is the logging surface the emitter writes diagnostics to: recovered
// listener panics, slow consumer warnings and registry teardown notes.
// Adapters for logrus and zap ship with the package; the default is NopLogger.
type Logger interface {
	WithField(key string, value any) Logger
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
