package libemit

type noopLogger struct{}

// NopLogger returns a Logger that discards everything. It is the logger
// emitters are created with unless WithLogger overrides it.
func NopLogger() Logger { return noopLogger{} }

func (l noopLogger) WithField(string, any) Logger { return l }
func (noopLogger) Debugf(string, ...any)          {}
func (noopLogger) Infof(string, ...any)           {}
func (noopLogger) Warnf(string, ...any)           {}
func (noopLogger) Errorf(string, ...any)          {}
