package libemit

import (
	"fmt"
	"strings"
	"sync"
)

type logRecord struct {
	level string
	msg   string
}

// recordStore collects log lines behind a mutex so loggers derived through
// WithField all report into the same place.
type recordStore struct {
	mu      sync.Mutex
	records []logRecord
}

func (s *recordStore) add(level, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, logRecord{level: level, msg: fmt.Sprintf(format, args...)})
}

func (s *recordStore) count(level string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.records {
		if r.level == level {
			n++
		}
	}
	return n
}

func (s *recordStore) contains(level, substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.level == level && strings.Contains(r.msg, substr) {
			return true
		}
	}
	return false
}

// recordLogger is a Logger that captures every line for assertions.
type recordLogger struct {
	store  *recordStore
	fields map[string]any
}

func newRecordLogger() *recordLogger {
	return &recordLogger{store: &recordStore{}}
}

func (l *recordLogger) WithField(key string, value any) Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &recordLogger{store: l.store, fields: fields}
}

func (l *recordLogger) Debugf(format string, args ...any) { l.store.add("DEBUG", format, args...) }
func (l *recordLogger) Infof(format string, args ...any)  { l.store.add("INFO", format, args...) }
func (l *recordLogger) Warnf(format string, args ...any)  { l.store.add("WARN", format, args...) }
func (l *recordLogger) Errorf(format string, args ...any) { l.store.add("ERROR", format, args...) }
