package libemit

import (
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// DefaultMaxListeners bounds how many listeners or subscriptions a single
	// registry (one per event name, plus the global ones) accepts.
	DefaultMaxListeners uint = 10

	// DefaultBuffer is the capacity of subscription channels.
	DefaultBuffer = 16
)

type config struct {
	maxListeners uint
	buffer       int
	slowWarn     time.Duration
	logger       Logger
	clock        clock.Clock
}

// Option configures an Emitter at construction time.
type Option func(*config)

func defaultConfig() config {
	return config{
		maxListeners: DefaultMaxListeners,
		buffer:       DefaultBuffer,
		logger:       NopLogger(),
		clock:        clock.New(),
	}
}

// WithMaxListeners sets the bound enforced, independently, on each of the
// four registries: listeners of one event name, global listeners,
// subscriptions on one event name, and global subscriptions. Zero disables
// the limit.
func WithMaxListeners(n uint) Option {
	return func(c *config) {
		c.maxListeners = n
	}
}

// WithBuffer sets the capacity of subscription channels. Values below one
// are clamped to one so a Next future can always hold its value.
func WithBuffer(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.buffer = n
	}
}

// WithLogger sets the logger diagnostics are reported to. Defaults to
// NopLogger.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l == nil {
			l = NopLogger()
		}
		c.logger = l
	}
}

// WithClock swaps the clock used for slow consumer detection. Intended for
// tests running against a mock clock.
func WithClock(cl clock.Clock) Option {
	return func(c *config) {
		if cl == nil {
			cl = clock.New()
		}
		c.clock = cl
	}
}

// WithSlowConsumerThreshold makes Emit log a warning whenever a subscription
// write stays blocked longer than d. The write still waits for the reader,
// only the diagnostic is added. Zero disables the warning.
func WithSlowConsumerThreshold(d time.Duration) Option {
	return func(c *config) {
		c.slowWarn = d
	}
}
