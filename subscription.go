package libemit

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Event pairs an event name with the payload it was emitted with. It is the
// element type of the stream returned by SubscribeAny.
type Event[K comparable, V any] struct {
	Name  K
	Value V
}

// Subscription is a pull-model consumer endpoint: a bounded channel written
// by Emit and read by exactly one consumer. Receive from Out until it is
// closed, then stop; call Close when done to detach from the emitter.
//
// A subscription is never reclaimed on its own. Abandoning the reader
// without calling Close (or Clear/ClearAll on the emitter) keeps it
// registered and, once its buffer fills, blocks every later Emit of its
// event name.
type Subscription[T any] struct {
	ch   chan T
	done chan struct{}

	mu      sync.Mutex
	closing bool
	pending sync.WaitGroup

	closeOnce sync.Once
	remove    func()

	oneshot bool

	logger   Logger
	clock    clock.Clock
	slowWarn time.Duration
}

func newSubscription[T any](buffer int, cfg config, remove func()) *Subscription[T] {
	return &Subscription[T]{
		ch:       make(chan T, buffer),
		done:     make(chan struct{}),
		remove:   remove,
		logger:   cfg.logger,
		clock:    cfg.clock,
		slowWarn: cfg.slowWarn,
	}
}

// newClosedSubscription returns a subscription that is already terminated:
// reads observe end of sequence right away. Handed out by NoopEmitter.
func newClosedSubscription[T any]() *Subscription[T] {
	s := &Subscription[T]{
		ch:     make(chan T),
		done:   make(chan struct{}),
		remove: func() {},
		logger: NopLogger(),
	}
	s.closing = true
	close(s.done)
	close(s.ch)
	// Burn the once so a later Close is a no-op.
	s.closeOnce.Do(func() {})
	return s
}

// Out returns the channel Emit delivers elements on. The channel is closed
// when the subscription terminates; elements delivered before termination
// stay readable until drained.
func (s *Subscription[T]) Out() <-chan T {
	return s.ch
}

// Close terminates the subscription. It detaches from the emitter and
// releases, without error, any Emit currently blocked writing to it; once
// in-flight writes have settled the channel is closed, so the reader
// observes end of sequence after draining. Close is idempotent and safe to
// call from the reading goroutine.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		s.remove()

		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		close(s.done)
		s.pending.Wait()
		close(s.ch)
	})
}

// push delivers v to the reader, blocking while the buffer is full. It
// reports whether the value was handed over: a push woken by Close returns
// false and its value is discarded, which is how a blocked Emit gets
// released when nobody will read again.
func (s *Subscription[T]) push(v T) bool {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return false
	}
	s.pending.Add(1)
	s.mu.Unlock()
	defer s.pending.Done()

	if s.slowWarn <= 0 {
		select {
		case s.ch <- v:
			return true
		case <-s.done:
			return false
		}
	}

	timer := s.clock.Timer(s.slowWarn)
	defer timer.Stop()

	select {
	case s.ch <- v:
		return true
	case <-s.done:
		return false
	case <-timer.C:
		s.logger.Warnf("emit blocked for %s waiting on slow consumer", s.slowWarn)
	}

	select {
	case s.ch <- v:
		return true
	case <-s.done:
		return false
	}
}
