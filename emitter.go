package libemit

import (
	"reflect"
	"sync"
	"sync/atomic"
)

type (
	// listenerEntry is one registered callback. ptr is the callback's code
	// pointer, the identity Off matches on. fired guards once entries
	// against double invocation when emits overlap.
	listenerEntry[F any] struct {
		fn    F
		ptr   uintptr
		once  bool
		fired atomic.Bool
	}

	// Emitter dispatches typed events to synchronous listeners and to
	// pull-model subscriptions. K names events, V is the payload every event
	// carries. The zero value is not usable; construct with New.
	//
	// Listeners registered with On and OnAny run inline on the emitting
	// goroutine. Subscriptions created with Subscribe, SubscribeAny and Next
	// receive the same events through bounded channels read at the
	// consumer's own pace. See Emit for the dispatch order between them.
	Emitter[K comparable, V any] struct {
		cfg config

		mu           sync.RWMutex
		listeners    map[K][]*listenerEntry[func(V)]
		anyListeners []*listenerEntry[func(K, V)]
		subs         map[K][]*Subscription[V]
		anySubs      []*Subscription[Event[K, V]]
	}
)

func newListenerEntry[F any](fn F, once bool) *listenerEntry[F] {
	return &listenerEntry[F]{
		fn:   fn,
		ptr:  reflect.ValueOf(fn).Pointer(),
		once: once,
	}
}

// New creates an empty emitter. Without options it allows
// DefaultMaxListeners registrations per registry and gives every
// subscription a DefaultBuffer element buffer.
func New[K comparable, V any](opts ...Option) *Emitter[K, V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Emitter[K, V]{
		cfg:       cfg,
		listeners: make(map[K][]*listenerEntry[func(V)]),
		subs:      make(map[K][]*Subscription[V]),
	}
}

// On registers fn as a persistent listener for name. Listeners of one name
// run in registration order on every emit of that name. Returns a
// LimitError when name's registry is full; a nil fn registers nothing.
func (e *Emitter[K, V]) On(name K, fn func(V)) error {
	return e.addListener(name, fn, false)
}

// Once registers fn like On, except the listener is invoked at most once
// and is dropped right after its first invocation returns.
func (e *Emitter[K, V]) Once(name K, fn func(V)) error {
	return e.addListener(name, fn, true)
}

func (e *Emitter[K, V]) addListener(name K, fn func(V), once bool) error {
	if fn == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLimit(len(e.listeners[name])); err != nil {
		return err
	}
	e.listeners[name] = append(e.listeners[name], newListenerEntry(fn, once))
	return nil
}

// OnAny registers fn as a persistent listener for every event name. Global
// listeners run after name's own listeners, in registration order, and
// receive the name alongside the payload.
func (e *Emitter[K, V]) OnAny(fn func(K, V)) error {
	return e.addAnyListener(fn, false)
}

// OnceAny registers fn like OnAny, except the listener is invoked at most
// once, by whichever event fires first.
func (e *Emitter[K, V]) OnceAny(fn func(K, V)) error {
	return e.addAnyListener(fn, true)
}

func (e *Emitter[K, V]) addAnyListener(fn func(K, V), once bool) error {
	if fn == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLimit(len(e.anyListeners)); err != nil {
		return err
	}
	e.anyListeners = append(e.anyListeners, newListenerEntry(fn, once))
	return nil
}

// Subscribe creates a pull consumer for name. Every later emit of name
// delivers its payload to the subscription in emit order, after the
// synchronous listeners have run. Terminate it with Close, or through Clear
// and ClearAll; see Subscription for what abandoning it costs.
func (e *Emitter[K, V]) Subscribe(name K) (*Subscription[V], error) {
	return e.subscribe(name, e.cfg.buffer, false)
}

// Next returns a channel that yields the payload of the next emit of name
// and is closed right after. The pending future occupies a slot in name's
// registry until it resolves or the emitter clears it; a cleared future's
// channel closes without ever yielding.
func (e *Emitter[K, V]) Next(name K) (<-chan V, error) {
	sub, err := e.subscribe(name, 1, true)
	if err != nil {
		return nil, err
	}
	return sub.ch, nil
}

func (e *Emitter[K, V]) subscribe(name K, buffer int, oneshot bool) (*Subscription[V], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLimit(len(e.subs[name])); err != nil {
		return nil, err
	}
	var sub *Subscription[V]
	sub = newSubscription[V](buffer, e.cfg, func() { e.removeSub(name, sub) })
	sub.oneshot = oneshot
	sub.logger = sub.logger.WithField("event", name)
	e.subs[name] = append(e.subs[name], sub)
	return sub, nil
}

// SubscribeAny creates a pull consumer over every event of the emitter. Its
// elements pair each payload with the name it was emitted under. Global
// subscriptions receive after name's own subscriptions.
func (e *Emitter[K, V]) SubscribeAny() (*Subscription[Event[K, V]], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLimit(len(e.anySubs)); err != nil {
		return nil, err
	}
	var sub *Subscription[Event[K, V]]
	sub = newSubscription[Event[K, V]](e.cfg.buffer, e.cfg, func() { e.removeAnySub(sub) })
	sub.logger = sub.logger.WithField("event", "*")
	e.anySubs = append(e.anySubs, sub)
	return sub, nil
}

// Off removes every listener of name whose callback is fn, matched by the
// function's code pointer. All duplicate registrations of one function go
// at once; distinct closures built from the same function literal share an
// identity and are removed together. A nil fn removes all of name's
// listeners. Subscriptions are not touched, that is what Clear is for.
func (e *Emitter[K, V]) Off(name K, fn func(V)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		delete(e.listeners, name)
		return
	}
	ptr := reflect.ValueOf(fn).Pointer()
	kept := filterEntries(e.listeners[name], func(entry *listenerEntry[func(V)]) bool {
		return entry.ptr != ptr
	})
	if len(kept) == 0 {
		delete(e.listeners, name)
	} else {
		e.listeners[name] = kept
	}
}

// OffAny removes global listeners the way Off removes per-name ones. A nil
// fn removes every global listener.
func (e *Emitter[K, V]) OffAny(fn func(K, V)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		e.anyListeners = nil
		return
	}
	ptr := reflect.ValueOf(fn).Pointer()
	e.anyListeners = filterEntries(e.anyListeners, func(entry *listenerEntry[func(K, V)]) bool {
		return entry.ptr != ptr
	})
}

// Clear drops every listener of name and gracefully closes every
// subscription on name, pending Next futures included. Global listeners,
// global subscriptions and other names stay as they are. Clear returns once
// writes in flight to the closed subscriptions have settled.
func (e *Emitter[K, V]) Clear(name K) {
	e.mu.Lock()
	delete(e.listeners, name)
	subs := e.subs[name]
	delete(e.subs, name)
	e.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	if len(subs) > 0 {
		e.cfg.logger.Debugf("cleared event %v, closed %d subscriptions", name, len(subs))
	}
}

// ClearAll resets the emitter to its just-constructed state, keeping only
// its configuration. Every listener is dropped and every subscription is
// gracefully closed, so consumers draining them observe end of sequence
// after the elements already delivered.
func (e *Emitter[K, V]) ClearAll() {
	e.mu.Lock()
	subs := e.subs
	anySubs := e.anySubs
	e.listeners = make(map[K][]*listenerEntry[func(V)])
	e.anyListeners = nil
	e.subs = make(map[K][]*Subscription[V])
	e.anySubs = nil
	e.mu.Unlock()

	closed := 0
	for _, list := range subs {
		for _, sub := range list {
			sub.Close()
			closed++
		}
	}
	for _, sub := range anySubs {
		sub.Close()
		closed++
	}
	if closed > 0 {
		e.cfg.logger.Debugf("emitter reset, closed %d subscriptions", closed)
	}
}

// ListenerCount reports how many listeners are registered for name. Global
// listeners and subscriptions are not counted.
func (e *Emitter[K, V]) ListenerCount(name K) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[name])
}

// EventNames returns the names that currently have at least one listener or
// open subscription, in no particular order.
func (e *Emitter[K, V]) EventNames() []K {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seen := make(map[K]struct{}, len(e.listeners)+len(e.subs))
	names := make([]K, 0, len(e.listeners)+len(e.subs))
	for name := range e.listeners {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	for name := range e.subs {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// dropListenerEntry removes one entry by pointer identity, used by Emit
// after a once listener fired.
func (e *Emitter[K, V]) dropListenerEntry(name K, target *listenerEntry[func(V)]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := filterEntries(e.listeners[name], func(entry *listenerEntry[func(V)]) bool {
		return entry != target
	})
	if len(kept) == 0 {
		delete(e.listeners, name)
	} else {
		e.listeners[name] = kept
	}
}

func (e *Emitter[K, V]) dropAnyListenerEntry(target *listenerEntry[func(K, V)]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.anyListeners = filterEntries(e.anyListeners, func(entry *listenerEntry[func(K, V)]) bool {
		return entry != target
	})
}

func (e *Emitter[K, V]) removeSub(name K, sub *Subscription[V]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.subs[name][:0]
	for _, s := range e.subs[name] {
		if s != sub {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(e.subs, name)
	} else {
		e.subs[name] = kept
	}
}

func (e *Emitter[K, V]) removeAnySub(sub *Subscription[Event[K, V]]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.anySubs[:0]
	for _, s := range e.anySubs {
		if s != sub {
			kept = append(kept, s)
		}
	}
	e.anySubs = kept
}

// checkLimit expects e.mu held; current is the size of the registry about
// to grow.
func (e *Emitter[K, V]) checkLimit(current int) error {
	if e.cfg.maxListeners > 0 && uint(current) >= e.cfg.maxListeners {
		return newLimitError(e.cfg.maxListeners)
	}
	return nil
}

func filterEntries[F any](entries []*listenerEntry[F], keep func(*listenerEntry[F]) bool) []*listenerEntry[F] {
	kept := entries[:0]
	for _, entry := range entries {
		if keep(entry) {
			kept = append(kept, entry)
		}
	}
	return kept
}
