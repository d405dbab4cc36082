package libemit

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Emit dispatches v to everything registered for name, in this order: the
// per-name listeners snapshotted when the call starts, the global listeners
// snapshotted at the same instant, then the per-name subscriptions and
// finally the global subscriptions as the registries stand once the
// listeners have run. Each group runs in registration order. Registry
// changes made by a listener (including on its own name) affect later
// emits, not the running snapshot, except that a subscription opened by a
// listener already receives the current event.
//
// Subscription writes are sequential: Emit waits for each delivery before
// starting the next, so one full subscription stalls delivery to the ones
// after it until its reader catches up or it is closed. Emit returns only
// after every delivery has settled.
//
// A panic in a listener does not stop dispatch. It is recovered, logged and
// carried into the returned error; panics from several listeners are
// combined with multierr. Emit returns nil when every listener returned
// normally.
func (e *Emitter[K, V]) Emit(name K, v V) error {
	e.mu.RLock()
	entries := make([]*listenerEntry[func(V)], len(e.listeners[name]))
	copy(entries, e.listeners[name])
	anyEntries := make([]*listenerEntry[func(K, V)], len(e.anyListeners))
	copy(anyEntries, e.anyListeners)
	e.mu.RUnlock()

	var errs error
	for _, entry := range entries {
		if entry.once && !entry.fired.CompareAndSwap(false, true) {
			continue
		}
		errs = multierr.Append(errs, e.invoke(name, func() { entry.fn(v) }))
		if entry.once {
			e.dropListenerEntry(name, entry)
		}
	}
	for _, entry := range anyEntries {
		if entry.once && !entry.fired.CompareAndSwap(false, true) {
			continue
		}
		errs = multierr.Append(errs, e.invoke(name, func() { entry.fn(name, v) }))
		if entry.once {
			e.dropAnyListenerEntry(entry)
		}
	}

	e.mu.RLock()
	subs := make([]*Subscription[V], len(e.subs[name]))
	copy(subs, e.subs[name])
	anySubs := make([]*Subscription[Event[K, V]], len(e.anySubs))
	copy(anySubs, e.anySubs)
	e.mu.RUnlock()

	for _, sub := range subs {
		if sub.push(v) && sub.oneshot {
			sub.Close()
		}
	}
	ev := Event[K, V]{Name: name, Value: v}
	for _, sub := range anySubs {
		sub.push(ev)
	}

	return errs
}

// invoke runs one listener callback, converting a panic into an error so
// the remaining listeners and the subscriptions still see the event.
func (e *Emitter[K, V]) invoke(name K, call func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.cfg.logger.Errorf("listener for event %v panicked: %v", name, r)
			err = errors.Errorf("listener for event %v panicked: %v", name, r)
		}
	}()
	call()
	return nil
}
