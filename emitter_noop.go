package libemit

type (
	// EventEmitter is the full surface of Emitter, extracted so call sites
	// can swap in a noop emitter or a test double without rewiring.
	EventEmitter[K comparable, V any] interface {
		// On registers a persistent listener for the given event.
		On(name K, fn func(V)) error

		// Once registers a listener invoked at most once, then dropped.
		Once(name K, fn func(V)) error

		// OnAny registers a persistent listener for every event.
		OnAny(fn func(K, V)) error

		// OnceAny registers a global listener invoked at most once.
		OnceAny(fn func(K, V)) error

		// Subscribe creates a pull consumer for the given event.
		Subscribe(name K) (*Subscription[V], error)

		// SubscribeAny creates a pull consumer over every event.
		SubscribeAny() (*Subscription[Event[K, V]], error)

		// Next returns a channel yielding the payload of the given event's
		// next emission, closed right after.
		Next(name K) (<-chan V, error)

		// Off removes the given event's listeners matching fn by identity.
		// A nil fn removes all of them.
		Off(name K, fn func(V))

		// OffAny removes global listeners matching fn by identity. A nil fn
		// removes all of them.
		OffAny(fn func(K, V))

		// Clear drops the given event's listeners and closes its
		// subscriptions.
		Clear(name K)

		// ClearAll resets the emitter, closing every subscription.
		ClearAll()

		// Emit dispatches an event to listeners first, subscriptions after.
		Emit(name K, v V) error

		// ListenerCount reports how many listeners the given event has.
		ListenerCount(name K) int

		// EventNames lists the events with at least one listener or open
		// subscription.
		EventNames() []K
	}

	noopEmitter[K comparable, V any] struct{}
)

// NewNoopEmitter returns an EventEmitter that does nothing. Registrations
// succeed without being recorded and Emit delivers to nobody; subscriptions
// handed out are already terminated.
func NewNoopEmitter[K comparable, V any]() EventEmitter[K, V] {
	return &noopEmitter[K, V]{}
}

func (n *noopEmitter[K, V]) On(K, func(V)) error      { return nil }
func (n *noopEmitter[K, V]) Once(K, func(V)) error    { return nil }
func (n *noopEmitter[K, V]) OnAny(func(K, V)) error   { return nil }
func (n *noopEmitter[K, V]) OnceAny(func(K, V)) error { return nil }

func (n *noopEmitter[K, V]) Subscribe(K) (*Subscription[V], error) {
	return newClosedSubscription[V](), nil
}

func (n *noopEmitter[K, V]) SubscribeAny() (*Subscription[Event[K, V]], error) {
	return newClosedSubscription[Event[K, V]](), nil
}

func (n *noopEmitter[K, V]) Next(K) (<-chan V, error) {
	return newClosedSubscription[V]().ch, nil
}

func (n *noopEmitter[K, V]) Off(K, func(V))      {}
func (n *noopEmitter[K, V]) OffAny(func(K, V))   {}
func (n *noopEmitter[K, V]) Clear(K)             {}
func (n *noopEmitter[K, V]) ClearAll()           {}
func (n *noopEmitter[K, V]) Emit(K, V) error     { return nil }
func (n *noopEmitter[K, V]) ListenerCount(K) int { return 0 }
func (n *noopEmitter[K, V]) EventNames() []K     { return nil }
