package libemit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ EventEmitter[string, int] = (*Emitter[string, int])(nil)

func TestSingleListener(t *testing.T) {
	emitter := New[string, int]()
	var mu sync.Mutex
	var results []int

	// Registers a single listener for the "event" event.
	err := emitter.On("event", func(data int) {
		mu.Lock()
		results = append(results, data)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Unexpected registration error: %v", err)
	}

	if err := emitter.Emit("event", 42); err != nil {
		t.Fatalf("Unexpected emit error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 || results[0] != 42 {
		t.Errorf("Expected to receive [42], but got %v", results)
	}
}

func TestMultipleListeners(t *testing.T) {
	emitter := New[string, int]()
	var mu sync.Mutex
	var results []int

	// Registers two listeners for the same event.
	_ = emitter.On("event", func(data int) {
		mu.Lock()
		results = append(results, data)
		mu.Unlock()
	})

	_ = emitter.On("event", func(data int) {
		mu.Lock()
		results = append(results, data*2)
		mu.Unlock()
	})

	_ = emitter.Emit("event", 10)

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 2 {
		t.Errorf("Expected 2 callbacks, but got %d", len(results))
	}

	// Verifies that one receives the original data and the other receives double the value.
	found10, found20 := false, false
	for _, v := range results {
		if v == 10 {
			found10 = true
		}
		if v == 20 {
			found20 = true
		}
	}
	if !found10 || !found20 {
		t.Errorf("Expected results 10 and 20, but got %v", results)
	}
}

func TestNoListeners(t *testing.T) {
	emitter := New[string, int]()
	// When emitting an event with no listeners, no error or call should occur.
	if err := emitter.Emit("nonexistentEvent", 100); err != nil {
		t.Errorf("Expected no error, but got %v", err)
	}
}

func TestMultipleEvents(t *testing.T) {
	emitter := New[string, int]()
	var event1Result, event2Result int

	// Registers listeners for different events.
	_ = emitter.On("event1", func(data int) {
		event1Result = data
	})
	_ = emitter.On("event2", func(data int) {
		event2Result = data
	})

	_ = emitter.Emit("event1", 5)
	_ = emitter.Emit("event2", 15)

	if event1Result != 5 {
		t.Errorf("For 'event1', expected 5, got %d", event1Result)
	}
	if event2Result != 15 {
		t.Errorf("For 'event2', expected 15, got %d", event2Result)
	}
}

func TestConcurrent(t *testing.T) {
	emitter := New[string, int]()
	var mu sync.Mutex
	var results []int
	var wg sync.WaitGroup

	// Concurrently registers 10 listeners.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := emitter.On("event", func(data int) {
				mu.Lock()
				results = append(results, data+i)
				mu.Unlock()
			})
			if err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	// Concurrent emission: 10 events are emitted.
	for j := 0; j < 10; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			if err := emitter.Emit("event", j); err != nil {
				t.Error(err)
			}
		}(j)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	// Expect 10 (listeners) * 10 (emissions) = 100 callbacks.
	if len(results) != 100 {
		t.Errorf("Expected 100 callbacks, but got %d", len(results))
	}
}

func TestListenerReceivesExactPayload(t *testing.T) {
	emitter := New[string, string]()
	calls := 0

	require.NoError(t, emitter.On("foo", func(payload string) {
		calls++
		require.Equal(t, "bar", payload)
	}))

	require.NoError(t, emitter.Emit("foo", "bar"))
	require.Equal(t, 1, calls)
}

func TestOnceListener(t *testing.T) {
	emitter := New[string, int]()
	calls := 0

	require.NoError(t, emitter.Once("event", func(int) { calls++ }))
	require.Equal(t, 1, emitter.ListenerCount("event"))

	require.NoError(t, emitter.Emit("event", 1))
	require.NoError(t, emitter.Emit("event", 2))

	require.Equal(t, 1, calls)
	require.Zero(t, emitter.ListenerCount("event"))
}

func TestOnceDuplicateRegistrations(t *testing.T) {
	emitter := New[string, int]()
	calls := 0
	cb := func(int) { calls++ }

	require.NoError(t, emitter.Once("event", cb))
	require.NoError(t, emitter.Once("event", cb))

	// Both one-shot entries fire on the first emission, then both are gone.
	require.NoError(t, emitter.Emit("event", 1))
	require.Equal(t, 2, calls)
	require.Zero(t, emitter.ListenerCount("event"))

	require.NoError(t, emitter.Emit("event", 2))
	require.Equal(t, 2, calls)
}

func TestOnceAny(t *testing.T) {
	emitter := New[string, int]()
	var got []string

	require.NoError(t, emitter.OnceAny(func(name string, _ int) { got = append(got, name) }))

	require.NoError(t, emitter.Emit("first", 1))
	require.NoError(t, emitter.Emit("second", 2))

	require.Equal(t, []string{"first"}, got)
}

func TestOffRemovesAllIdentityMatches(t *testing.T) {
	emitter := New[string, int]()
	var aCalls, bCalls int
	a := func(int) { aCalls++ }
	b := func(int) { bCalls++ }

	require.NoError(t, emitter.On("event", a))
	require.NoError(t, emitter.On("event", a))
	require.NoError(t, emitter.On("event", b))

	// Both registrations of a share its identity and go together.
	emitter.Off("event", a)
	require.Equal(t, 1, emitter.ListenerCount("event"))

	require.NoError(t, emitter.Emit("event", 1))
	require.Zero(t, aCalls)
	require.Equal(t, 1, bCalls)
}

func TestOffLeavesSubscriptions(t *testing.T) {
	emitter := New[string, int]()
	require.NoError(t, emitter.On("event", func(int) {}))

	sub, err := emitter.Subscribe("event")
	require.NoError(t, err)
	defer sub.Close()

	// A nil callback drops every listener of the event but no subscription.
	emitter.Off("event", nil)
	require.Zero(t, emitter.ListenerCount("event"))

	require.NoError(t, emitter.Emit("event", 9))
	require.Equal(t, 9, <-sub.Out())
}

func TestOffAny(t *testing.T) {
	emitter := New[string, int]()
	calls := 0
	cb := func(string, int) { calls++ }

	require.NoError(t, emitter.OnAny(cb))
	require.NoError(t, emitter.Emit("event", 1))

	emitter.OffAny(cb)
	require.NoError(t, emitter.Emit("event", 2))

	require.Equal(t, 1, calls)
}

func TestLimitEnforcement(t *testing.T) {
	emitter := New[string, int](WithMaxListeners(2))
	require.NoError(t, emitter.On("foo", func(int) {}))
	require.NoError(t, emitter.On("foo", func(int) {}))

	err := emitter.On("foo", func(int) {})
	require.ErrorIs(t, err, ErrLimitExceeded)

	var limitErr LimitError
	require.ErrorAs(t, err, &limitErr)
	require.EqualValues(t, 2, limitErr.Limit)

	// Rejection leaves the registry exactly as it was.
	require.Equal(t, 2, emitter.ListenerCount("foo"))
}

func TestLimitBoundsEachRegistryApart(t *testing.T) {
	emitter := New[string, int](WithMaxListeners(1))
	require.NoError(t, emitter.On("foo", func(int) {}))
	require.ErrorIs(t, emitter.On("foo", func(int) {}), ErrLimitExceeded)

	// A full listener registry does not block the other registries.
	require.NoError(t, emitter.On("bar", func(int) {}))
	require.NoError(t, emitter.OnAny(func(string, int) {}))

	sub, err := emitter.Subscribe("foo")
	require.NoError(t, err)
	defer sub.Close()
	all, err := emitter.SubscribeAny()
	require.NoError(t, err)
	defer all.Close()

	_, err = emitter.Subscribe("foo")
	require.ErrorIs(t, err, ErrLimitExceeded)
	_, err = emitter.Next("foo")
	require.ErrorIs(t, err, ErrLimitExceeded)
	_, err = emitter.SubscribeAny()
	require.ErrorIs(t, err, ErrLimitExceeded)
	require.ErrorIs(t, emitter.OnceAny(func(string, int) {}), ErrLimitExceeded)
}

func TestUnlimitedRegistrations(t *testing.T) {
	emitter := New[string, int](WithMaxListeners(0))
	for i := 0; i < 100; i++ {
		require.NoError(t, emitter.On("event", func(int) {}))
	}
	require.Equal(t, 100, emitter.ListenerCount("event"))
}

func TestNilCallbackRegistersNothing(t *testing.T) {
	emitter := New[string, int]()
	require.NoError(t, emitter.On("event", nil))
	require.NoError(t, emitter.Once("event", nil))
	require.NoError(t, emitter.OnAny(nil))
	require.NoError(t, emitter.OnceAny(nil))

	require.Zero(t, emitter.ListenerCount("event"))
	require.Empty(t, emitter.EventNames())
}

func TestEventNames(t *testing.T) {
	emitter := New[string, int]()
	require.NoError(t, emitter.On("alpha", func(int) {}))

	sub, err := emitter.Subscribe("beta")
	require.NoError(t, err)
	defer sub.Close()

	// Global registrations carry no name and are not listed.
	require.NoError(t, emitter.OnAny(func(string, int) {}))

	require.ElementsMatch(t, []string{"alpha", "beta"}, emitter.EventNames())

	emitter.Off("alpha", nil)
	require.ElementsMatch(t, []string{"beta"}, emitter.EventNames())
}

func TestNoopEmitter(t *testing.T) {
	emitter := NewNoopEmitter[string, int]()

	require.NoError(t, emitter.On("event", func(int) { t.Error("noop emitter invoked a listener") }))
	require.NoError(t, emitter.Emit("event", 1))
	require.Zero(t, emitter.ListenerCount("event"))
	require.Empty(t, emitter.EventNames())

	sub, err := emitter.Subscribe("event")
	require.NoError(t, err)
	_, ok := <-sub.Out()
	require.False(t, ok)
	sub.Close()

	next, err := emitter.Next("event")
	require.NoError(t, err)
	_, ok = <-next
	require.False(t, ok)
}
