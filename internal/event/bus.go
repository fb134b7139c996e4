package event

import (
	"log/slog"
	"sync"

	"github.com/dukerupert/satpocket/internal/metrics"
)

// Listener receives events of the kind it subscribed to.
type Listener func(Event)

// Subscription identifies one registered listener. Function values are
// not comparable in Go, so unsubscription goes through this handle.
type Subscription struct {
	kind Kind
	id   uint64
}

type entry struct {
	id uint64
	fn Listener
}

// Bus dispatches events to listeners in subscription order. Dispatch is
// synchronous: Emit returns only after every listener has run. A
// panicking listener is recovered and logged so it cannot disturb the
// emitting operation or listeners after it.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[Kind][]entry
	logger    *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		listeners: make(map[Kind][]entry),
		logger:    logger,
	}
}

// Subscribe registers fn for events of the given kind and returns a
// handle for Unsubscribe.
func (b *Bus) Subscribe(kind Kind, fn Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.listeners[kind] = append(b.listeners[kind], entry{id: b.nextID, fn: fn})
	return &Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes the listener identified by sub. Unknown or
// already-removed subscriptions are a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.listeners[sub.kind]
	for i, e := range entries {
		if e.id == sub.id {
			b.listeners[sub.kind] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Emit delivers e to every listener subscribed to its kind, in
// subscription order.
func (b *Bus) Emit(e Event) {
	metrics.EventsTotal.WithLabelValues(e.Kind().String()).Inc()

	b.mu.Lock()
	entries := b.listeners[e.Kind()]
	snapshot := make([]entry, len(entries))
	copy(snapshot, entries)
	b.mu.Unlock()

	for _, ent := range snapshot {
		b.dispatch(ent, e)
	}
}

func (b *Bus) dispatch(ent entry, e Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ListenerPanics.WithLabelValues(e.Kind().String()).Inc()
			b.logger.Error("listener panic", "event", e.Kind().String(), "panic", r)
		}
	}()
	ent.fn(e)
}
