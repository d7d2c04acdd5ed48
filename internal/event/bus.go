// Package event provides the publish/subscribe notification channel shared by
// the simulation and its observers.
package event

import "sync"

// Event is a single notification delivered to handlers.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events synchronously on the emitting goroutine.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus is a synchronous, string-keyed event bus. One bus belongs to one game
// instance. Handlers run inside Emit, so a handler may observe a caller that
// has not finished its own work yet, and may itself emit or subscribe.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	handlers map[Topic][]subscription
	wildcard []subscription
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Topic][]subscription),
	}
}

// Subscribe registers a handler for one topic and returns a function that
// removes it again.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, fn: fn})
	return func() { b.remove(topic, id) }
}

// SubscribeAll registers a handler that receives every topic.
func (b *Bus) SubscribeAll(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.wildcard = append(b.wildcard, subscription{id: id, fn: fn})
	return func() { b.removeWildcard(id) }
}

// Emit delivers payload to every handler of topic, then to wildcard handlers.
// The handler list is captured before delivery starts.
func (b *Bus) Emit(topic Topic, payload any) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.handlers[topic]...)
	subs = append(subs, b.wildcard...)
	b.mu.Unlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, s := range subs {
		s.fn(ev)
	}
}

// HandlerCount returns the number of handlers registered for topic, wildcard
// handlers excluded.
func (b *Bus) HandlerCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[topic])
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[topic]
	for i, s := range subs {
		if s.id == id {
			b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) removeWildcard(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.wildcard {
		if s.id == id {
			b.wildcard = append(b.wildcard[:i:i], b.wildcard[i+1:]...)
			return
		}
	}
}

// On registers a typed handler for topic. Events whose payload is not a T are
// skipped.
func On[T any](b *Bus, topic Topic, fn func(T)) (unsubscribe func()) {
	return b.Subscribe(topic, func(ev Event) {
		if p, ok := ev.Payload.(T); ok {
			fn(p)
		}
	})
}
