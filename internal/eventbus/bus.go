// Package eventbus is a process-wide synchronous pub/sub channel for session
// state changes. It decouples the session store from observers such as a
// navigation bar: publishing with zero subscribers is a no-op, nothing is
// queued, and handlers run after the publisher's own state mutation completes.
package eventbus

import "sync"

type Topic string

const (
	TopicLogin  Topic = "auth:login"
	TopicLogout Topic = "auth:logout"
)

type Handler func()

type subscription struct {
	id      uint64
	handler Handler
}

type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers a handler and returns the capability to deregister it.
// Handlers on a topic are invoked in subscription order.
func (b *Bus) Subscribe(topic Topic, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every handler subscribed to topic, synchronously and in
// subscription order. Handlers run outside the bus lock so they may
// subscribe or unsubscribe without deadlocking.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler()
	}
}
