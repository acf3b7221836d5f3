package store

import "sync"

// Topic names a class of change notification.
type Topic string

const (
	// TopicCartChanged fires after any successful cart mutation.
	TopicCartChanged Topic = "cart.changed"
	// TopicOrdersChanged fires after an order is created or its status
	// updated.
	TopicOrdersChanged Topic = "orders.changed"
)

// Event is a change notification for one user's data.
type Event struct {
	Topic  Topic  `json:"topic"`
	UserID string `json:"user_id"`
}

// Bus fans change events out to subscribers so UI layers can refresh after
// mutations. Publishing never blocks: slow subscribers drop events, which is
// acceptable because every event only means "re-read your data".
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener with the given channel buffer and returns
// the channel plus a cancel function that closes it.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, buffer)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
