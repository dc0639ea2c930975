package events

import (
	"sync"
	"time"
)

// Topic names a payload-less change signal
type Topic string

const (
	InvoiceUpdated Topic = "invoiceUpdated"
	ClientsUpdated Topic = "clientsUpdated"
	ProfileUpdated Topic = "profileUpdated"
)

// Event is delivered to subscribers. It carries no payload: receivers re-read the store.
type Event struct {
	Topic  Topic
	At     time.Time
	Remote bool // raised by another instance
}

// Publisher raises change signals
type Publisher interface {
	Publish(topic Topic)
}

// Bus is an in-process observer registry.
//
// Each subscription owns a one-slot channel. Publish never blocks: when the
// slot is already full the subscriber has a pending signal and will re-read
// the store anyway, so signals coalesce but are never lost.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic]map[int]chan Event
	nextID int
	hooks  []func(Event)
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]chan Event)}
}

// Publish notifies local subscribers and forwarding hooks
func (b *Bus) Publish(topic Topic) {
	ev := Event{Topic: topic, At: time.Now()}
	b.deliver(ev)

	b.mu.RLock()
	hooks := b.hooks
	b.mu.RUnlock()
	for _, hook := range hooks {
		hook(ev)
	}
}

// PublishRemote notifies local subscribers only. Used by bridges for signals that
// originated elsewhere, so they are not forwarded back out.
func (b *Bus) PublishRemote(topic Topic) {
	b.deliver(Event{Topic: topic, At: time.Now(), Remote: true})
}

func (b *Bus) deliver(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[ev.Topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of signals for topic and a cancel func.
// The channel is closed by cancel.
func (b *Bus) Subscribe(topic Topic) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 1)
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan Event)
	}
	b.subs[topic][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// OnPublish registers a hook called for every locally published event
func (b *Bus) OnPublish(hook func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hooks = append(b.hooks, hook)
}

// Subscribers returns the number of live subscriptions for topic
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
