// Path: internal/events/broker.go
package events

import "sync"

// Song change topics.
const (
	TopicSongCreated = "song:created"
	TopicSongUpdated = "song:updated"
	TopicSongDeleted = "song:deleted"
)

// Event represents a message passed through the broker.
type Event struct {
	Topic string
	Data  any
}

// Broker implements a simple in-memory pub/sub system.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewBroker creates a new event broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe creates a new subscription to one or more topics.
// It returns a read-only channel where events for those topics will be sent.
func (b *Broker) Subscribe(topics ...string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16) // Buffered so short bursts reach slow subscribers
	for _, topic := range topics {
		b.subscribers[topic] = append(b.subscribers[topic], ch)
	}
	return ch
}

// Publish sends an event to all subscribers of a topic.
// Delivery never blocks; a full subscriber misses the event.
func (b *Broker) Publish(topic string, data any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	event := Event{Topic: topic, Data: data}
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}
