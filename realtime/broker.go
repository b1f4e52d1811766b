// Package realtime fans leaderboard change events out to live subscribers.
package realtime

import (
	"sync"
	"time"
)

// EventType names a change clients should react to
type EventType string

const (
	EventResultCreated    EventType = "result.created"
	EventResultDeleted    EventType = "result.deleted"
	EventPointsRecomputed EventType = "points.recomputed"
	EventTeamCreated      EventType = "team.created"
	EventTeamUpdated      EventType = "team.updated"
	EventTeamDeleted      EventType = "team.deleted"
	EventWorkoutCreated   EventType = "workout.created"
	EventWorkoutUpdated   EventType = "workout.updated"
	EventWorkoutDeleted   EventType = "workout.deleted"
	EventHeatsAssigned    EventType = "heats.assigned"
	EventHeatsReset       EventType = "heats.reset"
)

// Event is the message streamed to clients. Payload carries identifiers
// only; clients re-fetch the views they display.
type Event struct {
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// Subscriber is a channel that receives events
type Subscriber chan *Event

// Publisher is the side of the broker the services depend on
type Publisher interface {
	Publish(event *Event)
}

// Broker manages subscriptions and distributes events
type Broker struct {
	subscribers map[Subscriber]bool
	mu          sync.RWMutex
	eventCh     chan *Event
	stopCh      chan struct{}
	stopOnce    sync.Once
	bufferSize  int
}

// NewBroker creates a broker whose subscribers buffer up to bufferSize events
func NewBroker(bufferSize int) *Broker {
	if bufferSize < 1 {
		bufferSize = 50
	}
	return &Broker{
		subscribers: make(map[Subscriber]bool),
		eventCh:     make(chan *Event, 100),
		stopCh:      make(chan struct{}),
		bufferSize:  bufferSize,
	}
}

// Start begins the distribution loop
func (b *Broker) Start() {
	go b.run()
}

// Stop ends the distribution loop and closes every subscriber
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopCh)

		b.mu.Lock()
		defer b.mu.Unlock()
		for sub := range b.subscribers {
			delete(b.subscribers, sub)
			close(sub)
		}
	})
}

func (b *Broker) Subscribe() Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(Subscriber, b.bufferSize)
	b.subscribers[sub] = true
	return sub
}

// Unsubscribe removes a subscription. Safe to call after Stop.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	close(sub)
}

// Publish queues an event for delivery. It never blocks a request: when
// the queue is full the event is dropped.
func (b *Broker) Publish(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-b.stopCh:
		return
	default:
	}

	select {
	case b.eventCh <- event:
	case <-b.stopCh:
	default:
		eventsDropped.Inc()
	}
}

func (b *Broker) run() {
	for {
		select {
		case event := <-b.eventCh:
			b.broadcast(event)
		case <-b.stopCh:
			return
		}
	}
}

func (b *Broker) broadcast(event *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber buffer full, it catches up on the next event
			eventsDropped.Inc()
		}
	}
	eventsPublished.WithLabelValues(string(event.Type)).Inc()
}

// SubscriberCount returns the number of active subscribers
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// NewEvent builds an event from alternating key/value pairs
func NewEvent(eventType EventType, kv ...string) *Event {
	event := &Event{Type: eventType, Timestamp: time.Now()}
	if len(kv) > 1 {
		event.Payload = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			event.Payload[kv[i]] = kv[i+1]
		}
	}
	return event
}

// Discard is a Publisher that drops every event
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(*Event) {}
