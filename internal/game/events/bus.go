package events

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// route is one handler registered for one event type
type route struct {
	id     string
	handle EventHandler
}

// EventBus delivers agent events synchronously. Subscriptions are routed
// to event types when they are made, and each type's handlers run in
// subscription order.
type EventBus struct {
	mu     sync.RWMutex
	routes map[string][]route
	seq    int
	logger zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a bus accepting the agent event types
func NewEventBus() *EventBus {
	routes := make(map[string][]route, len(AgentEventTypes))
	for _, t := range AgentEventTypes {
		routes[t] = nil
	}
	return &EventBus{
		routes: routes,
		logger: log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe routes every agent event type sub is interested in to it and
// returns how many types it was routed to. Subscribing an id again
// replaces the earlier registration.
func (eb *EventBus) Subscribe(sub Subscriber) int {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := sub.ID()
	eb.remove(id)

	routed := 0
	for _, t := range AgentEventTypes {
		if sub.InterestedIn(t) {
			eb.routes[t] = append(eb.routes[t], route{id: id, handle: sub.HandleEvent})
			routed++
		}
	}
	eb.logger.Debug().
		Str("subscriber_id", id).
		Int("event_types", routed).
		Msg("Subscriber added to event bus")
	return routed
}

// SubscribeFunc registers handler for one event type and returns an id
// that Unsubscribe accepts
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) (string, error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, ok := eb.routes[eventType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
	eb.seq++
	id := fmt.Sprintf("%s#%d", eventType, eb.seq)
	eb.routes[eventType] = append(eb.routes[eventType], route{id: id, handle: handler})
	return id, nil
}

// Unsubscribe drops a subscriber or function handler by id
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.remove(id)
}

func (eb *EventBus) remove(id string) {
	for t, rs := range eb.routes {
		eb.routes[t] = slices.DeleteFunc(rs, func(r route) bool { return r.id == id })
	}
}

// HasSubscribers reports whether any handler is registered
func (eb *EventBus) HasSubscribers() bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, rs := range eb.routes {
		if len(rs) > 0 {
			return true
		}
	}
	return false
}

// Handlers returns how many handlers receive eventType
func (eb *EventBus) Handlers(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.routes[eventType])
}

// Publish hands event to its type's handlers. The handler list is copied
// first so a handler may subscribe or unsubscribe without deadlocking.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	rs := slices.Clone(eb.routes[eventType])
	eb.mu.RUnlock()

	if len(rs) == 0 {
		return
	}
	for _, r := range rs {
		eb.deliver(r, event)
	}
}

// deliver runs one handler; a panic is logged and swallowed
func (eb *EventBus) deliver(r route, event Event) {
	defer func() {
		if p := recover(); p != nil {
			eb.logger.Error().
				Str("handler_id", r.id).
				Str("event_type", event.Type()).
				Str("session_id", event.SessionID()).
				Interface("panic", p).
				Msg("Event handler panicked")
		}
	}()
	r.handle(event)
}
