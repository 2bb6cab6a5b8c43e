package utilities

import "sync"

// Domain events published on the global bus.
const (
	EventAttemptCreated = "attempt.created"
)

type EventHandler func(interface{})

// EventBus decouples the attempt engine from side effects like leaderboard
// cache invalidation: publishers never learn who listens.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish runs every handler for the event on its own goroutine. The handler
// list is snapshotted under the lock so a slow handler never blocks
// subscribers. Handlers must not carry request-scoped state.
func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	handlers := make([]EventHandler, len(eb.handlers[event]))
	copy(handlers, eb.handlers[event])
	eb.mu.RUnlock()

	for _, handler := range handlers {
		go handler(data)
	}
}

// GlobalEventBus is the process-wide bus wired up in main.
var GlobalEventBus = NewEventBus()
