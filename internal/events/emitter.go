package events

import (
	"context"
	"log/slog"
	"sync"
)

type registration struct {
	id      uint64
	handler EventHandler
}

// InMemoryEventEmitter is a simple implementation of the EventEmitter interface
// that stores registered handlers in memory and dispatches events to them
// synchronously, in registration order.
type InMemoryEventEmitter struct {
	handlers []registration
	nextID   uint64
	mu       sync.RWMutex
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: make([]registration, 0),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a new event handler to receive events.
// The returned function removes the handler; calling it more than once is safe.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) (unregister func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, registration{id: id, handler: handler})
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))

	var once sync.Once
	return func() {
		once.Do(func() { e.unregister(id) })
	}
}

func (e *InMemoryEventEmitter) unregister(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, reg := range e.handlers {
		if reg.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			break
		}
	}
	e.logger.Debug("unregistered event handler", "handler_count", len(e.handlers))
}

// HandlerCount returns the number of registered handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := make([]registration, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		return nil
	}

	var firstErr error
	for i, reg := range handlers {
		if err := reg.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
