package kernel

import (
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

// eventBus is a minimal typed pub/sub: on/off/dispatch, registration-
// order invocation. No direct teacher analogue; a hand-rolled mutex +
// slice matches the teacher's general preference for small
// concurrency primitives over a generic pub/sub library elsewhere in
// the codebase.
type eventBus struct {
	mu       sync.RWMutex
	handlers map[string][]contracts.EventHandler
}

func newEventBus() *eventBus {
	return &eventBus{handlers: make(map[string][]contracts.EventHandler)}
}

func (b *eventBus) On(event string, handler contracts.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *eventBus) Off(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, event)
}

func (b *eventBus) Dispatch(event string, data any) {
	b.mu.RLock()
	handlers := make([]contracts.EventHandler, len(b.handlers[event]))
	copy(handlers, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event, data)
	}
}
