// Package metrics implements the in-memory Metric Bus: a ring buffer
// of events, pattern-matched subscriptions, and a prefix-grouped
// snapshot, plus collectors and an OTel bridge.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/vfirsov/kernel/contracts"
)

const defaultCapacity = 1000

type subscription struct {
	pattern string
	handler func(contracts.MetricEvent)
}

// bus implements contracts.MetricBus. Grounded on the teacher's
// api/store.go mutex-guarded in-memory collection pattern, sized per
// spec.md §4.15's default capacity of 1000.
type bus struct {
	mu       sync.Mutex
	capacity int
	events   []contracts.MetricEvent
	subs     []subscription
}

// NewMetricBus creates a MetricBus. capacity <= 0 defaults to 1000.
func NewMetricBus(capacity int) contracts.MetricBus {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &bus{capacity: capacity}
}

func (b *bus) Emit(name string, value float64, tags map[string]string) {
	event := contracts.MetricEvent{
		Name:      name,
		Value:     value,
		Tags:      tags,
		Timestamp: contracts.Timestamp(time.Now().UnixMilli()),
	}

	b.mu.Lock()
	b.events = append(b.events, event)
	if len(b.events) > b.capacity {
		b.events = b.events[len(b.events)-b.capacity:]
	}
	matched := make([]func(contracts.MetricEvent), 0, len(b.subs))
	for _, s := range b.subs {
		if matchesPattern(s.pattern, name) {
			matched = append(matched, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range matched {
		h(event)
	}
}

func (b *bus) On(pattern string, handler func(contracts.MetricEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{pattern: pattern, handler: handler})
}

func (b *bus) Snapshot() map[string][]contracts.MetricEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string][]contracts.MetricEvent)
	for _, e := range b.events {
		key := e.Name
		if idx := strings.IndexByte(e.Name, '.'); idx >= 0 {
			key = e.Name[:idx]
		}
		out[key] = append(out[key], e)
	}
	return out
}

func matchesPattern(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, ".*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == name
}
