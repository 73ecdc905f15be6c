package context

import (
	"fmt"
	"strings"
	"sync"
)

// memoryCache holds the SharedContext's short-term memory entries, each
// with a relevance score, and its own monotonically increasing version.
//
// Grounded on the teacher's memory_manager.go Get/Put map, generalized
// from string key/value pairs to the {content, relevance} shape of
// spec §3's memory cache.
type memoryCache struct {
	mu      sync.Mutex
	entries []memoryEntry
	version uint64
}

type memoryEntry struct {
	content   string
	relevance float64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{}
}

func (m *memoryCache) put(content string, relevance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, memoryEntry{content: content, relevance: relevance})
	m.version++
}

func (m *memoryCache) render() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("[memory]")
	for _, e := range m.entries {
		b.WriteString(fmt.Sprintf(" (%.2f) %s", e.relevance, truncate(e.content, 150)))
	}
	return b.String()
}

func (m *memoryCache) snapshot() []memoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]memoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
