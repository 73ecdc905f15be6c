package context

import (
	"sort"
	"strings"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

// memoryIndex implements contracts.MemoryBackend as the default,
// in-process stand-in for the persistent memory collaborator (spec §1
// places the real vector/full-text backend out of scope). Grounded on
// this package's memory.go mutex-guarded entry slice, here searched by
// substring over a growing entry list.
type memoryIndex struct {
	mu      sync.RWMutex
	entries []string
	version uint64
}

// NewMemoryIndex creates an empty MemoryBackend.
func NewMemoryIndex() contracts.MemoryBackend {
	return &memoryIndex{}
}

// Put appends content to the index, available to future Search calls.
func (m *memoryIndex) Put(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, content)
	m.version++
}

// Search ranks entries by occurrence count of query, case-insensitive;
// entries with zero occurrences are excluded. Ties keep insertion order.
func (m *memoryIndex) Search(query string) []contracts.MemorySearchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []contracts.MemorySearchResult
	for _, e := range m.entries {
		count := strings.Count(strings.ToLower(e), q)
		if count == 0 {
			continue
		}
		relevance := float64(count) / float64(count+1)
		results = append(results, contracts.MemorySearchResult{Content: e, Relevance: relevance})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}

func (m *memoryIndex) Stats() contracts.MemoryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return contracts.MemoryStats{EntryCount: len(m.entries), Version: m.version}
}
