package cost

import "sync"

// UsageSnapshot is the accumulated token/cost usage for one key (e.g. an
// LLM provider name).
type UsageSnapshot struct {
	Tokens int64
	Cost   float64
}

// UsageTracker accumulates per-provider usage for the LLM Router's
// diagnostics; the Budget remains the single source of truth for
// spend/exhaustion, this is additive bookkeeping only.
//
// Grounded on the teacher's usage_tracker.go Add/Snapshot mutex-guarded
// map, re-keyed from RunID to provider name.
type UsageTracker struct {
	mu    sync.Mutex
	usage map[string]UsageSnapshot
}

// NewUsageTracker creates an empty UsageTracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{usage: make(map[string]UsageSnapshot)}
}

// Add accumulates tokens and cost for the given key.
func (ut *UsageTracker) Add(key string, tokens int64, cost float64) {
	ut.mu.Lock()
	defer ut.mu.Unlock()

	cur := ut.usage[key]
	cur.Tokens += tokens
	cur.Cost += cost
	ut.usage[key] = cur
}

// Snapshot returns a copy of the accumulated usage for key.
func (ut *UsageTracker) Snapshot(key string) UsageSnapshot {
	ut.mu.Lock()
	defer ut.mu.Unlock()
	return ut.usage[key]
}
