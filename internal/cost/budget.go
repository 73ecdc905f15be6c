package cost

import (
	"math"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

// budget implements contracts.Budget: hierarchical token accounting with
// a single source of truth, per-agent reservation caps, and exhaustion
// semantics (spec §4.6).
//
// CRITICAL: this component gates every agent spawn's token cost. Errors
// here mean either overspend or agents starved of budget they should have
// had.
//
// Grounded on the teacher's budget_enforcer.go mutex-guarded Allow/Record
// pattern, generalized from a per-Run cost cap into the per-agent
// reservation model described in spec §4.6 and §8 property 2.
type budget struct {
	mu sync.Mutex

	total      contracts.TokenCount
	spent      contracts.TokenCount
	reserved   map[contracts.AgentID]contracts.TokenCount
	dailySrc   contracts.DailyTokenSource
}

// NewBudget creates a Budget with the given positive total and an
// optional DailyTokenSource (may be nil).
func NewBudget(total contracts.TokenCount, dailySrc contracts.DailyTokenSource) contracts.Budget {
	return &budget{
		total:    total,
		reserved: make(map[contracts.AgentID]contracts.TokenCount),
		dailySrc: dailySrc,
	}
}

func (b *budget) remainingAfterReservedLocked() contracts.TokenCount {
	var sumReserved contracts.TokenCount
	for _, r := range b.reserved {
		sumReserved += r
	}
	remaining := b.total - b.spent - sumReserved
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Reserve returns min(requested, floor(0.30 * remainingAfterReserved)) and
// records the granted amount against agentID (spec §8 property 2).
func (b *budget) Reserve(agentID contracts.AgentID, requested contracts.TokenCount) contracts.TokenCount {
	b.mu.Lock()
	defer b.mu.Unlock()

	remaining := b.remainingAfterReservedLocked()
	cap30 := contracts.TokenCount(math.Floor(0.30 * float64(remaining)))

	granted := requested
	if granted > cap30 {
		granted = cap30
	}
	if granted < 0 {
		granted = 0
	}

	b.reserved[agentID] += granted
	return granted
}

// Spend increments spent and shrinks the agent's reservation by
// min(reservation, n), never below zero.
func (b *budget) Spend(agentID contracts.AgentID, n contracts.TokenCount) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.spent += n

	res := b.reserved[agentID]
	dec := n
	if dec > res {
		dec = res
	}
	b.reserved[agentID] = res - dec
}

// Release clears the agent's reservation entirely.
func (b *budget) Release(agentID contracts.AgentID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.reserved, agentID)
}

func (b *budget) CanSpend(n contracts.TokenCount) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return n <= b.remainingAfterReservedLocked()
}

func (b *budget) IsExhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spent >= b.total
}

func (b *budget) Stats() contracts.BudgetStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sumReserved contracts.TokenCount
	for _, r := range b.reserved {
		sumReserved += r
	}
	remaining := b.total - b.spent - sumReserved
	if remaining < 0 {
		remaining = 0
	}

	var utilization float64
	if b.total > 0 {
		utilization = 100 * float64(b.spent) / float64(b.total)
	}

	return contracts.BudgetStats{
		Total:       b.total,
		Spent:       b.spent,
		Reserved:    sumReserved,
		Remaining:   remaining,
		Utilization: utilization,
	}
}

// GetDailyTokensUsed returns the DailyTokenSource's reading when one is
// set; otherwise it falls back to spent.
func (b *budget) GetDailyTokensUsed() contracts.TokenCount {
	b.mu.Lock()
	src := b.dailySrc
	spent := b.spent
	b.mu.Unlock()

	if src != nil {
		return src.GetDailyTokensUsed()
	}
	return spent
}
