package metrics

import "github.com/vfirsov/kernel/contracts"

// BrainMetrics is the payload for EmitBrainMetrics.
type BrainMetrics struct {
	TokensUsed contracts.TokenCount
	Provider   string
	LatencyMs  int64
	Cached     bool
}

// EmitBrainMetrics records one LLM Router call's cost/latency/cache
// outcome onto the bus.
func EmitBrainMetrics(bus contracts.MetricBus, m BrainMetrics) {
	tags := map[string]string{"provider": m.Provider}
	bus.Emit("brain.tokens_used", float64(m.TokensUsed), tags)
	bus.Emit("brain.latency", float64(m.LatencyMs), tags)
	if m.Cached {
		bus.Emit("brain.cache_hit", 1, tags)
	}
}

// SwarmMetrics is the payload for EmitSwarmMetrics.
type SwarmMetrics struct {
	Role            string
	BudgetRemaining contracts.TokenCount
}

// EmitSwarmMetrics records one agent spawn and the budget remaining at
// that moment.
func EmitSwarmMetrics(bus contracts.MetricBus, m SwarmMetrics) {
	tags := map[string]string{"role": m.Role}
	bus.Emit("swarm.agent_spawned", 1, tags)
	bus.Emit("swarm.budget_remaining", float64(m.BudgetRemaining), tags)
}
