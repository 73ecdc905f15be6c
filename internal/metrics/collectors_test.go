package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

func TestEmitBrainMetrics_EmitsCacheHitOnlyWhenCached(t *testing.T) {
	b := NewMetricBus(0)
	EmitBrainMetrics(b, BrainMetrics{TokensUsed: 100, Provider: "flagship", LatencyMs: 20, Cached: true})

	snap := b.Snapshot()
	require.Len(t, snap["brain"], 3)

	EmitBrainMetrics(b, BrainMetrics{TokensUsed: 50, Provider: "fast", LatencyMs: 5, Cached: false})
	snap = b.Snapshot()
	assert.Len(t, snap["brain"], 5)
}

func TestEmitSwarmMetrics_EmitsSpawnAndBudget(t *testing.T) {
	b := NewMetricBus(0)
	EmitSwarmMetrics(b, SwarmMetrics{Role: "coder", BudgetRemaining: contracts.TokenCount(500)})

	snap := b.Snapshot()
	require.Len(t, snap["swarm"], 2)
}
