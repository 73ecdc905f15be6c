package context

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

func TestSharedContext_AddResultIsMonotonic(t *testing.T) {
	ctx := NewSharedContext("build a feature")

	ctx.AddResult("a1", "planner", "plan output", 100)
	v1 := ctx.Version()
	require.EqualValues(t, 1, v1)

	res, ok := ctx.GetResult("a1")
	require.True(t, ok)
	assert.Equal(t, "plan output", res.Output)

	ctx.AddResult("a2", "coder", "code output", 200)
	v2 := ctx.Version()
	assert.Greater(t, v2, v1)

	// Result for a1 is unaffected and forever retrievable.
	res2, ok := ctx.GetResult("a1")
	require.True(t, ok)
	assert.Equal(t, res, res2)
}

func TestSharedContext_ConcurrentAddResultIsSerialized(t *testing.T) {
	ctx := NewSharedContext("concurrent task")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := contracts.AgentID(fmt.Sprintf("agent-%d", i))
			ctx.AddResult(id, "coder", "output", 10)
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 50, ctx.Version())
	for i := 0; i < 50; i++ {
		id := contracts.AgentID(fmt.Sprintf("agent-%d", i))
		_, ok := ctx.GetResult(id)
		assert.True(t, ok)
	}
}

func TestSharedContext_GetSummaryForExcludesSelfAndClamps(t *testing.T) {
	ctx := NewSharedContext("a very important task description that is somewhat long for testing truncation behavior here")

	ctx.AddResult("a1", "planner", "the plan is to do X then Y then Z with many details that go on", 100)
	ctx.AddResult("a2", "coder", "implemented the feature across several files", 200)

	summary := ctx.GetSummaryFor("a2", 500)
	assert.Contains(t, summary, "[planner]")
	assert.NotContains(t, summary, "implemented the feature")
	assert.LessOrEqual(t, len(summary), 500)
}

func TestSharedContext_InjectCodebaseMapOverwrites(t *testing.T) {
	ctx := NewSharedContext("t")
	ctx.InjectCodebaseMap("map v1")
	m, ok := ctx.GetCodebaseMap()
	require.True(t, ok)
	assert.Equal(t, "map v1", m)

	ctx.InjectCodebaseMap("map v2")
	m, ok = ctx.GetCodebaseMap()
	require.True(t, ok)
	assert.Equal(t, "map v2", m)
}

func TestSharedContext_CreateTaskContext(t *testing.T) {
	ctx := NewSharedContext("t")
	ctx.AddResult("a1", "planner", "plan", 50)

	tc := ctx.CreateTaskContext("a2", map[string]string{"k": "v"})
	require.Len(t, tc.IntermediateResults, 1)
	assert.Equal(t, contracts.RoleName("planner"), tc.IntermediateResults[0].Role)
	assert.Equal(t, "v", tc.InputData["k"])
}

func TestCreateWaveContext_IsolatesParentResults(t *testing.T) {
	parent := NewSharedContext("parent task")
	parent.AddResult("a1", "planner", "parent result", 10)

	wave := CreateWaveContext(parent, 2, "compressed parent summary")

	assert.Contains(t, wave.TaskDescription(), "[Wave 2]")
	assert.Contains(t, wave.TaskDescription(), "parent task")

	_, ok := wave.GetResult("a1")
	assert.False(t, ok, "wave context must not leak parent results")

	summary := wave.GetSummaryFor("", 500)
	assert.Contains(t, summary, "compressed parent summary")
}
