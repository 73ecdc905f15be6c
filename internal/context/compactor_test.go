package context

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfirsov/kernel/contracts"
)

func TestCompressContext_ReturnsFullSummaryWhenItFits(t *testing.T) {
	ctx := NewSharedContext("short task")
	ctx.AddResult("a1", "coder", "small output", 10)

	c := NewContextCompactor()
	out := c.CompressContext(ctx, 10_000)

	assert.Contains(t, out, "small output")
}

func TestCompressContext_FallsBackToBoundedSummary(t *testing.T) {
	ctx := NewSharedContext("large task")
	for i := 0; i < 50; i++ {
		id := contracts.AgentID(fmt.Sprintf("a%d", i))
		ctx.AddResult(id, "coder", fmt.Sprintf("result-%d-%s", i, make500CharString()), 10)
	}

	versionBefore := ctx.Version()

	c := NewContextCompactor()
	out := c.CompressContext(ctx, 100)

	assert.LessOrEqual(t, len(out), 3*100) // ~3*maxTokens chars
	assert.Equal(t, versionBefore, ctx.Version(), "compression must never mutate the context")
}

func make500CharString() string {
	b := make([]byte, 500)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
