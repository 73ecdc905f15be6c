package orchestration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
	ctxpkg "github.com/vfirsov/kernel/internal/context"
	"github.com/vfirsov/kernel/internal/cost"
)

// newCoordinatorHarness wires a graph/scheduler/budget/context quadruple
// the way cmd/kernel does, for use as a self-contained test fixture.
func newCoordinatorHarness(total contracts.TokenCount, cfg CoordinatorConfig) (contracts.TaskGraph, contracts.Coordinator, contracts.Budget) {
	g := NewTaskGraph(10, 3)
	b := cost.NewBudget(total, nil)
	s := NewScheduler(g, b, testRoles, SchedulerConfig{})
	ctxStore := ctxpkg.NewSharedContext("test task")
	c := NewCoordinator(g, s, ctxStore, b, cfg)
	return g, c, b
}

// S1 — happy path three-role DAG: plan (llm) -> code (hybrid) -> test (tool).
func TestCoordinator_S1_HappyPathThreeRoleDAG(t *testing.T) {
	g, c, b := newCoordinatorHarness(5000, CoordinatorConfig{})

	plan := node("plan")
	plan.Role = "planner"
	plan.Type = contracts.NodeTypeLLM
	plan.Budget = 1000
	require.NoError(t, g.AddNode(plan))

	code := node("code", "plan")
	code.Role = "coder"
	code.Type = contracts.NodeTypeHybrid
	code.Budget = 1500
	require.NoError(t, g.AddNode(code))

	test := node("test", "code")
	test.Role = "tester"
	test.Type = contracts.NodeTypeTool
	test.Budget = 0
	require.NoError(t, g.AddNode(test))

	exec := func(ctx context.Context, id contracts.NodeID, role contracts.RoleName, summary string) (*contracts.AgentResult, error) {
		tokens := contracts.TokenCount(500)
		if role == "tester" {
			tokens = 0
		}
		return &contracts.AgentResult{Output: fmt.Sprintf("%s result for %s", role, id), TokensUsed: tokens}, nil
	}

	stats, err := c.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.True(t, stats.Success)
	assert.Equal(t, 3, stats.NodesCompleted)
	assert.Equal(t, contracts.TokenCount(1000), stats.TokensUsed)
	assert.Equal(t, contracts.TokenCount(1000), b.Stats().Spent)
}

// S2 — retry then success: executor fails twice, succeeds on the third attempt.
func TestCoordinator_S2_RetryThenSuccess(t *testing.T) {
	g, c, _ := newCoordinatorHarness(5000, CoordinatorConfig{})

	n := node("fail")
	n.Role = "coder"
	n.Type = contracts.NodeTypeHybrid
	n.Budget = 1500
	n.MaxRetries = 2
	require.NoError(t, g.AddNode(n))

	var attempts int32
	exec := func(ctx context.Context, id contracts.NodeID, role contracts.RoleName, summary string) (*contracts.AgentResult, error) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return nil, fmt.Errorf("attempt %d failed", n)
		}
		return &contracts.AgentResult{Output: "success", TokensUsed: 500}, nil
	}

	stats, err := c.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NodesCompleted)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

// S3 — budget clip: total budget of 100 means b (budget 200) cannot run once
// a has spent 80 of it, or fails at scheduling/execution.
func TestCoordinator_S3_BudgetClip(t *testing.T) {
	g, c, b := newCoordinatorHarness(100, CoordinatorConfig{})

	a := node("a")
	a.Role = "planner"
	a.Type = contracts.NodeTypeLLM
	a.Budget = 50
	require.NoError(t, g.AddNode(a))

	bNode := node("b", "a")
	bNode.Role = "coder"
	bNode.Type = contracts.NodeTypeHybrid
	bNode.Budget = 200
	require.NoError(t, g.AddNode(bNode))

	exec := func(ctx context.Context, id contracts.NodeID, role contracts.RoleName, summary string) (*contracts.AgentResult, error) {
		return &contracts.AgentResult{Output: "x", TokensUsed: 80}, nil
	}

	_, err := c.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.LessOrEqual(t, b.Stats().Spent, contracts.TokenCount(100))

	bFinal, _ := g.Get("b")
	assert.NotEqual(t, contracts.NodeDone, bFinal.Status)
}

func TestCoordinator_PolicyDenialFailsNode(t *testing.T) {
	deny := func(action, target string) contracts.RiskAssessment {
		return contracts.RiskAssessment{Approved: false, Reason: "nope"}
	}
	g, c, _ := newCoordinatorHarness(5000, CoordinatorConfig{PolicyGuard: deny})

	n := node("a")
	n.MaxRetries = 0
	require.NoError(t, g.AddNode(n))

	exec := func(ctx context.Context, id contracts.NodeID, role contracts.RoleName, summary string) (*contracts.AgentResult, error) {
		t.Fatal("executor should never run when policy denies spawn")
		return nil, nil
	}

	stats, err := c.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.False(t, stats.Success)
	assert.Equal(t, 1, stats.NodesFailed)

	got, _ := g.Get("a")
	assert.Equal(t, contracts.NodeFailed, got.Status)
}

func TestCoordinator_CollapsesDescendantsOnTerminalFailure(t *testing.T) {
	g, c, _ := newCoordinatorHarness(5000, CoordinatorConfig{})

	root := node("root")
	root.MaxRetries = 0
	require.NoError(t, g.AddNode(root))
	child := node("child", "root")
	require.NoError(t, g.AddNode(child))

	exec := func(ctx context.Context, id contracts.NodeID, role contracts.RoleName, summary string) (*contracts.AgentResult, error) {
		if id == "root" {
			return nil, fmt.Errorf("boom")
		}
		return &contracts.AgentResult{Output: "ok", TokensUsed: 1}, nil
	}

	_, err := c.Run(context.Background(), exec)
	require.NoError(t, err)

	rootFinal, _ := g.Get("root")
	assert.Equal(t, contracts.NodeFailed, rootFinal.Status)
	childFinal, _ := g.Get("child")
	assert.Equal(t, contracts.NodeCancelled, childFinal.Status)
}
