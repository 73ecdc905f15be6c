package orchestration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vfirsov/kernel/contracts"
)

const maxIterations = 50

// CoordinatorConfig carries the recognized Coordinator configuration
// keys from spec §9.
type CoordinatorConfig struct {
	PolicyGuard        contracts.PolicyGuard
	CodebaseMapSummary string
}

// coordinator implements contracts.Coordinator, driving a TaskGraph to
// completion via its Scheduler, SharedContext, and Budget.
//
// Grounded on the teacher's orchestrator.go drive loop; the per-batch
// concurrent dispatch folds in parallel_executor.go's bounded-
// concurrency goroutine-per-task pattern directly rather than keeping a
// standalone ParallelExecutor, since nothing else needs one once the
// Coordinator owns batch fan-out.
type coordinator struct {
	graph    contracts.TaskGraph
	sched    *scheduler
	ctxStore contracts.SharedContext
	budget   contracts.Budget
	guard    contracts.PolicyGuard
	tracer   trace.Tracer

	mu    sync.Mutex
	stats contracts.CoordinatorStats
}

// NewCoordinator wires a Coordinator from its collaborators. sched must
// be the concrete scheduler constructed by NewScheduler (the Coordinator
// reaches into it to execute live agents).
func NewCoordinator(graph contracts.TaskGraph, sched contracts.Scheduler, ctxStore contracts.SharedContext, budget contracts.Budget, cfg CoordinatorConfig) contracts.Coordinator {
	concrete, ok := sched.(*scheduler)
	if !ok {
		panic("orchestration: NewCoordinator requires a scheduler built by NewScheduler")
	}
	guard := cfg.PolicyGuard
	if guard == nil {
		guard = func(string, string) contracts.RiskAssessment {
			return contracts.RiskAssessment{Approved: true}
		}
	}
	if cfg.CodebaseMapSummary != "" {
		ctxStore.InjectCodebaseMap(cfg.CodebaseMapSummary)
	}
	return &coordinator{
		graph:    graph,
		sched:    concrete,
		ctxStore: ctxStore,
		budget:   budget,
		guard:    guard,
		tracer:   otel.Tracer("github.com/vfirsov/kernel/internal/orchestration"),
	}
}

func (c *coordinator) Run(ctx context.Context, exec contracts.Executor) (contracts.CoordinatorStats, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.run")
	defer span.End()

	iterations := 0
	for !c.graph.IsComplete() && iterations < maxIterations {
		iterations++

		if c.budget.IsExhausted() || c.sched.ShouldDegrade() {
			break
		}

		batch := c.sched.GetNextBatch()
		if len(batch) == 0 {
			if c.sched.RunningCount() == 0 {
				if wake, waiting := c.sched.nextBackoffWake(); waiting {
					if d := time.Until(wake); d > 0 {
						select {
						case <-ctx.Done():
							return c.Stats(), ctx.Err()
						case <-time.After(d):
						}
					}
					continue
				}
				break
			}
			continue
		}

		c.dispatchBatch(ctx, batch, exec)
	}

	c.mu.Lock()
	c.stats.Iterations = iterations
	c.stats.Success = c.stats.NodesFailed == 0
	c.stats.TokensUsed = c.budget.Stats().Spent
	final := c.stats
	c.mu.Unlock()

	return final, nil
}

// dispatchBatch runs every node in batch concurrently and awaits all of
// them before returning, matching spec §5's "dispatches the chosen batch
// concurrently and awaits completion of that batch before re-evaluating
// readiness."
func (c *coordinator) dispatchBatch(ctx context.Context, batch []*contracts.TaskNode, exec contracts.Executor) {
	var wg sync.WaitGroup
	for _, node := range batch {
		wg.Add(1)
		go func(node *contracts.TaskNode) {
			defer wg.Done()
			c.runOne(ctx, node, exec)
		}(node)
	}
	wg.Wait()
}

func (c *coordinator) runOne(ctx context.Context, node *contracts.TaskNode, exec contracts.Executor) {
	ctx, span := c.tracer.Start(ctx, "coordinator.agent")
	defer span.End()

	risk := c.guard("spawn_agent", string(node.Role))
	if !risk.Approved {
		c.sched.FailAgent(node.ID, fmt.Errorf("%w: %s", contracts.ErrPolicyDenied, risk.Reason))
		c.recordFailure(node.ID)
		return
	}

	if _, err := c.sched.SpawnAgent(node); err != nil {
		c.sched.FailAgent(node.ID, err)
		c.recordFailure(node.ID)
		return
	}

	liveAgent, ok := c.sched.agentFor(node.ID)
	if !ok {
		c.sched.FailAgent(node.ID, contracts.ErrAgentFailed)
		c.recordFailure(node.ID)
		return
	}

	summary := c.ctxStore.GetSummaryFor(contracts.AgentID(node.ID), 500)

	result, err := liveAgent.Execute(ctx, node.ID, summary, exec)
	if err != nil {
		retried := c.sched.FailAgent(node.ID, err)
		if !retried {
			c.graph.Collapse(node.ID)
			c.recordFailure(node.ID)
		}
		return
	}

	c.ctxStore.AddResult(contracts.AgentID(node.ID), node.Role, result.Output, result.TokensUsed)
	if err := c.sched.CompleteAgent(node.ID, result); err != nil {
		c.sched.FailAgent(node.ID, err)
		c.recordFailure(node.ID)
		return
	}

	c.mu.Lock()
	c.stats.NodesCompleted++
	c.mu.Unlock()
}

func (c *coordinator) recordFailure(contracts.NodeID) {
	c.mu.Lock()
	c.stats.NodesFailed++
	c.mu.Unlock()
}

func (c *coordinator) Stats() contracts.CoordinatorStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
