package orchestration

import (
	"github.com/vfirsov/kernel/contracts"
	ctxpkg "github.com/vfirsov/kernel/internal/context"
	"github.com/vfirsov/kernel/internal/cost"
)

// FactoryOptions provides optional customization for Coordinator assembly.
type FactoryOptions struct {
	MaxNodes      int
	MaxDepth      int
	MaxConcurrent int
	CPUThreshold  float64
	TotalBudget   contracts.TokenCount
	DailySource   contracts.DailyTokenSource
	Roles         RoleLookup
	PolicyGuard   contracts.PolicyGuard
	TaskDescription string
	CodebaseMapSummary string
}

// NewCoordinatorWithDefaults assembles a fully wired Coordinator (TaskGraph,
// Scheduler, SharedContext, Budget) from FactoryOptions, mirroring the
// teacher's factory.go single-entry-point assembly style.
func NewCoordinatorWithDefaults(opts FactoryOptions) (contracts.Coordinator, contracts.TaskGraph, contracts.SharedContext, contracts.Budget) {
	graph := NewTaskGraph(opts.MaxNodes, opts.MaxDepth)
	budget := cost.NewBudget(opts.TotalBudget, opts.DailySource)

	roles := opts.Roles
	if roles == nil {
		roles = func(contracts.RoleName) (contracts.Role, bool) { return contracts.Role{}, false }
	}

	sched := NewScheduler(graph, budget, roles, SchedulerConfig{
		MaxConcurrent: opts.MaxConcurrent,
		CPUThreshold:  opts.CPUThreshold,
	})

	sharedCtx := ctxpkg.NewSharedContext(opts.TaskDescription)

	coord := NewCoordinator(graph, sched, sharedCtx, budget, CoordinatorConfig{
		PolicyGuard:        opts.PolicyGuard,
		CodebaseMapSummary: opts.CodebaseMapSummary,
	})

	return coord, graph, sharedCtx, budget
}
