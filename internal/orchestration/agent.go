package orchestration

import (
	"context"
	"fmt"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

// agent is the stateful executor bound to one TaskNode for the duration
// of a single execution attempt. Mirrors the teacher's per-task
// execution guard (parallel_executor.go's double-run protection) but
// owns budget-exceeded semantics per spec §4.9.
type agent struct {
	mu sync.Mutex

	id           contracts.AgentID
	role         contracts.RoleName
	nodeType     contracts.NodeType
	parentID     *contracts.AgentID
	budgetTokens contracts.TokenCount
	tokensUsed   contracts.TokenCount
	status       contracts.AgentStatus
	createdAt    contracts.Timestamp
	result       *contracts.AgentResult
}

// NewAgent constructs an agent bound to the given node's budget and role.
func NewAgent(id contracts.AgentID, role contracts.RoleName, nodeType contracts.NodeType, budget contracts.TokenCount, parentID *contracts.AgentID, createdAt contracts.Timestamp) *agent {
	return &agent{
		id:           id,
		role:         role,
		nodeType:     nodeType,
		parentID:     parentID,
		budgetTokens: budget,
		status:       contracts.AgentIdle,
		createdAt:    createdAt,
	}
}

func (a *agent) Snapshot() contracts.Agent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return contracts.Agent{
		ID:           a.id,
		Role:         a.role,
		ParentID:     a.parentID,
		BudgetTokens: a.budgetTokens,
		TokensUsed:   a.tokensUsed,
		Status:       a.status,
		CreatedAt:    a.createdAt,
		Result:       a.result,
	}
}

// Execute guards against double-run, delegates to exec, accumulates
// tokensUsed, and transitions to done/failed per spec §4.9: tool agents
// skip the budget check entirely.
func (a *agent) Execute(ctx context.Context, nodeID contracts.NodeID, contextSummary string, exec contracts.Executor) (*contracts.AgentResult, error) {
	a.mu.Lock()
	if a.status == contracts.AgentRunning {
		a.mu.Unlock()
		return nil, fmt.Errorf("agent %s already running: %w", a.id, contracts.ErrAgentAlreadyRun)
	}
	a.status = contracts.AgentRunning
	a.mu.Unlock()

	result, err := exec(ctx, nodeID, a.role, contextSummary)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.status = contracts.AgentFailed
		return nil, fmt.Errorf("agent %s: %w", a.id, err)
	}

	a.tokensUsed += result.TokensUsed
	if a.nodeType != contracts.NodeTypeTool && a.tokensUsed > a.budgetTokens {
		a.status = contracts.AgentFailed
		return nil, fmt.Errorf("agent %s: %w: used %d > budget %d", a.id, contracts.ErrBudgetExceeded, a.tokensUsed, a.budgetTokens)
	}

	a.status = contracts.AgentDone
	a.result = result
	return result, nil
}

func (a *agent) Suspend() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != contracts.AgentRunning {
		return contracts.ErrAgentNotRunning
	}
	a.status = contracts.AgentSuspended
	return nil
}

func (a *agent) Resume() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != contracts.AgentSuspended {
		return contracts.ErrAgentNotSuspended
	}
	a.status = contracts.AgentRunning
	return nil
}
