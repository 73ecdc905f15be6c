package orchestration

import (
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/vfirsov/kernel/contracts"
)

const (
	defaultMaxConcurrent = 5
	defaultCPUThreshold  = 80.0
	defaultCPUHardLimit  = 90.0
)

// RoleLookup resolves a role by name; used by the scheduler to look up
// role metadata when constructing an agent.
type RoleLookup func(name contracts.RoleName) (contracts.Role, bool)

// scheduler implements contracts.Scheduler as the lazy-spawn selector:
// readiness + budget + CPU + interactive gate, tool-first/ascending-
// budget priority, and retry handling with exponential backoff pacing.
//
// Grounded on the teacher's scheduler.go readiness scan, generalized
// from a topological-readiness report into the degradation-ladder batch
// selector described in spec §4.10.
type scheduler struct {
	mu sync.Mutex

	graph         contracts.TaskGraph
	budget        contracts.Budget
	roles         RoleLookup
	maxConcurrent int
	cpuThreshold  float64

	cpuUsage    float64
	interactive bool

	running map[contracts.NodeID]*agent
	backoff map[contracts.NodeID]*backoff.ExponentialBackOff
	nextTry map[contracts.NodeID]time.Time
	order   *readyOrder
}

// SchedulerConfig carries the recognized Scheduler configuration keys
// from spec §9 (maxConcurrent, cpuThreshold).
type SchedulerConfig struct {
	MaxConcurrent int
	CPUThreshold  float64
}

// NewScheduler creates a Scheduler bound to the given graph and budget.
func NewScheduler(graph contracts.TaskGraph, budget contracts.Budget, roles RoleLookup, cfg SchedulerConfig) contracts.Scheduler {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	cpuThreshold := cfg.CPUThreshold
	if cpuThreshold <= 0 {
		cpuThreshold = defaultCPUThreshold
	}
	return &scheduler{
		graph:         graph,
		budget:        budget,
		roles:         roles,
		maxConcurrent: maxConcurrent,
		cpuThreshold:  cpuThreshold,
		running:       make(map[contracts.NodeID]*agent),
		backoff:       make(map[contracts.NodeID]*backoff.ExponentialBackOff),
		nextTry:       make(map[contracts.NodeID]time.Time),
		order:         newReadyOrder(),
	}
}

func (s *scheduler) SetCPUUsage(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpuUsage = percent
}

func (s *scheduler) SetInteractive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactive = active
}

func (s *scheduler) ShouldDegrade() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cpuUsage > defaultCPUHardLimit
}

func (s *scheduler) RunningCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.running)
}

// nextBackoffWake returns the nearest pending retry wake time across all
// backed-off nodes, and whether any exist. The Coordinator uses this to
// tell "retry pacing in progress" apart from a genuine deadlock (nothing
// running, nothing ready, nothing waiting to become ready).
func (s *scheduler) nextBackoffWake() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var earliest time.Time
	found := false
	for _, t := range s.nextTry {
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}
	return earliest, found
}

// agentFor returns the live agent object for a running node, for use by
// the Coordinator when invoking Execute. Not part of contracts.Scheduler:
// the Coordinator in this package holds the concrete *scheduler type to
// reach it.
func (s *scheduler) agentFor(id contracts.NodeID) (*agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.running[id]
	return a, ok
}

// GetNextBatch applies the degradation ladder in order: full degradation
// above 90% CPU, no spawning while interactive, tool-first/budget-
// ascending priority, tool-only above the soft CPU threshold, capped at
// maxConcurrent-runningCount. Nodes whose retry backoff has not yet
// elapsed are excluded.
func (s *scheduler) GetNextBatch() []*contracts.TaskNode {
	s.mu.Lock()
	cpu := s.cpuUsage
	interactive := s.interactive
	slots := s.maxConcurrent - len(s.running)
	s.mu.Unlock()

	if cpu > defaultCPUHardLimit {
		return nil
	}
	if interactive {
		return nil
	}
	if slots <= 0 {
		return nil
	}

	ready := s.graph.GetReady()
	now := time.Now()
	filtered := ready[:0]
	for _, node := range ready {
		s.mu.Lock()
		t, hasBackoff := s.nextTry[node.ID]
		s.mu.Unlock()
		if hasBackoff && now.Before(t) {
			continue
		}
		filtered = append(filtered, node)
	}
	ready = filtered
	for _, node := range ready {
		s.order.Seen(node.ID)
	}

	sort.SliceStable(ready, func(i, j int) bool {
		iTool := ready[i].Type == contracts.NodeTypeTool
		jTool := ready[j].Type == contracts.NodeTypeTool
		if iTool != jTool {
			return iTool
		}
		if ready[i].Budget != ready[j].Budget {
			return ready[i].Budget < ready[j].Budget
		}
		return s.order.Index(ready[i].ID) < s.order.Index(ready[j].ID)
	})

	if cpu > s.cpuThreshold {
		toolOnly := ready[:0]
		for _, node := range ready {
			if node.Type == contracts.NodeTypeTool {
				toolOnly = append(toolOnly, node)
			}
		}
		ready = toolOnly
	}

	if len(ready) > slots {
		ready = ready[:slots]
	}
	return ready
}

func (s *scheduler) SpawnAgent(node *contracts.TaskNode) (*contracts.Agent, error) {
	if node.Type != contracts.NodeTypeTool {
		if !s.budget.CanSpend(node.Budget) {
			return nil, contracts.ErrBudgetExhausted
		}
		s.budget.Reserve(contracts.AgentID(node.ID), node.Budget)
	}

	var parentID *contracts.AgentID
	if node.ParentID != nil {
		pid := contracts.AgentID(*node.ParentID)
		parentID = &pid
	}

	a := NewAgent(contracts.AgentID(node.ID), node.Role, node.Type, node.Budget, parentID, contracts.Timestamp(time.Now().UnixMilli()))

	s.mu.Lock()
	s.running[node.ID] = a
	s.mu.Unlock()
	s.order.Forget(node.ID)

	if err := s.graph.SetStatus(node.ID, contracts.NodeRunning, nil, nil); err != nil {
		return nil, err
	}

	snap := a.Snapshot()
	return &snap, nil
}

func (s *scheduler) CompleteAgent(id contracts.NodeID, result *contracts.AgentResult) error {
	s.mu.Lock()
	delete(s.running, id)
	delete(s.backoff, id)
	delete(s.nextTry, id)
	s.mu.Unlock()

	s.budget.Spend(contracts.AgentID(id), result.TokensUsed)
	s.budget.Release(contracts.AgentID(id))

	return s.graph.SetStatus(id, contracts.NodeDone, result, nil)
}

// FailAgent reverts the node to pending for a retry (paced by exponential
// backoff) when under maxRetries, otherwise marks it terminally failed.
func (s *scheduler) FailAgent(id contracts.NodeID, cause error) bool {
	s.mu.Lock()
	delete(s.running, id)
	s.mu.Unlock()

	s.budget.Release(contracts.AgentID(id))

	node, ok := s.graph.Get(id)
	if !ok {
		return false
	}

	if node.Retries < node.MaxRetries {
		node.Retries++

		s.mu.Lock()
		b, exists := s.backoff[id]
		if !exists {
			b = backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.Multiplier = 2
			s.backoff[id] = b
		}
		s.nextTry[id] = time.Now().Add(b.NextBackOff())
		s.mu.Unlock()

		_ = s.graph.SetStatus(id, contracts.NodePending, nil, nil)
		return true
	}

	_ = s.graph.SetStatus(id, contracts.NodeFailed, nil, cause)
	return false
}
