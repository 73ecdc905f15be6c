package contracts

import "context"

// =============================================================================
// Task DAG + Scheduling
// =============================================================================

// TaskGraph is the Task DAG (C6): typed nodes with dependencies, bounded
// by count and depth, with cycle rejection and cascading cancellation.
type TaskGraph interface {
	// AddNode validates count/depth/dependency-existence/cycle-freedom
	// and inserts the node. On any violation the graph is unchanged.
	AddNode(node *TaskNode) error

	// GetReady returns pending nodes whose dependencies are all done.
	GetReady() []*TaskNode

	// SetStatus mutates only the targeted node's status fields.
	SetStatus(id NodeID, status NodeStatus, result *AgentResult, err error) error

	// Collapse transitions every pending transitive descendant of id to
	// cancelled and returns their ids. Running/done descendants are untouched.
	Collapse(id NodeID) []NodeID

	// TopologicalSort returns every node exactly once in dependency order.
	TopologicalSort() ([]NodeID, error)

	// IsComplete reports whether every node is done, failed, or cancelled.
	IsComplete() bool

	// Get returns the node by id.
	Get(id NodeID) (*TaskNode, bool)

	// Len returns the number of nodes in the graph.
	Len() int
}

// Executor invokes the caller-supplied work for one node and returns its
// result. It must never panic past the Agent boundary; Agent.Execute
// converts any returned error into a failed AgentResult.
type Executor func(ctx context.Context, nodeID NodeID, role RoleName, contextSummary string) (*AgentResult, error)

// PolicyGuard classifies an action before it is allowed to proceed; used
// by the Coordinator before every agent spawn.
type PolicyGuard func(action string, target string) RiskAssessment

// Scheduler is the lazy-spawn selector (C9): readiness + budget + CPU +
// interactive gate; priority ordering; retry handling.
type Scheduler interface {
	// GetNextBatch returns the nodes to spawn this tick, per the
	// degradation ladder and priority ordering.
	GetNextBatch() []*TaskNode

	// SpawnAgent reserves budget (if non-tool) and constructs an Agent
	// for the node, marking it running. Returns nil if budget refuses.
	SpawnAgent(node *TaskNode) (*Agent, error)

	// CompleteAgent records spend, releases reservation, marks the node done.
	CompleteAgent(id NodeID, result *AgentResult) error

	// FailAgent returns true if the node was reverted to pending for a
	// retry, false if it was marked terminally failed.
	FailAgent(id NodeID, cause error) bool

	// RunningCount returns the number of agents currently running.
	RunningCount() int

	SetCPUUsage(percent float64)
	SetInteractive(active bool)
	ShouldDegrade() bool
}

// Coordinator drives a TaskGraph to completion using a Scheduler, a
// SharedContext, a Budget, and policy/contract guards.
type Coordinator interface {
	// Run drives the DAG to completion or until the iteration fuse trips.
	Run(ctx context.Context, exec Executor) (CoordinatorStats, error)

	// Stats returns the current/last run's summary.
	Stats() CoordinatorStats
}

// =============================================================================
// Budget / Cost Control
// =============================================================================

// DailyTokenSource reports today's token consumption from an external
// authoritative source (the LLM Router). When set on a Budget, it
// overrides "tokens used today" readings.
type DailyTokenSource interface {
	GetDailyTokensUsed() TokenCount
}

// Budget is the hierarchical token accounting component (C5/C6).
type Budget interface {
	// Reserve grants min(requested, floor(0.30*(total-spent-Σreserved))).
	Reserve(agentID AgentID, requested TokenCount) TokenCount

	// Spend increments spent and shrinks the agent's reservation.
	Spend(agentID AgentID, n TokenCount)

	// Release clears the agent's reservation.
	Release(agentID AgentID)

	CanSpend(n TokenCount) bool
	IsExhausted() bool
	Stats() BudgetStats
	GetDailyTokensUsed() TokenCount
}

// TokenEstimator estimates token counts from raw text (chars/4 heuristic).
type TokenEstimator interface {
	Estimate(text string) TokenCount
}

// CostCalculator calculates monetary cost from token usage and model.
type CostCalculator interface {
	Estimate(tokens TokenCount, model ModelID) (float64, error)
}

// ModelCatalog provides model metadata and role-based selection.
type ModelCatalog interface {
	Get(id ModelID) (ModelInfo, bool)
	GetByRole(role ModelRole) (ModelInfo, bool)
	List() []ModelInfo
	SetRoleMapping(role ModelRole, modelID ModelID) error
}

// =============================================================================
// Shared Context
// =============================================================================

// SharedContext is the append-only result store and summary projector
// shared by all agents in one DAG (C7).
type SharedContext interface {
	AddResult(agentID AgentID, role RoleName, output string, tokensUsed TokenCount)
	GetResult(agentID AgentID) (*AgentResult, bool)
	Version() uint64

	GetSummaryFor(agentID AgentID, maxLength int) string
	CreateTaskContext(sourceAgent AgentID, inputData map[string]string) TaskContext

	InjectCodebaseMap(summary string)
	GetCodebaseMap() (string, bool)

	TaskDescription() string
}

// ContextCompactor progressively compresses a context summary to fit a
// token budget. Never mutates the SharedContext.
type ContextCompactor interface {
	CompressContext(ctx SharedContext, maxTokens TokenCount) string
}

// =============================================================================
// Risk / Policy
// =============================================================================

// RiskEngine classifies an action context into LOW/MEDIUM/HIGH (C1).
type RiskEngine interface {
	Assess(rc RiskContext) RiskAssessment
}

// ApprovalQueue holds pending HIGH-risk requests (C2).
type ApprovalQueue interface {
	Enqueue(req ApprovalRequest) ApprovalID
	GetPending() []ApprovalRequest
	Approve(id ApprovalID) bool
	Reject(id ApprovalID) bool

	// Await blocks until the request is resolved or ctx/timeout elapses,
	// returning the final status (implicit reject on timeout).
	Await(ctx context.Context, id ApprovalID) ApprovalStatus
}

// ContractChecker is the pre-output invariant gate (C4).
type ContractChecker interface {
	CheckAll(input ContractCheckInput) ContractCheckReport
	Register(name string, check func(ContractCheckInput) ContractResult)
}

// =============================================================================
// LLM Router
// =============================================================================

// LLMRequestOptions configures one LLMRouter.Think call.
type LLMRequestOptions struct {
	Complexity   int // 1-10, default 5
	MaxTokens    TokenCount
	Temperature  float64
	SystemPrompt string
}

// Provider is one LLM backend registered with the Router.
type Provider interface {
	Name() string
	MaxComplexity() int
	IsAvailable() bool
	Complete(ctx context.Context, prompt string, opts LLMRequestOptions) (LLMResponse, error)
}

// LLMRouter cascades providers by complexity, caches by prompt hash, and
// enforces a daily token cap (C4.5).
type LLMRouter interface {
	Think(ctx context.Context, prompt string, opts LLMRequestOptions) (LLMResponse, error)
	RegisterProvider(p Provider)
	DailyTokenSource
}

// =============================================================================
// Watchdog / Health
// =============================================================================

// WatchdogTarget is one monitored component.
type WatchdogTarget struct {
	Name    string
	Check   func() (bool, error)
	Restart func()
}

// Watchdog runs periodic health probes, tracks failure counts, and
// activates safe mode after repeated failures (C11).
type Watchdog interface {
	Register(target WatchdogTarget)
	HealthCheck() []SelfCheckResult
	CreateRestorePoint(reason string, data map[string]any) RestorePoint
	RestorePoints() []RestorePoint
	Start(intervalMs int)
	Stop()
	IsSafeMode() bool
	DeactivateSafeMode()
}

// ContextHealthMonitor derives healthy/warning/critical from context
// pressure signals (C12).
type ContextHealthMonitor interface {
	Assess(m ContextMetrics) ContextHealthReport
}

// HealthDashboard combines Watchdog self-checks with the Context Health
// Monitor's band into one report.
type HealthDashboard interface {
	GetFullReport(m ContextMetrics) FullHealthReport
}

// =============================================================================
// Memory (collaborator contract)
// =============================================================================

// MemorySearchResult is one ranked hit returned by MemoryBackend.Search.
type MemorySearchResult struct {
	Content   string
	Relevance float64
}

// MemoryStats summarizes a MemoryBackend's current contents.
type MemoryStats struct {
	EntryCount int
	Version    uint64
}

// MemoryBackend is the contract the core consumes from the persistent
// memory collaborator (vector DB / full-text store), which spec §1
// places out of scope. The core only specifies this shape and the
// `GET memory/search` / `GET memory/stats` surface it serves from it.
type MemoryBackend interface {
	Search(query string) []MemorySearchResult
	Stats() MemoryStats
}

// =============================================================================
// Metric Bus
// =============================================================================

// MetricBus is an in-memory ring buffer with pattern subscriptions (C13).
type MetricBus interface {
	Emit(name string, value float64, tags map[string]string)
	On(pattern string, handler func(MetricEvent))
	Snapshot() map[string][]MetricEvent
}

// =============================================================================
// Pipeline
// =============================================================================

// Pipeline is the Unified Pipeline entry point (C14): parse, validate,
// policy, DAG node, contracts.
type Pipeline interface {
	Prepare(taskText string) PipelineResult
}

// =============================================================================
// Kernel
// =============================================================================

// Plugin is an optionally-lifecycle-aware component registered with the Kernel.
type Plugin interface {
	Name() string
}

// PluginWithLifecycle is implemented by plugins that want start/stop/health hooks.
type PluginWithLifecycle interface {
	Plugin
	Stop() error
	HealthCheck() error
}

// EventHandler receives dispatched Kernel events in registration order.
type EventHandler func(event string, data any)

// Kernel owns configuration, the plugin registry, and the typed event bus (C15).
type Kernel interface {
	Start() error
	Stop() error
	HealthCheck() map[string]error
	SetMode(mode KernelMode)
	ReloadConfig(partial KernelConfig)
	GetStatus() KernelStatus

	RegisterPlugin(p Plugin) error

	On(event string, handler EventHandler)
	Off(event string)
	Dispatch(event string, data any)
}
