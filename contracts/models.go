package contracts

// TaskNode is a node in the Task DAG. Immutable except for the status
// fields (Status, Retries, Result, Error).
type TaskNode struct {
	ID           NodeID
	Role         RoleName
	Type         NodeType
	Description  string
	Dependencies []NodeID
	Budget       TokenCount // non-negative; Type==NodeTypeTool implies 0
	MaxRetries   int        // 0 means no retry; the Pipeline builds nodes with 2
	Depth        int        // 0 = root
	ParentID     *NodeID

	Status  NodeStatus
	Retries int
	Result  *AgentResult
	Error   error
}

// Role describes one entry in the 20-entry role registry.
type Role struct {
	Name          RoleName
	Type          NodeType
	Description   string
	AvgTokens     TokenCount
	SkipCondition string
	Category      RoleCategory
}

// Agent is created from a TaskNode for the duration of one execution
// attempt and discarded on terminal status.
type Agent struct {
	ID           AgentID
	Role         RoleName
	ParentID     *AgentID
	BudgetTokens TokenCount
	TokensUsed   TokenCount
	Status       AgentStatus
	CreatedAt    Timestamp
	Result       *AgentResult
}

// AgentResult is the opaque output of one agent's execution.
type AgentResult struct {
	AgentID    AgentID
	Role       RoleName
	Output     string
	TokensUsed TokenCount
	Timestamp  Timestamp
}

// TaskContext is the derived transfer DTO handed to an agent at spawn
// time; it is reconstructed from SharedContext on every call, never
// stored.
type TaskContext struct {
	TaskID              NodeID
	SourceAgent         AgentID
	InputData           map[string]string
	IntermediateResults []IntermediateResult
	Errors              []string
	Timestamp           Timestamp
}

// IntermediateResult is one entry of TaskContext.IntermediateResults.
type IntermediateResult struct {
	AgentID AgentID
	Role    RoleName
	Summary string
}

// MemoryEntry is one entry of a SharedContext's memory cache.
type MemoryEntry struct {
	Content   string
	Relevance float64
}

// BudgetStats is the snapshot returned by Budget.Stats().
type BudgetStats struct {
	Total       TokenCount
	Spent       TokenCount
	Reserved    TokenCount
	Remaining   TokenCount
	Utilization float64 // percent, 0-100
}

// LLMResponse is the result of one LLMRouter.Think call.
type LLMResponse struct {
	Content    string
	Provider   string
	Model      ModelID
	TokensUsed TokenCount
	LatencyMs  int64
	Cached     bool
}

// RestorePoint is a Watchdog-managed snapshot, ring-bounded to the most
// recent 10.
type RestorePoint struct {
	ID        string
	Timestamp Timestamp
	Reason    string
	Data      map[string]any
}

// MetricEvent is one entry on the Metric Bus, ring-bounded (default 1000).
type MetricEvent struct {
	Name      string // dotted, e.g. "brain.tokens_used"
	Value     float64
	Tags      map[string]string
	Timestamp Timestamp
}

// ApprovalRequest is a pending or resolved HIGH-risk approval.
type ApprovalRequest struct {
	ID        ApprovalID
	Risk      RiskLevel
	Operation string
	Target    string
	Reason    string
	Status    ApprovalStatus
	CreatedAt Timestamp
}

// RiskAssessment is the result of RiskEngine.Assess.
type RiskAssessment struct {
	Risk                  RiskLevel
	Score                 float64 // rounded to 2 decimals for display
	Approved              bool
	RequiresHumanApproval bool
	Reason                string
}

// RiskContext is the input to RiskEngine.Assess.
//
// Reversible is a tri-state pointer rather than a bool: a caller who
// never mentions reversibility (Reversible == nil) is assessed as
// reversible, matching spec §8 scenario S4's bare
// {action:"read", target:"workspace"} input. A plain bool would make
// the Go zero value (false) indistinguishable from an explicit "this
// is NOT reversible", which silently scores every unspecified case at
// the high-risk weight.
type RiskContext struct {
	Action        string // read|search|format|write|create|edit|execute|install|deploy|delete|secrets|system
	Target        string // sandbox|workspace|config|memory|production|system
	Reversible    *bool
	SensitiveData bool
	Urgent        bool
}

// ContractViolation is one failure reported by a registered contract.
type ContractViolation struct {
	Contract string
	File     string
	Message  string
}

// ContractResult is the outcome of a single registered contract.
type ContractResult struct {
	Contract   string
	Passed     bool
	Violations []ContractViolation
}

// ContractCheckInput is the input to ContractChecker.CheckAll.
type ContractCheckInput struct {
	ChangedFiles []string
	Diff         string
	ProjectRoot  string
	CodebaseMap  string
}

// ContractCheckReport is the aggregate output of ContractChecker.CheckAll.
type ContractCheckReport struct {
	AllPassed bool
	Results   []ContractResult
}

// KernelConfig is the minimal bootstrap configuration the Kernel reads
// at start-up.
type KernelConfig struct {
	Name    string
	Version string
	Mode    KernelMode
	TokenBudget struct {
		MaxPerHour TokenCount
	}
}

// KernelStatus is returned by Kernel.GetStatus / GET status.
type KernelStatus struct {
	Name          string
	Version       string
	Mode          KernelMode
	Running       bool
	PluginCount   int
	UptimeSeconds int64
}

// ContextMetrics is the input to ContextHealthMonitor.Assess.
type ContextMetrics struct {
	CurrentTokens     TokenCount
	ContextVersions   []Timestamp // lastUpdated per tracked context entry
	MemoryUsedBytes   int64
	MemoryLimitBytes  int64
}

// ContextHealthReport is returned by ContextHealthMonitor.Assess.
type ContextHealthReport struct {
	Band              HealthBand
	TokenUsagePercent float64
	StaleContextCount int
	MemoryPressure    bool
	Recommendations   []string
}

// SelfCheckResult is one Watchdog target's last health-check outcome.
type SelfCheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// FullHealthReport is returned by HealthDashboard.GetFullReport.
type FullHealthReport struct {
	OverallHealth HealthBand
	SelfChecks    []SelfCheckResult
	Context       ContextHealthReport
	SafeMode      bool
}

// CoordinatorStats summarizes a completed or in-flight Coordinator run.
type CoordinatorStats struct {
	Success        bool
	NodesCompleted int
	NodesFailed    int
	TokensUsed     TokenCount
	Iterations     int
}

// PipelineResult is returned by Pipeline.Prepare.
type PipelineResult struct {
	Status     string // "success" | "blocked" | "error"
	Task       *StructuredTask
	NodeID     NodeID
	Violations []ContractViolation
	Err        error
}

// StructuredTask is the parsed form of the structured task text input
// format (see spec §6).
type StructuredTask struct {
	Name   string
	Type   string // auto|manual|review
	Files  []string
	Action string
	Verify string
	Done   string
	Wave   *int
}
