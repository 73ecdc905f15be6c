package contracts

import "errors"

// Sentinel errors for the Kernel runtime.
var (
	// Budget errors
	ErrBudgetExceeded  = errors.New("budget exceeded")
	ErrBudgetExhausted = errors.New("budget exhausted")
	ErrBudgetNotSet    = errors.New("budget not set")

	// Node/Agent errors
	ErrNodeNotFound     = errors.New("node not found")
	ErrNodeNotReady     = errors.New("node not ready for execution")
	ErrAgentFailed      = errors.New("agent execution failed")
	ErrAgentAlreadyRun  = errors.New("agent already running")
	ErrAgentNotRunning  = errors.New("agent not running")
	ErrAgentNotSuspended = errors.New("agent not suspended")

	// DAG errors
	ErrDAGCycle      = errors.New("cycle detected in task dependencies")
	ErrDAGInvalid    = errors.New("invalid DAG structure")
	ErrDepNotFound   = errors.New("dependency node not found")
	ErrMaxNodes      = errors.New("maximum node count exceeded")
	ErrMaxDepth      = errors.New("maximum depth exceeded")

	// Context errors
	ErrContextTooLarge = errors.New("context exceeds maximum token limit")
	ErrContextEmpty    = errors.New("context bundle is empty")

	// Estimation errors
	ErrEstimationFailed = errors.New("token estimation failed")
	ErrModelUnknown      = errors.New("unknown model for cost calculation")

	// Input validation
	ErrInvalidInput = errors.New("invalid input: nil or malformed")

	// Risk / Policy
	ErrPolicyDenied = errors.New("policy denied")

	// Approval Queue
	ErrApprovalNotFound  = errors.New("approval request not found")
	ErrApprovalTerminal  = errors.New("approval request already resolved")
	ErrApprovalTimeout   = errors.New("approval timed out")

	// Contract Checker
	ErrContractViolation = errors.New("contract violation")

	// LLM Router
	ErrNoProvider        = errors.New("no available provider for requested complexity")
	ErrDailyBudgetExhausted = errors.New("daily budget exhausted")

	// Watchdog
	ErrSafeMode       = errors.New("kernel is in safe mode")
	ErrTargetNotFound = errors.New("watchdog target not found")

	// Kernel
	ErrPluginDuplicate = errors.New("plugin already registered")
	ErrKernelNotRunning = errors.New("kernel is not running")
	ErrKernelAlreadyRunning = errors.New("kernel is already running")

	// Pipeline
	ErrTaskHeaderMissing = errors.New("missing [TASK: ...] header")
	ErrMissingFields     = errors.New("missing required fields")
)
