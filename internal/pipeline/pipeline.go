package pipeline

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/orchestration"
)

// fixedNodeBudget is the budget spec §4.12 step 4 fixes for every node
// the Pipeline builds, regardless of the resolved role's AvgTokens.
const fixedNodeBudget contracts.TokenCount = 2000

// Config wires the Unified Pipeline's collaborators.
type Config struct {
	Graph       contracts.TaskGraph
	Roles       orchestration.RoleLookup
	Guard       contracts.PolicyGuard
	Checker     contracts.ContractChecker
	ProjectRoot string
}

// pipeline implements contracts.Pipeline. Grounded on the teacher's
// orchestrator.go top-level Run method: a sequence of named stages,
// each short-circuiting on its own sentinel error.
type pipeline struct {
	graph       contracts.TaskGraph
	roles       orchestration.RoleLookup
	guard       contracts.PolicyGuard
	checker     contracts.ContractChecker
	projectRoot string

	mu    sync.Mutex
	index int
}

// NewPipeline creates a Pipeline from cfg.
func NewPipeline(cfg Config) contracts.Pipeline {
	return &pipeline{
		graph:       cfg.Graph,
		roles:       cfg.Roles,
		guard:       cfg.Guard,
		checker:     cfg.Checker,
		projectRoot: cfg.ProjectRoot,
	}
}

func (p *pipeline) Prepare(taskText string) contracts.PipelineResult {
	task, err := ParseStructuredTask(taskText)
	if err != nil {
		return contracts.PipelineResult{Status: "error", Err: err}
	}
	if err := ValidateStructuredTask(task); err != nil {
		return contracts.PipelineResult{Status: "error", Task: task, Err: err}
	}

	risk := p.guard("execute_task", strings.Join(task.Files, ","))
	if !risk.Approved {
		return contracts.PipelineResult{
			Status: "blocked",
			Task:   task,
			Err:    fmt.Errorf("%w: %s", contracts.ErrPolicyDenied, risk.Reason),
		}
	}

	node := p.buildNode(task)
	if err := p.graph.AddNode(node); err != nil {
		return contracts.PipelineResult{Status: "error", Task: task, Err: err}
	}

	report := p.checker.CheckAll(contracts.ContractCheckInput{
		ChangedFiles: task.Files,
		ProjectRoot:  p.projectRoot,
	})
	if !report.AllPassed {
		var violations []contracts.ContractViolation
		for _, r := range report.Results {
			violations = append(violations, r.Violations...)
		}
		return contracts.PipelineResult{
			Status:     "blocked",
			Task:       task,
			NodeID:     node.ID,
			Violations: violations,
			Err:        contracts.ErrContractViolation,
		}
	}

	return contracts.PipelineResult{Status: "success", Task: task, NodeID: node.ID}
}

// buildNode applies spec §4.12 step 4's deterministic task-to-node
// mapping: id = task_<index>_<snake(name)>; role = coder unless
// type == review (then reviewer); type = hybrid for auto, llm for
// manual|review; description = "<action> [verify: …] [done: …]";
// dependencies = []; budget = 2000; maxRetries = 2.
func (p *pipeline) buildNode(task *contracts.StructuredTask) *contracts.TaskNode {
	p.mu.Lock()
	idx := p.index
	p.index++
	p.mu.Unlock()

	role := contracts.RoleName("coder")
	if task.Type == "review" {
		role = contracts.RoleName("reviewer")
	}

	nodeType := contracts.NodeTypeHybrid
	if task.Type == "manual" || task.Type == "review" {
		nodeType = contracts.NodeTypeLLM
	}

	return &contracts.TaskNode{
		ID:          contracts.NodeID(fmt.Sprintf("task_%d_%s", idx, snakeCase(task.Name))),
		Role:        role,
		Type:        nodeType,
		Description: fmt.Sprintf("%s [verify: %s] [done: %s]", task.Action, task.Verify, task.Done),
		Budget:      fixedNodeBudget,
		MaxRetries:  2,
		Status:      contracts.NodePending,
	}
}

// snakeCase lowercases s and collapses any run of non-alphanumeric
// characters into a single underscore, trimming leading/trailing ones.
func snakeCase(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
