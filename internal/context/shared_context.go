// Package context implements the Shared Context Layer: the append-only
// result store and summary projector shared by every agent in one DAG,
// including wave isolation and progressive compression.
package context

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

const defaultSummaryMaxLength = 500

// sharedContext implements contracts.SharedContext.
//
// Grounded on the teacher's context_builder.go Build-assembly pattern
// (pull from a Run's completed tasks and render a bundle) and
// context_router.go's Route data-passing idea, repurposed here from
// mutating a Run's task inputs into constructing the read-only
// TaskContext transfer DTO described in spec §3.
type sharedContext struct {
	mu sync.Mutex

	taskDescription string
	results         map[contracts.AgentID]*contracts.AgentResult
	order           []contracts.AgentID // insertion order, for stable summaries
	version         uint64

	codebaseMap    string
	hasCodebaseMap bool

	memory *memoryCache
}

// NewSharedContext creates a SharedContext with the given immutable task
// description.
func NewSharedContext(taskDescription string) contracts.SharedContext {
	return &sharedContext{
		taskDescription: taskDescription,
		results:         make(map[contracts.AgentID]*contracts.AgentResult),
		memory:          newMemoryCache(),
	}
}

func (c *sharedContext) AddResult(agentID contracts.AgentID, role contracts.RoleName, output string, tokensUsed contracts.TokenCount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.results[agentID]; exists {
		// Append-only: a repeated add for the same agent keeps the first result.
		c.version++
		return
	}
	c.order = append(c.order, agentID)
	c.results[agentID] = &contracts.AgentResult{
		AgentID:    agentID,
		Role:       role,
		Output:     output,
		TokensUsed: tokensUsed,
	}
	c.version++
}

func (c *sharedContext) GetResult(agentID contracts.AgentID) (*contracts.AgentResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[agentID]
	return r, ok
}

func (c *sharedContext) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *sharedContext) TaskDescription() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskDescription
}

// GetSummaryFor returns a compact string projection: first line the task
// description (truncated to ~100 chars), then one line per other agent's
// result (role tag + up to 150 chars of output), then optionally a
// memory cache block, clamped to maxLength overall.
func (c *sharedContext) GetSummaryFor(agentID contracts.AgentID, maxLength int) string {
	if maxLength <= 0 {
		maxLength = defaultSummaryMaxLength
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	b.WriteString(truncate(c.taskDescription, 100))

	for _, id := range c.order {
		if id == agentID {
			continue
		}
		res := c.results[id]
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("[%s] %s", res.Role, truncate(res.Output, 150)))
	}

	if mem := c.memory.render(); mem != "" {
		b.WriteString("\n")
		b.WriteString(mem)
	}

	return truncate(b.String(), maxLength)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (c *sharedContext) CreateTaskContext(sourceAgent contracts.AgentID, inputData map[string]string) contracts.TaskContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	var intermediate []contracts.IntermediateResult
	for _, id := range c.order {
		if id == sourceAgent {
			continue
		}
		res := c.results[id]
		intermediate = append(intermediate, contracts.IntermediateResult{
			AgentID: res.AgentID,
			Role:    res.Role,
			Summary: truncate(res.Output, 150),
		})
	}

	return contracts.TaskContext{
		TaskID:              contracts.NodeID(sourceAgent),
		SourceAgent:         sourceAgent,
		InputData:           inputData,
		IntermediateResults: intermediate,
	}
}

func (c *sharedContext) InjectCodebaseMap(summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Overwrite semantics on repeated calls (spec §9 Open Question: retained as overwrite).
	c.codebaseMap = summary
	c.hasCodebaseMap = true
}

func (c *sharedContext) GetCodebaseMap() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codebaseMap, c.hasCodebaseMap
}

// CreateWaveContext returns a fresh SharedContext for a logical
// generation of tasks, isolated from the parent's results except through
// a compressed summary seeded into the new context's memory cache at
// relevance 1.0 (spec §4.8 Wave isolation).
func CreateWaveContext(parent contracts.SharedContext, waveID int, parentSummary string) contracts.SharedContext {
	desc := fmt.Sprintf("[Wave %d] %s", waveID, parent.TaskDescription())
	wave := NewSharedContext(desc).(*sharedContext)
	wave.memory.put(parentSummary, 1.0)
	return wave
}
