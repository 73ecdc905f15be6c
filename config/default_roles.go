package config

import "github.com/vfirsov/kernel/contracts"

// DefaultRoles returns the built-in 20-role registry (5 llm, 8 hybrid,
// 7 tool) used when no role registry file is supplied. It includes
// coder and reviewer, the two roles pipeline task construction assigns.
func DefaultRoles() []contracts.Role {
	return []contracts.Role{
		{Name: "planner", Type: contracts.NodeTypeLLM, Category: contracts.CategoryLLM, AvgTokens: 1500, Description: "Decomposes a task into subtasks and dependencies."},
		{Name: "reviewer", Type: contracts.NodeTypeLLM, Category: contracts.CategoryLLM, AvgTokens: 1200, Description: "Reviews agent output for correctness before completion."},
		{Name: "architect", Type: contracts.NodeTypeLLM, Category: contracts.CategoryLLM, AvgTokens: 1800, Description: "Designs structural changes spanning multiple files."},
		{Name: "researcher", Type: contracts.NodeTypeLLM, Category: contracts.CategoryLLM, AvgTokens: 1000, Description: "Gathers context from the codebase or external sources."},
		{Name: "critic", Type: contracts.NodeTypeLLM, Category: contracts.CategoryLLM, AvgTokens: 800, Description: "Adversarially checks a prior result for flaws."},

		{Name: "auto", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 2000, Description: "Fallback role for tasks whose type does not resolve to a specific role."},
		{Name: "coder", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 2000, Description: "Writes or edits code to satisfy a task description."},
		{Name: "refactorer", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 1500, Description: "Restructures existing code without changing behavior."},
		{Name: "debugger", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 1500, Description: "Diagnoses and fixes a failing test or reported bug."},
		{Name: "documenter", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 900, Description: "Writes or updates documentation for changed code."},
		{Name: "optimizer", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 1500, Description: "Improves performance of an identified hot path."},
		{Name: "migrator", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 1700, Description: "Applies a mechanical transform across many call sites."},
		{Name: "integrator", Type: contracts.NodeTypeHybrid, Category: contracts.CategoryHybrid, AvgTokens: 1300, Description: "Wires a new dependency or service into existing code."},

		{Name: "tester", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Runs the test suite and reports pass/fail.", SkipCondition: "no test files changed"},
		{Name: "linter", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Runs static analysis over changed files."},
		{Name: "formatter", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Applies canonical source formatting."},
		{Name: "builder", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Compiles the module and reports build errors."},
		{Name: "deployer", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Ships a build artifact to a target environment.", SkipCondition: "no deploy target configured"},
		{Name: "fetcher", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Retrieves a remote resource (URL, package, dataset)."},
		{Name: "indexer", Type: contracts.NodeTypeTool, Category: contracts.CategoryTool, AvgTokens: 0, Description: "Rebuilds a search or symbol index over the codebase."},
	}
}
