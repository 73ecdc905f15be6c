// Package config loads and validates the Role Registry: the fixed set
// of 20 roles (5 llm, 8 hybrid, 7 tool) that the Pipeline and
// Scheduler resolve task types against.
package config

import "github.com/vfirsov/kernel/contracts"

const (
	requiredLLMCount    = 5
	requiredHybridCount = 8
	requiredToolCount   = 7
	requiredTotalCount  = requiredLLMCount + requiredHybridCount + requiredToolCount
)

// RoleSpec is the TOML-decoded shape of one role entry; Category and
// Type are free-form strings on disk and resolved to the typed enums
// at validation time.
type RoleSpec struct {
	Name          string `toml:"name"`
	Category      string `toml:"category"` // llm|hybrid|tool
	Description   string `toml:"description"`
	AvgTokens     int64  `toml:"avg_tokens"`
	SkipCondition string `toml:"skip_condition"`
}

// RoleRegistryFile is the root TOML document shape.
type RoleRegistryFile struct {
	Role []RoleSpec `toml:"role"`
}

// RoleRegistry resolves a role name to its contracts.Role definition.
// Grounded on the teacher's workflow_config.go typed-role-constant
// idea, generalized from a fixed 4-role slice into a validated,
// TOML-loaded 20-role table.
type RoleRegistry struct {
	byName map[contracts.RoleName]contracts.Role
}

// NewRoleRegistry validates roles against spec.md §3's Role Registry
// invariant (exactly 20 roles: 5 llm, 8 hybrid, 7 tool; unique names;
// tool roles have avgTokens == 0) and builds a lookup table.
func NewRoleRegistry(roles []contracts.Role) (*RoleRegistry, error) {
	if len(roles) != requiredTotalCount {
		return nil, ErrRoleCountMismatch
	}

	byName := make(map[contracts.RoleName]contracts.Role, len(roles))
	var llmCount, hybridCount, toolCount int

	for _, r := range roles {
		if _, dup := byName[r.Name]; dup {
			return nil, ErrRoleNameDuplicate
		}
		byName[r.Name] = r

		switch r.Category {
		case contracts.CategoryLLM:
			llmCount++
		case contracts.CategoryHybrid:
			hybridCount++
		case contracts.CategoryTool:
			toolCount++
			if r.AvgTokens != 0 {
				return nil, ErrToolRoleHasBudget
			}
		default:
			return nil, ErrRoleCategoryUnknown
		}
	}

	if llmCount != requiredLLMCount || hybridCount != requiredHybridCount || toolCount != requiredToolCount {
		return nil, ErrRoleCategoryMix
	}

	return &RoleRegistry{byName: byName}, nil
}

// Lookup resolves name to its Role definition. Matches the
// orchestration.RoleLookup and pipeline role-lookup function shape.
func (r *RoleRegistry) Lookup(name contracts.RoleName) (contracts.Role, bool) {
	role, ok := r.byName[name]
	return role, ok
}

// All returns every registered role, in no particular order.
func (r *RoleRegistry) All() []contracts.Role {
	out := make([]contracts.Role, 0, len(r.byName))
	for _, role := range r.byName {
		out = append(out, role)
	}
	return out
}

func categoryFromString(s string) (contracts.RoleCategory, bool) {
	switch s {
	case "llm":
		return contracts.CategoryLLM, true
	case "hybrid":
		return contracts.CategoryHybrid, true
	case "tool":
		return contracts.CategoryTool, true
	default:
		return 0, false
	}
}

func nodeTypeForCategory(c contracts.RoleCategory) contracts.NodeType {
	switch c {
	case contracts.CategoryTool:
		return contracts.NodeTypeTool
	case contracts.CategoryHybrid:
		return contracts.NodeTypeHybrid
	default:
		return contracts.NodeTypeLLM
	}
}
