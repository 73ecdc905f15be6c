package config

import "errors"

// Sentinel errors for role registry validation.
var (
	// ErrConfigEmpty is returned when the role registry file has no roles.
	ErrConfigEmpty = errors.New("role registry is empty")

	// ErrRoleCountMismatch is returned when the registry does not contain
	// exactly 20 roles.
	ErrRoleCountMismatch = errors.New("role registry must contain exactly 20 roles")

	// ErrRoleCategoryMix is returned when the registry's category split
	// is not exactly 5 llm, 8 hybrid, 7 tool roles.
	ErrRoleCategoryMix = errors.New("role registry must contain 5 llm, 8 hybrid, 7 tool roles")

	// ErrRoleNameDuplicate is returned when two roles share a name.
	ErrRoleNameDuplicate = errors.New("duplicate role name")

	// ErrRoleNameEmpty is returned when a role has an empty name.
	ErrRoleNameEmpty = errors.New("role.name is required")

	// ErrRoleCategoryUnknown is returned when a role's category is not
	// one of llm, hybrid, tool.
	ErrRoleCategoryUnknown = errors.New("role.category must be llm, hybrid, or tool")

	// ErrToolRoleHasBudget is returned when a tool-category role carries
	// a non-zero average token budget.
	ErrToolRoleHasBudget = errors.New("tool role must have avg_tokens == 0")
)
