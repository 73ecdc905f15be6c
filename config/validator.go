package config

import "fmt"

// Validator validates raw role specs before they become a RoleRegistry.
// Roles carry no dependency graph, so the teacher's DFS cycle detection
// has no counterpart here; this keeps its one-check-per-concern style
// applied to the registry's count and category invariants instead.
type Validator struct{}

// NewValidator creates a new role registry validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks each raw spec for an empty name, a duplicate name and
// an unknown category, then builds the registry with
// NewValidatedRegistry so the registry's own count and category checks
// run as well.
func (v *Validator) Validate(specs []RoleSpec) error {
	if len(specs) == 0 {
		return ErrConfigEmpty
	}

	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("role[%d]: %w", i, ErrRoleNameEmpty)
		}
		if seen[s.Name] {
			return fmt.Errorf("role.name=%s: %w", s.Name, ErrRoleNameDuplicate)
		}
		seen[s.Name] = true

		if _, ok := categoryFromString(s.Category); !ok {
			return fmt.Errorf("role.name=%s category=%s: %w", s.Name, s.Category, ErrRoleCategoryUnknown)
		}
	}

	if _, err := NewValidatedRegistry(specs); err != nil {
		return err
	}
	return nil
}
