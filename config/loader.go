package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vfirsov/kernel/contracts"
)

// Loader loads and validates the role registry from a TOML file.
// Grounded on the teacher's JSON Loader, swapped to TOML to match
// the bootstrap config format used elsewhere in the kernel.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads and validates a role registry from a TOML file.
func (l *Loader) LoadFromFile(path string) (*RoleRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading role registry %s: %w", path, err)
	}

	reg, err := l.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading role registry %s: %w", path, err)
	}

	return reg, nil
}

// LoadFromBytes parses and validates a role registry from raw TOML bytes.
func (l *Loader) LoadFromBytes(data []byte) (*RoleRegistry, error) {
	if len(data) == 0 {
		return nil, ErrConfigEmpty
	}

	var file RoleRegistryFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	if err := NewValidator().Validate(file.Role); err != nil {
		return nil, err
	}
	return NewValidatedRegistry(file.Role)
}

// NewValidatedRegistry converts raw role specs to contracts.Role and
// builds a validated RoleRegistry.
func NewValidatedRegistry(specs []RoleSpec) (*RoleRegistry, error) {
	roles := make([]contracts.Role, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, ErrRoleNameEmpty
		}
		category, ok := categoryFromString(s.Category)
		if !ok {
			return nil, fmt.Errorf("role %s: %w", s.Name, ErrRoleCategoryUnknown)
		}
		roles = append(roles, contracts.Role{
			Name:          contracts.RoleName(s.Name),
			Type:          nodeTypeForCategory(category),
			Description:   s.Description,
			AvgTokens:     contracts.TokenCount(s.AvgTokens),
			SkipCondition: s.SkipCondition,
			Category:      category,
		})
	}
	return NewRoleRegistry(roles)
}
