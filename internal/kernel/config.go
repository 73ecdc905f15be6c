package kernel

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/vfirsov/kernel/contracts"
)

// bootstrapFile mirrors the minimal TOML bootstrap configuration the
// Kernel reads at start-up (spec §4.16 / §6 Environment). Grounded on
// the teacher's config/loader.go load-then-validate shape, format
// swapped from JSON to TOML per the ambient stack.
type bootstrapFile struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Mode    string `toml:"mode"`
	Budget  struct {
		MaxPerHour int64 `toml:"max_per_hour"`
	} `toml:"token_budget"`
}

// LoadBootstrapConfig reads and validates the Kernel's bootstrap TOML
// file at path.
func LoadBootstrapConfig(path string) (contracts.KernelConfig, error) {
	var raw bootstrapFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return contracts.KernelConfig{}, fmt.Errorf("load bootstrap config: %w", err)
	}
	return ParseBootstrapConfig(raw)
}

// ParseBootstrapConfig validates a decoded bootstrapFile and converts
// it into a contracts.KernelConfig.
func ParseBootstrapConfig(raw bootstrapFile) (contracts.KernelConfig, error) {
	if raw.Name == "" {
		return contracts.KernelConfig{}, fmt.Errorf("%w: name is required", contracts.ErrInvalidInput)
	}
	if raw.Version == "" {
		return contracts.KernelConfig{}, fmt.Errorf("%w: version is required", contracts.ErrInvalidInput)
	}

	mode, err := parseMode(raw.Mode)
	if err != nil {
		return contracts.KernelConfig{}, err
	}

	cfg := contracts.KernelConfig{Name: raw.Name, Version: raw.Version, Mode: mode}
	cfg.TokenBudget.MaxPerHour = contracts.TokenCount(raw.Budget.MaxPerHour)
	return cfg, nil
}

func parseMode(s string) (contracts.KernelMode, error) {
	switch s {
	case "", "minimal":
		return contracts.ModeMinimal, nil
	case "standard":
		return contracts.ModeStandard, nil
	case "free_time":
		return contracts.ModeFreeTime, nil
	case "auto":
		return contracts.ModeAuto, nil
	default:
		return 0, fmt.Errorf("%w: unknown kernel mode %q", contracts.ErrInvalidInput, s)
	}
}
