// Package pipeline implements the Unified Pipeline: parsing the
// structured task-text input format, validating it, consulting the
// policy guard, building a DAG node, and gating the result behind the
// Contract Checker.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfirsov/kernel/contracts"
)

// ParseStructuredTask parses the "[TASK: NAME]" + "key: value" line
// format from spec §6. Field names are case-insensitive; values are
// trimmed; files is split on commas.
func ParseStructuredTask(text string) (*contracts.StructuredTask, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil, contracts.ErrTaskHeaderMissing
	}

	header := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(header, "[TASK:") || !strings.HasSuffix(header, "]") {
		return nil, contracts.ErrTaskHeaderMissing
	}
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(header, "[TASK:"), "]"))

	task := &contracts.StructuredTask{Name: name, Type: "auto"}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])

		switch key {
		case "type":
			task.Type = value
		case "files":
			for _, f := range strings.Split(value, ",") {
				f = strings.TrimSpace(f)
				if f != "" {
					task.Files = append(task.Files, f)
				}
			}
		case "action":
			task.Action = value
		case "verify":
			task.Verify = value
		case "done":
			task.Done = value
		case "wave":
			w, err := strconv.Atoi(value)
			if err != nil || w <= 0 {
				return nil, fmt.Errorf("%w: wave must be a positive integer", contracts.ErrInvalidInput)
			}
			task.Wave = &w
		}
	}

	return task, nil
}

// ValidateStructuredTask enforces spec §3's Task invariant: all
// required fields non-empty and files non-empty.
func ValidateStructuredTask(task *contracts.StructuredTask) error {
	if task.Name == "" || task.Action == "" || task.Verify == "" || task.Done == "" {
		return contracts.ErrMissingFields
	}
	if len(task.Files) == 0 {
		return contracts.ErrMissingFields
	}
	switch task.Type {
	case "auto", "manual", "review":
	default:
		return fmt.Errorf("%w: unknown task type %q", contracts.ErrInvalidInput, task.Type)
	}
	return nil
}
