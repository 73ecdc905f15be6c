// Package contractcheck implements the pre-output invariant gate that
// the Pipeline and Kernel lifecycle consult before allowing a commit
// or final answer to surface.
package contractcheck

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

type checkFunc func(contracts.ContractCheckInput) contracts.ContractResult

// checker implements contracts.ContractChecker. Grounded on the
// teacher's config/validator.go idiom of one function per rule feeding
// an aggregate pass/fail, generalized to a registerable map instead of
// a fixed function list.
type checker struct {
	mu     sync.RWMutex
	checks map[string]checkFunc
}

// NewContractChecker creates a ContractChecker pre-loaded with the
// three built-in contracts from spec §4.4.
func NewContractChecker() contracts.ContractChecker {
	c := &checker{checks: make(map[string]checkFunc)}
	c.Register("naming-conventions", checkNamingConventions)
	c.Register("no-env-access", checkNoEnvAccess)
	c.Register("api-signature", checkAPISignature)
	return c
}

func (c *checker) Register(name string, check func(contracts.ContractCheckInput) contracts.ContractResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

func (c *checker) CheckAll(input contracts.ContractCheckInput) contracts.ContractCheckReport {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	fns := make(map[string]checkFunc, len(c.checks))
	for k, v := range c.checks {
		fns[k] = v
	}
	c.mu.RUnlock()

	report := contracts.ContractCheckReport{AllPassed: true}
	for _, name := range names {
		result := fns[name](input)
		result.Contract = name
		report.Results = append(report.Results, result)
		if !result.Passed {
			report.AllPassed = false
		}
	}
	return report
}

var kebabCase = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*(\.[a-z0-9]+)*$`)

func checkNamingConventions(input contracts.ContractCheckInput) contracts.ContractResult {
	result := contracts.ContractResult{Passed: true}
	for _, f := range input.ChangedFiles {
		base := filepath.Base(f)
		if !kebabCase.MatchString(base) {
			result.Passed = false
			result.Violations = append(result.Violations, contracts.ContractViolation{
				Contract: "naming-conventions",
				File:     f,
				Message:  "file name must be kebab-case",
			})
		}
	}
	return result
}

var envGetter = regexp.MustCompile(`os\.(Getenv|LookupEnv|Environ)\(`)

func checkNoEnvAccess(input contracts.ContractCheckInput) contracts.ContractResult {
	result := contracts.ContractResult{Passed: true}
	for _, f := range input.ChangedFiles {
		base := filepath.Base(f)
		if base == ".env" || (strings.HasPrefix(base, ".env") && base != ".env.example") {
			result.Passed = false
			result.Violations = append(result.Violations, contracts.ContractViolation{
				Contract: "no-env-access",
				File:     f,
				Message:  "changed file touches .env",
			})
		}
	}
	if envGetter.MatchString(input.Diff) {
		result.Passed = false
		result.Violations = append(result.Violations, contracts.ContractViolation{
			Contract: "no-env-access",
			File:     input.ProjectRoot,
			Message:  "diff reads environment variables directly",
		})
	}
	return result
}

var removedExport = regexp.MustCompile(`^-\s*(export|func [A-Z]|type [A-Z]|var [A-Z]|const [A-Z])`)

func checkAPISignature(input contracts.ContractCheckInput) contracts.ContractResult {
	result := contracts.ContractResult{Passed: true}
	touchesIndex := false
	for _, f := range input.ChangedFiles {
		if strings.HasPrefix(filepath.Base(f), "index.") {
			touchesIndex = true
			break
		}
	}
	if !touchesIndex {
		return result
	}
	for _, line := range strings.Split(input.Diff, "\n") {
		if removedExport.MatchString(line) {
			result.Passed = false
			result.Violations = append(result.Violations, contracts.ContractViolation{
				Contract: "api-signature",
				File:     "index",
				Message:  "removed public export: " + strings.TrimSpace(line[1:]),
			})
		}
	}
	return result
}
