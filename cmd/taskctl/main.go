// Package main provides taskctl, the CLI client for the kernel: it
// submits structured task text through the local Unified Pipeline and
// queries/controls a running kernel daemon over its REST surface
// (spec §6).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/vfirsov/kernel/config"
	"github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/contractcheck"
	"github.com/vfirsov/kernel/internal/orchestration"
	"github.com/vfirsov/kernel/internal/pipeline"
	"github.com/vfirsov/kernel/internal/risk"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "submit":
		submitCmd(os.Args[2:])
	case "status":
		remoteGetCmd(os.Args[2:], "/status")
	case "health":
		remoteGetCmd(os.Args[2:], "/health")
	case "swarm":
		remoteGetCmd(os.Args[2:], "/swarm")
	case "policy":
		policyCmd(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  taskctl submit --file <path> [--roles <registry.toml>]
  taskctl status --addr <url>
  taskctl health --addr <url>
  taskctl swarm --addr <url>
  taskctl policy pending --addr <url>
  taskctl policy approve --id <id> --addr <url>
  taskctl policy reject --id <id> --addr <url>`)
}

// submitCmd parses one or more "[TASK: NAME]" blocks from --file and
// runs each through a local Unified Pipeline instance, printing the
// Prepare() outcome for every block. It does not dispatch agents: that
// is the kernel daemon's job once the node lands in its TaskGraph.
func submitCmd(args []string) {
	fs := newFlagSet("submit")
	file := fs.String("file", "", "structured task text file")
	rolesPath := fs.String("roles", "", "path to a TOML role registry file (default: built-in registry)")
	root := fs.String("project-root", ".", "project root the Contract Checker evaluates against")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	roles, err := loadRoles(*rolesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading role registry: %v\n", err)
		os.Exit(1)
	}

	p := newLocalPipeline(roles, *root)

	blocks := splitTaskBlocks(string(data))
	if len(blocks) == 0 {
		fmt.Fprintln(os.Stderr, "error: no [TASK: ...] blocks found")
		os.Exit(1)
	}

	exitCode := 0
	for _, block := range blocks {
		result := p.Prepare(block)
		if result.Err != nil {
			fmt.Printf("status=%s node=%s err=%v\n", result.Status, result.NodeID, result.Err)
			exitCode = 1
			continue
		}
		fmt.Printf("status=%s node=%s\n", result.Status, result.NodeID)
	}
	os.Exit(exitCode)
}

func loadRoles(path string) (*config.RoleRegistry, error) {
	if path == "" {
		return config.NewRoleRegistry(config.DefaultRoles())
	}
	return config.NewLoader().LoadFromFile(path)
}

func newLocalPipeline(roles *config.RoleRegistry, projectRoot string) contracts.Pipeline {
	riskEngine := risk.NewRiskEngine()
	guard := func(action, target string) contracts.RiskAssessment {
		return riskEngine.Assess(contracts.RiskContext{Action: action, Target: target})
	}

	return pipeline.NewPipeline(pipeline.Config{
		Graph:       orchestration.NewTaskGraph(256, 16),
		Roles:       roles.Lookup,
		Guard:       guard,
		Checker:     contractcheck.NewContractChecker(),
		ProjectRoot: projectRoot,
	})
}

// splitTaskBlocks breaks a file containing back-to-back "[TASK: ...]"
// sections into the individual blocks the Pipeline parser expects.
func splitTaskBlocks(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[TASK:") {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func remoteGetCmd(args []string, path string) {
	fs := newFlagSet(strings.TrimPrefix(path, "/"))
	addr := fs.String("addr", "http://localhost:8080", "kernel address")
	fs.Parse(args)

	body, status, err := httpGet(*addr + path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	printResponse(body, status)
}

func policyCmd(args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "pending":
		remoteGetCmd(args[1:], "/policy/pending")
	case "approve":
		policyDecisionCmd(args[1:], "/policy/approve/")
	case "reject":
		policyDecisionCmd(args[1:], "/policy/reject/")
	default:
		printUsage()
		os.Exit(1)
	}
}

func policyDecisionCmd(args []string, pathPrefix string) {
	fs := newFlagSet(strings.TrimSuffix(strings.TrimPrefix(pathPrefix, "/"), "/"))
	addr := fs.String("addr", "http://localhost:8080", "kernel address")
	id := fs.String("id", "", "approval request id")
	fs.Parse(args)

	if *id == "" {
		fmt.Fprintln(os.Stderr, "error: --id is required")
		os.Exit(1)
	}

	body, status, err := httpPost(*addr+pathPrefix+*id, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	printResponse(body, status)
}

func printResponse(body []byte, status int) {
	if status >= 400 {
		fmt.Fprintf(os.Stderr, "error: HTTP %d: %s\n", status, string(body))
		os.Exit(1)
	}

	var pretty interface{}
	if err := json.Unmarshal(body, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Println(string(body))
}

func httpGet(url string) ([]byte, int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func httpPost(url string, payload []byte) ([]byte, int, error) {
	resp, err := http.Post(url, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}
