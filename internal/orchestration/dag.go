package orchestration

import (
	"fmt"
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

const (
	defaultMaxNodes = 10
	defaultMaxDepth = 3
)

// taskGraph implements contracts.TaskGraph. It owns the node table and
// enforces size, depth, and acyclicity on every AddNode.
//
// Cycle detection is DFS with color marking (white/gray/black), the same
// algorithm the teacher's dependency resolver used to validate a
// fully-built graph; here it runs incrementally on every insert so a
// would-be cycle is rejected before the graph is mutated.
type taskGraph struct {
	mu       sync.Mutex
	nodes    map[contracts.NodeID]*contracts.TaskNode
	next     map[contracts.NodeID][]contracts.NodeID // forward edges: dep -> dependents
	maxNodes int
	maxDepth int
}

// NewTaskGraph creates an empty TaskGraph with the given bounds. A
// maxNodes/maxDepth of 0 selects the spec defaults (10 and 3).
func NewTaskGraph(maxNodes, maxDepth int) contracts.TaskGraph {
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &taskGraph{
		nodes:    make(map[contracts.NodeID]*contracts.TaskNode),
		next:     make(map[contracts.NodeID][]contracts.NodeID),
		maxNodes: maxNodes,
		maxDepth: maxDepth,
	}
}

func (g *taskGraph) AddNode(node *contracts.TaskNode) error {
	if node == nil || node.ID == "" {
		return contracts.ErrInvalidInput
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[node.ID]; exists {
		return fmt.Errorf("node %s already exists: %w", node.ID, contracts.ErrDAGInvalid)
	}
	if len(g.nodes) >= g.maxNodes {
		return fmt.Errorf("cannot add node %s, at limit %d: %w", node.ID, g.maxNodes, contracts.ErrMaxNodes)
	}
	if node.Depth >= g.maxDepth {
		return fmt.Errorf("node %s at depth %d exceeds max depth %d: %w", node.ID, node.Depth, g.maxDepth, contracts.ErrMaxDepth)
	}
	for _, dep := range node.Dependencies {
		if _, ok := g.nodes[dep]; !ok {
			return fmt.Errorf("node %s depends on %s which is not found: %w", node.ID, dep, contracts.ErrDepNotFound)
		}
	}

	// Tentatively wire the node in, then check for a cycle; roll back on failure.
	node.Status = contracts.NodePending
	g.nodes[node.ID] = node
	if _, ok := g.next[node.ID]; !ok {
		g.next[node.ID] = nil
	}
	for _, dep := range node.Dependencies {
		g.next[dep] = append(g.next[dep], node.ID)
	}

	if g.hasCycleLocked() {
		g.removeNodeLocked(node.ID)
		return contracts.ErrDAGCycle
	}

	return nil
}

func (g *taskGraph) removeNodeLocked(id contracts.NodeID) {
	node := g.nodes[id]
	if node == nil {
		return
	}
	for _, dep := range node.Dependencies {
		filtered := g.next[dep][:0]
		for _, d := range g.next[dep] {
			if d != id {
				filtered = append(filtered, d)
			}
		}
		g.next[dep] = filtered
	}
	delete(g.next, id)
	delete(g.nodes, id)
}

// hasCycleLocked runs DFS with white/gray/black color marking over the
// whole graph. Caller must hold g.mu.
func (g *taskGraph) hasCycleLocked() bool {
	const white, gray, black = 0, 1, 2
	colors := make(map[contracts.NodeID]int, len(g.nodes))
	for id := range g.nodes {
		colors[id] = white
	}

	var visit func(id contracts.NodeID) bool
	visit = func(id contracts.NodeID) bool {
		colors[id] = gray
		for _, next := range g.next[id] {
			switch colors[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		colors[id] = black
		return false
	}

	for id := range g.nodes {
		if colors[id] == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

func (g *taskGraph) GetReady() []*contracts.TaskNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ready []*contracts.TaskNode
	for _, node := range g.nodes {
		if node.Status != contracts.NodePending {
			continue
		}
		allDepsDone := true
		for _, dep := range node.Dependencies {
			if depNode, ok := g.nodes[dep]; !ok || depNode.Status != contracts.NodeDone {
				allDepsDone = false
				break
			}
		}
		if allDepsDone {
			ready = append(ready, node)
		}
	}
	return ready
}

func (g *taskGraph) SetStatus(id contracts.NodeID, status contracts.NodeStatus, result *contracts.AgentResult, err error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[id]
	if !ok {
		return contracts.ErrNodeNotFound
	}
	node.Status = status
	if result != nil {
		node.Result = result
	}
	node.Error = err
	return nil
}

func (g *taskGraph) Collapse(id contracts.NodeID) []contracts.NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	var cancelled []contracts.NodeID
	var walk func(contracts.NodeID)
	walk = func(cur contracts.NodeID) {
		for _, child := range g.next[cur] {
			node, ok := g.nodes[child]
			if !ok {
				continue
			}
			if node.Status == contracts.NodePending {
				node.Status = contracts.NodeCancelled
				cancelled = append(cancelled, child)
			}
			walk(child)
		}
	}
	walk(id)
	return cancelled
}

func (g *taskGraph) TopologicalSort() ([]contracts.NodeID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	const white, gray, black = 0, 1, 2
	colors := make(map[contracts.NodeID]int, len(g.nodes))
	for id := range g.nodes {
		colors[id] = white
	}

	var order []contracts.NodeID
	var visit func(id contracts.NodeID) error
	visit = func(id contracts.NodeID) error {
		colors[id] = gray
		for _, next := range g.next[id] {
			switch colors[next] {
			case gray:
				return contracts.ErrDAGCycle
			case white:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		colors[id] = black
		order = append(order, id)
		return nil
	}

	// Start from roots (no dependencies) for a stable, dependency-first
	// traversal order; fall back to any remaining unvisited node.
	var roots []contracts.NodeID
	for id, node := range g.nodes {
		if len(node.Dependencies) == 0 {
			roots = append(roots, id)
		}
	}
	for _, id := range roots {
		if colors[id] == white {
			if err := visit(id); err != nil {
				return nil, err
			}
		}
	}
	for id := range g.nodes {
		if colors[id] == white {
			if err := visit(id); err != nil {
				return nil, err
			}
		}
	}

	// visit appends a node only after all its dependents are visited
	// (post-order over forward edges), which yields dependency order
	// when reversed.
	reversed := make([]contracts.NodeID, len(order))
	for i, id := range order {
		reversed[len(order)-1-i] = id
	}
	return reversed, nil
}

func (g *taskGraph) IsComplete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, node := range g.nodes {
		switch node.Status {
		case contracts.NodeDone, contracts.NodeFailed, contracts.NodeCancelled:
			continue
		default:
			return false
		}
	}
	return true
}

func (g *taskGraph) Get(id contracts.NodeID) (*contracts.TaskNode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	node, ok := g.nodes[id]
	return node, ok
}

func (g *taskGraph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}
