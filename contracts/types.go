// Package contracts defines the core types and interfaces shared across
// the Kernel runtime.
package contracts

// NodeID uniquely identifies a task node within a DAG.
type NodeID string

// AgentID uniquely identifies an agent bound to one node's execution attempt.
type AgentID string

// ApprovalID uniquely identifies a pending approval request.
type ApprovalID string

// RoleName identifies a role in the role registry (e.g. "planner", "coder").
type RoleName string

// ModelID identifies an LLM model (e.g., "claude-opus-4", "claude-haiku-4").
type ModelID string

// TokenCount represents a count of tokens.
type TokenCount int64

// Currency represents a currency code (e.g., "USD").
type Currency string

// Timestamp represents a Unix timestamp in milliseconds.
type Timestamp int64

// Bool returns a pointer to b, for populating RiskContext.Reversible
// (and any other tri-state *bool field) from a literal.
func Bool(b bool) *bool {
	return &b
}
