// Package api provides the HTTP API layer consumed by the gateway
// collaborator (spec §6): status, health, swarm stats, memory search,
// policy approval, auth, and the health dashboard.
package api

import (
	"github.com/vfirsov/kernel/contracts"
)

// StatusDTO mirrors contracts.KernelStatus for GET status.
type StatusDTO struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Mode          string `json:"mode"`
	Running       bool   `json:"running"`
	PluginCount   int    `json:"plugin_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func statusToDTO(s contracts.KernelStatus) StatusDTO {
	return StatusDTO{
		Name:          s.Name,
		Version:       s.Version,
		Mode:          s.Mode.String(),
		Running:       s.Running,
		PluginCount:   s.PluginCount,
		UptimeSeconds: s.UptimeSeconds,
	}
}

// SelfCheckDTO mirrors contracts.SelfCheckResult.
type SelfCheckDTO struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// HealthReportDTO mirrors contracts.FullHealthReport, served by both
// GET health and GET doctor (spec §6 names both against the same
// underlying health dashboard).
type HealthReportDTO struct {
	OverallHealth     string         `json:"overall_health"`
	SelfChecks        []SelfCheckDTO `json:"self_checks"`
	TokenUsagePercent float64        `json:"token_usage_percent"`
	StaleContextCount int            `json:"stale_context_count"`
	MemoryPressure    bool           `json:"memory_pressure"`
	Recommendations   []string       `json:"recommendations"`
	SafeMode          bool           `json:"safe_mode"`
}

func healthReportToDTO(r contracts.FullHealthReport) HealthReportDTO {
	checks := make([]SelfCheckDTO, len(r.SelfChecks))
	for i, c := range r.SelfChecks {
		checks[i] = SelfCheckDTO{Name: c.Name, Passed: c.Passed, Detail: c.Detail}
	}
	return HealthReportDTO{
		OverallHealth:     r.OverallHealth.String(),
		SelfChecks:        checks,
		TokenUsagePercent: r.Context.TokenUsagePercent,
		StaleContextCount: r.Context.StaleContextCount,
		MemoryPressure:    r.Context.MemoryPressure,
		Recommendations:   r.Context.Recommendations,
		SafeMode:          r.SafeMode,
	}
}

// SwarmStatsDTO mirrors contracts.CoordinatorStats for GET swarm.
type SwarmStatsDTO struct {
	Success        bool  `json:"success"`
	NodesCompleted int   `json:"nodes_completed"`
	NodesFailed    int   `json:"nodes_failed"`
	TokensUsed     int64 `json:"tokens_used"`
	Iterations     int   `json:"iterations"`
}

func swarmStatsToDTO(s contracts.CoordinatorStats) SwarmStatsDTO {
	return SwarmStatsDTO{
		Success:        s.Success,
		NodesCompleted: s.NodesCompleted,
		NodesFailed:    s.NodesFailed,
		TokensUsed:     int64(s.TokensUsed),
		Iterations:     s.Iterations,
	}
}

// MemorySearchResultDTO mirrors contracts.MemorySearchResult.
type MemorySearchResultDTO struct {
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

// MemorySearchResponse is the body of GET memory/search.
type MemorySearchResponse struct {
	Query   string                  `json:"query"`
	Results []MemorySearchResultDTO `json:"results"`
}

// MemoryStatsDTO mirrors contracts.MemoryStats for GET memory/stats.
type MemoryStatsDTO struct {
	EntryCount int    `json:"entry_count"`
	Version    uint64 `json:"version"`
}

// ApprovalRequestDTO mirrors contracts.ApprovalRequest for GET policy/pending.
type ApprovalRequestDTO struct {
	ID        string `json:"id"`
	Risk      string `json:"risk"`
	Operation string `json:"operation"`
	Target    string `json:"target"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func approvalToDTO(a contracts.ApprovalRequest) ApprovalRequestDTO {
	return ApprovalRequestDTO{
		ID:        string(a.ID),
		Risk:      a.Risk.String(),
		Operation: a.Operation,
		Target:    a.Target,
		Reason:    a.Reason,
		Status:    a.Status.String(),
		CreatedAt: int64(a.CreatedAt),
	}
}

// ApprovalDecisionResponse is the body of POST policy/approve|reject/:id.
type ApprovalDecisionResponse struct {
	ID      string `json:"id"`
	Applied bool   `json:"applied"`
}

// AuthRequest is the body of POST auth: the principal the gateway has
// already verified and is handing off to the core (spec §6).
type AuthRequest struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// AuthResponse is the body of POST auth.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorDTO represents an error in an API response body.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
