package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"

	"github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/audit"
	kernelpkg "github.com/vfirsov/kernel/internal/kernel"
)

// maxRequestBodySize limits the size of incoming request bodies.
const maxRequestBodySize = 64 * 1024

// contextMetricsReserve pads the Context Health Monitor's memory-limit
// reading so a freshly started process isn't reported as already under
// memory pressure.
const contextMetricsReserve = 256 * 1024 * 1024

// Deps wires the Handlers' collaborators. Every field is a process-wide
// singleton the Kernel owns (spec §6's "Process-wide state").
type Deps struct {
	Kernel      contracts.Kernel
	Coordinator contracts.Coordinator
	Budget      contracts.Budget
	HealthDash  contracts.HealthDashboard
	Approvals   contracts.ApprovalQueue
	Memory      contracts.MemoryBackend
	Credentials *kernelpkg.CredentialIssuer
}

// Handlers contains the HTTP handler methods for the API.
type Handlers struct {
	deps Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{deps: deps}
}

// HandleStatus serves GET status.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statusToDTO(h.deps.Kernel.GetStatus()))
}

// HandleHealth serves GET health and GET doctor — both resolve to the
// same underlying health dashboard (spec §6 names both against §4.14).
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthReportToDTO(h.deps.HealthDash.GetFullReport(h.currentContextMetrics())))
}

// HandleSwarm serves GET swarm.
func (h *Handlers) HandleSwarm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, swarmStatsToDTO(h.deps.Coordinator.Stats()))
}

// HandleMemorySearch serves GET memory/search?q=….
func (h *Handlers) HandleMemorySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := h.deps.Memory.Search(q)
	dto := MemorySearchResponse{Query: q, Results: make([]MemorySearchResultDTO, len(results))}
	for i, res := range results {
		dto.Results[i] = MemorySearchResultDTO{Content: res.Content, Relevance: res.Relevance}
	}
	writeJSON(w, dto)
}

// HandleMemoryStats serves GET memory/stats.
func (h *Handlers) HandleMemoryStats(w http.ResponseWriter, r *http.Request) {
	stats := h.deps.Memory.Stats()
	writeJSON(w, MemoryStatsDTO{EntryCount: stats.EntryCount, Version: stats.Version})
}

// HandlePolicyPending serves GET policy/pending.
func (h *Handlers) HandlePolicyPending(w http.ResponseWriter, r *http.Request) {
	pending := h.deps.Approvals.GetPending()
	dtos := make([]ApprovalRequestDTO, len(pending))
	for i, p := range pending {
		dtos[i] = approvalToDTO(p)
	}
	writeJSON(w, dtos)
}

// HandlePolicyApprove serves POST policy/approve/:id.
func (h *Handlers) HandlePolicyApprove(w http.ResponseWriter, r *http.Request) {
	id := contracts.ApprovalID(r.PathValue("id"))
	applied := h.deps.Approvals.Approve(id)
	audit.Log("policy_approve", "id", id, "applied", applied)
	writeJSON(w, ApprovalDecisionResponse{ID: string(id), Applied: applied})
}

// HandlePolicyReject serves POST policy/reject/:id.
func (h *Handlers) HandlePolicyReject(w http.ResponseWriter, r *http.Request) {
	id := contracts.ApprovalID(r.PathValue("id"))
	applied := h.deps.Approvals.Reject(id)
	audit.Log("policy_reject", "id", id, "applied", applied)
	writeJSON(w, ApprovalDecisionResponse{ID: string(id), Applied: applied})
}

// HandleAuth serves POST auth: the gateway has already verified the
// caller and hands the core {user, role}; the core mints a short-lived
// bearer credential for subsequent calls (spec §6).
func (h *Handlers) HandleAuth(w http.ResponseWriter, r *http.Request) {
	if h.deps.Credentials == nil {
		writeError(w, fmt.Errorf("%w: credential issuance not configured", contracts.ErrInvalidInput))
		return
	}

	limited := io.LimitReader(r.Body, maxRequestBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil || len(body) > maxRequestBodySize {
		writeError(w, fmt.Errorf("%w: failed to read request body", contracts.ErrInvalidInput))
		return
	}

	var req AuthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON", contracts.ErrInvalidInput))
		return
	}
	if req.User == "" || req.Role == "" {
		writeError(w, fmt.Errorf("%w: user and role are required", contracts.ErrInvalidInput))
		return
	}

	token, err := h.deps.Credentials.IssueCredential(kernelpkg.Principal{User: req.User, Role: req.Role})
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", contracts.ErrInvalidInput, err))
		return
	}
	audit.Log("auth_issued", "user", req.User, "role", req.Role)
	writeJSON(w, AuthResponse{Token: token})
}

// currentContextMetrics samples live process/context signals for the
// Context Health Monitor (spec §4.14). Memory usage comes from the Go
// runtime; token usage comes from the shared Budget.
func (h *Handlers) currentContextMetrics() contracts.ContextMetrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var tokens contracts.TokenCount
	if h.deps.Budget != nil {
		tokens = h.deps.Budget.Stats().Spent
	}

	return contracts.ContextMetrics{
		CurrentTokens:    tokens,
		MemoryUsedBytes:  int64(mem.HeapAlloc),
		MemoryLimitBytes: int64(mem.HeapSys) + contextMetricsReserve,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		audit.LogError("write_json_failed", err)
	}
}
