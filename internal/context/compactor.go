package context

import (
	contracts "github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/cost"
)

const fullSummaryChars = 10_000

// compactor implements contracts.ContextCompactor with the two-stage
// progressive compression algorithm from spec §4.8: try a full 10k-char
// summary; if it already fits maxTokens, return it; otherwise request a
// tighter summary bounded at roughly 3x maxTokens characters.
//
// Grounded directly on the teacher's context_compactor.go truncate/
// keep-last-N machinery, generalized to this two-stage algorithm. Token
// estimation reuses cost.TokenEstimator's chars-per-token heuristic
// rather than reimplementing it, so the Compactor and the LLM Router
// agree on what a token costs.
type compactor struct {
	estimator contracts.TokenEstimator
}

// NewContextCompactor creates a ContextCompactor.
func NewContextCompactor() contracts.ContextCompactor {
	return &compactor{estimator: cost.NewTokenEstimator()}
}

func (c *compactor) CompressContext(ctx contracts.SharedContext, maxTokens contracts.TokenCount) string {
	full := ctx.GetSummaryFor("", fullSummaryChars)
	if c.estimator.Estimate(full) <= maxTokens {
		return full
	}

	bound := int(maxTokens) * 3
	if bound <= 0 {
		bound = 1
	}
	return ctx.GetSummaryFor("", bound)
}
