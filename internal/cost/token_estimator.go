package cost

import (
	"github.com/vfirsov/kernel/contracts"
)

const defaultCharsPerToken = 4

// tokenEstimator implements contracts.TokenEstimator using the
// chars-per-token heuristic used throughout the Kernel (prompts,
// contract-checker diffs, Router daily-budget pre-checks).
type tokenEstimator struct {
	charsPerToken int
}

// NewTokenEstimator creates a TokenEstimator with the default ratio (4).
func NewTokenEstimator() contracts.TokenEstimator {
	return &tokenEstimator{charsPerToken: defaultCharsPerToken}
}

// NewTokenEstimatorWithRatio creates a TokenEstimator with a custom
// chars-per-token ratio.
func NewTokenEstimatorWithRatio(charsPerToken int) contracts.TokenEstimator {
	if charsPerToken <= 0 {
		charsPerToken = defaultCharsPerToken
	}
	return &tokenEstimator{charsPerToken: charsPerToken}
}

// Estimate returns len(text)/charsPerToken, with a floor of 1 token for
// any non-empty text (prevents budget bypass on tiny requests).
func (e *tokenEstimator) Estimate(text string) contracts.TokenCount {
	tokens := len(text) / e.charsPerToken
	if len(text) > 0 && tokens == 0 {
		tokens = 1
	}
	return contracts.TokenCount(tokens)
}
