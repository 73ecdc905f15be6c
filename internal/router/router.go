// Package router implements the LLM Router: complexity-cascaded
// provider selection, prompt-hash response caching, and a daily token
// cap enforced ahead of every provider attempt.
package router

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/cost"
)

const defaultComplexity = 5

// router implements contracts.LLMRouter. Grounded on the teacher's
// model_catalog.go registry-with-lookup pattern for provider storage,
// generalized to a cascading sort-by-maxComplexity selection instead
// of a flat map lookup. The daily-cap pre-check and post-response
// accounting reuse the cost package's TokenEstimator, ModelCatalog and
// CostCalculator rather than tracking a bare token counter, so the
// Router's usage figures line up with what the Budget and Compactor see.
type router struct {
	mu            sync.RWMutex
	providers     []contracts.Provider
	cache         *promptCache
	dailyCap      contracts.TokenCount
	dailyUsed     contracts.TokenCount
	usageByDayMux sync.Mutex

	estimator contracts.TokenEstimator
	catalog   contracts.ModelCatalog
	costCalc  contracts.CostCalculator
	usage     *cost.UsageTracker
}

// NewLLMRouter creates a Router. dailyCap <= 0 disables the daily cap.
func NewLLMRouter(dailyCap contracts.TokenCount, cacheTTL time.Duration) contracts.LLMRouter {
	catalog := cost.NewModelCatalog()
	return &router{
		cache:     newPromptCache(cacheTTL),
		dailyCap:  dailyCap,
		estimator: cost.NewTokenEstimator(),
		catalog:   catalog,
		costCalc:  cost.NewCostCalculatorWithCatalog(catalog),
		usage:     cost.NewUsageTracker(),
	}
}

// UsageByProvider returns the accumulated token/cost usage the Router
// has recorded for the given provider name. It is not part of
// contracts.LLMRouter, and no API handler reads it.
func (r *router) UsageByProvider(provider string) cost.UsageSnapshot {
	return r.usage.Snapshot(provider)
}

func (r *router) RegisterProvider(p contracts.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

func (r *router) GetDailyTokensUsed() contracts.TokenCount {
	r.usageByDayMux.Lock()
	defer r.usageByDayMux.Unlock()
	return r.dailyUsed
}

func (r *router) Think(ctx context.Context, prompt string, opts contracts.LLMRequestOptions) (contracts.LLMResponse, error) {
	if opts.Complexity == 0 {
		opts.Complexity = defaultComplexity
	}

	if resp, ok := r.cache.get(prompt, opts); ok {
		return resp, nil
	}

	// Pre-check: refuse before attempting a provider if today's usage
	// already meets the cap, or this prompt's estimated tokens would
	// push it over.
	estimated := r.estimator.Estimate(prompt)
	if r.dailyCap > 0 {
		used := r.GetDailyTokensUsed()
		if used >= r.dailyCap || used+estimated > r.dailyCap {
			return contracts.LLMResponse{}, contracts.ErrDailyBudgetExhausted
		}
	}

	candidates := r.sortedCandidates()
	for _, p := range candidates {
		if p.MaxComplexity() < opts.Complexity || !p.IsAvailable() {
			continue
		}
		start := time.Now()
		resp, err := p.Complete(ctx, prompt, opts)
		if err != nil {
			continue
		}
		resp.Provider = p.Name()
		resp.LatencyMs = time.Since(start).Milliseconds()
		r.recordUsage(resp.TokensUsed)
		if usdCost, err := r.costCalc.Estimate(resp.TokensUsed, resp.Model); err == nil {
			r.usage.Add(resp.Provider, int64(resp.TokensUsed), usdCost)
		} else {
			r.usage.Add(resp.Provider, int64(resp.TokensUsed), 0)
		}
		r.cache.put(prompt, opts, resp)
		return resp, nil
	}

	return contracts.LLMResponse{}, fmt.Errorf("%w for complexity %d", contracts.ErrNoProvider, opts.Complexity)
}

func (r *router) sortedCandidates() []contracts.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]contracts.Provider, len(r.providers))
	copy(out, r.providers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MaxComplexity() > out[j].MaxComplexity()
	})
	return out
}

func (r *router) recordUsage(n contracts.TokenCount) {
	r.usageByDayMux.Lock()
	defer r.usageByDayMux.Unlock()
	r.dailyUsed += n
}
