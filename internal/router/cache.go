package router

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vfirsov/kernel/contracts"
)

const defaultCacheTTL = 5 * time.Minute

// promptCache memoizes LLMResponse by a deterministic digest of the
// prompt and request options, grounded on SWARM's ResultCache use of
// go-cache for TTL-bounded response memoization.
type promptCache struct {
	store *gocache.Cache
}

func newPromptCache(ttl time.Duration) *promptCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &promptCache{store: gocache.New(ttl, ttl)}
}

func hashKey(prompt string, opts contracts.LLMRequestOptions) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%f|%s", prompt, opts.Complexity, opts.MaxTokens, opts.Temperature, opts.SystemPrompt)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *promptCache) get(prompt string, opts contracts.LLMRequestOptions) (contracts.LLMResponse, bool) {
	v, ok := c.store.Get(hashKey(prompt, opts))
	if !ok {
		return contracts.LLMResponse{}, false
	}
	resp := v.(contracts.LLMResponse)
	resp.Cached = true
	return resp, true
}

func (c *promptCache) put(prompt string, opts contracts.LLMRequestOptions, resp contracts.LLMResponse) {
	c.store.SetDefault(hashKey(prompt, opts), resp)
}
