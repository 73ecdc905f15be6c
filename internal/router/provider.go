package router

import (
	"context"

	"github.com/vfirsov/kernel/contracts"
)

// CompleteFunc performs one completion call against a concrete backend.
type CompleteFunc func(ctx context.Context, prompt string, opts contracts.LLMRequestOptions) (contracts.LLMResponse, error)

// FuncProvider adapts a plain completion function into contracts.Provider,
// so a concrete backend (an HTTP client, a local model runner) can be
// registered with the Router without writing a dedicated type.
type FuncProvider struct {
	name          string
	maxComplexity int
	available     func() bool
	complete      CompleteFunc
}

// NewFuncProvider builds a Provider. available defaults to "always
// available" when nil.
func NewFuncProvider(name string, maxComplexity int, available func() bool, complete CompleteFunc) *FuncProvider {
	if available == nil {
		available = func() bool { return true }
	}
	return &FuncProvider{name: name, maxComplexity: maxComplexity, available: available, complete: complete}
}

func (p *FuncProvider) Name() string         { return p.name }
func (p *FuncProvider) MaxComplexity() int   { return p.maxComplexity }
func (p *FuncProvider) IsAvailable() bool    { return p.available() }

func (p *FuncProvider) Complete(ctx context.Context, prompt string, opts contracts.LLMRequestOptions) (contracts.LLMResponse, error) {
	return p.complete(ctx, prompt, opts)
}
