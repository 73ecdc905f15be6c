package cost

import (
	"github.com/vfirsov/kernel/contracts"
)

// costCalculator implements contracts.CostCalculator using a ModelCatalog,
// feeding the LLM Router's per-response cost awareness.
type costCalculator struct {
	catalog contracts.ModelCatalog
}

// NewCostCalculator creates a CostCalculator with the default catalog.
func NewCostCalculator() contracts.CostCalculator {
	return &costCalculator{catalog: NewModelCatalog()}
}

// NewCostCalculatorWithCatalog creates a CostCalculator with a custom catalog.
func NewCostCalculatorWithCatalog(catalog contracts.ModelCatalog) contracts.CostCalculator {
	if catalog == nil {
		catalog = NewModelCatalog()
	}
	return &costCalculator{catalog: catalog}
}

// Estimate returns the estimated USD cost for the given tokens and model,
// using the model's average of input/output cost per 1M tokens.
func (c *costCalculator) Estimate(tokens contracts.TokenCount, model contracts.ModelID) (float64, error) {
	info, ok := c.catalog.Get(model)
	if !ok {
		return 0, contracts.ErrModelUnknown
	}
	return float64(tokens) * info.AverageCostPer1M() / 1_000_000, nil
}

// EstimateByRole estimates cost using the model assigned to a role.
func (c *costCalculator) EstimateByRole(tokens contracts.TokenCount, role contracts.ModelRole) (float64, error) {
	info, ok := c.catalog.GetByRole(role)
	if !ok {
		return 0, contracts.ErrModelUnknown
	}
	return float64(tokens) * info.AverageCostPer1M() / 1_000_000, nil
}
