package optimization

import "gonum.org/v1/gonum/mat"

// ReturnStats holds the annualized per-asset return statistics derived from
// a price table. Mean and Cov are ordered by Assets. Instances are built
// once per optimization request and never mutated afterwards.
type ReturnStats struct {
	Assets []string
	Mean   []float64     // annualized mean log-returns
	Cov    *mat.SymDense // annualized covariance matrix
}

// NumAssets returns the size of the asset universe.
func (rs *ReturnStats) NumAssets() int {
	return len(rs.Assets)
}

// PortfolioResult is one scored allocation.
type PortfolioResult struct {
	Return  float64   `json:"return"`
	Risk    float64   `json:"risk"`
	Sharpe  float64   `json:"sharpe_ratio"`
	Weights []float64 `json:"weights"`
}

// Population is the full set of scored allocations, in generation order.
type Population []PortfolioResult

// OptimalSelection indexes the two distinguished portfolios within a
// Population. Indices rather than copies: the selection is a view until the
// presentation boundary assembles a Summary.
type OptimalSelection struct {
	MaxSharpe   int `json:"max_sharpe"`
	MinVariance int `json:"min_variance"`
}

// Summary packages one simulation run for the presentation boundary.
// Values are copied references from the Population, never re-derived or
// rounded; display rounding belongs to the templates.
type Summary struct {
	RunID        string          `json:"run_id"`
	Assets       []string        `json:"assets"`
	RiskFreeRate float64         `json:"risk_free_rate"`
	Trials       int             `json:"trials"`
	Seed         int64           `json:"seed"`
	MaxSharpe    PortfolioResult `json:"max_sharpe"`
	MinVariance  PortfolioResult `json:"min_variance"`
	Population   Population      `json:"population"`
}
