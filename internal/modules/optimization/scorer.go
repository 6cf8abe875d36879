package optimization

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Score evaluates a single allocation against the return statistics:
//
//	return = w · μ
//	risk   = sqrt(wᵗ Σ w)
//	sharpe = (return − riskFree) / risk
//
// It is a pure function of its inputs. A zero-risk allocation (possible
// when the covariance matrix has zero rows from constant-price assets)
// gets sharpe 0 instead of ±Inf, so degenerate draws cannot win the
// max-Sharpe selection. The weights slice is stored in the result, not
// copied; callers must hand over ownership.
func Score(weights []float64, stats *ReturnStats, riskFree float64, scratch *mat.VecDense) PortfolioResult {
	k := len(weights)
	w := mat.NewVecDense(k, weights)

	ret := floats.Dot(weights, stats.Mean)

	// wᵗΣw via one mat-vec product, keeping the trial loop at O(K²).
	scratch.MulVec(stats.Cov, w)
	variance := mat.Dot(w, scratch)
	if variance < 0 {
		// Floating-point noise on a PSD matrix; clamp.
		variance = 0
	}
	risk := math.Sqrt(variance)

	sharpe := 0.0
	if risk > 0 {
		sharpe = (ret - riskFree) / risk
	}

	return PortfolioResult{
		Return:  ret,
		Risk:    risk,
		Sharpe:  sharpe,
		Weights: weights,
	}
}
