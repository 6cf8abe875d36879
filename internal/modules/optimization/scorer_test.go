package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func twoAssetStats() *ReturnStats {
	cov := mat.NewSymDense(2, nil)
	cov.SetSym(0, 0, 0.04)
	cov.SetSym(0, 1, 0.01)
	cov.SetSym(1, 1, 0.09)
	return &ReturnStats{
		Assets: []string{"AAA", "BBB"},
		Mean:   []float64{0.10, 0.20},
		Cov:    cov,
	}
}

func TestScoreHandComputed(t *testing.T) {
	stats := twoAssetStats()
	var scratch mat.VecDense

	result := Score([]float64{0.5, 0.5}, stats, 0.02, &scratch)

	// 0.5*0.10 + 0.5*0.20
	assert.InDelta(t, 0.15, result.Return, 1e-12)
	// 0.25*0.04 + 2*0.25*0.01 + 0.25*0.09 = 0.0375
	assert.InDelta(t, math.Sqrt(0.0375), result.Risk, 1e-12)
	assert.InDelta(t, (0.15-0.02)/math.Sqrt(0.0375), result.Sharpe, 1e-12)
	assert.Equal(t, []float64{0.5, 0.5}, result.Weights)
}

func TestScoreZeroRisk(t *testing.T) {
	cov := mat.NewSymDense(2, nil)
	stats := &ReturnStats{
		Assets: []string{"AAA", "BBB"},
		Mean:   []float64{0.10, 0.20},
		Cov:    cov,
	}
	var scratch mat.VecDense

	result := Score([]float64{0.5, 0.5}, stats, 0.02, &scratch)

	// Zero variance must not produce an infinite ratio.
	assert.Zero(t, result.Risk)
	assert.Zero(t, result.Sharpe)
	assert.False(t, math.IsInf(result.Sharpe, 0))
}

func TestScoreCornerAllocation(t *testing.T) {
	stats := twoAssetStats()
	var scratch mat.VecDense

	result := Score([]float64{1, 0}, stats, 0.0, &scratch)

	assert.InDelta(t, 0.10, result.Return, 1e-12)
	assert.InDelta(t, 0.2, result.Risk, 1e-12)
	assert.InDelta(t, 0.5, result.Sharpe, 1e-12)
}
