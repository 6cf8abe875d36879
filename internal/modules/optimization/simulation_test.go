package optimization

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testSimulator(min, max int) *Simulator {
	return NewSimulator(SimulatorConfig{MinTrials: min, MaxTrials: max}, zerolog.Nop())
}

func TestSimulatorTrialBounds(t *testing.T) {
	sim := testSimulator(1000, 20000)
	stats := twoAssetStats()

	tests := []struct {
		name   string
		trials int
		ok     bool
	}{
		{"below min", 999, false},
		{"at min", 1000, true},
		{"at max", 20000, true},
		{"above max", 20001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			population, _, err := sim.Run(stats, 0.02, tt.trials, rand.New(rand.NewSource(7)))
			if tt.ok {
				require.NoError(t, err)
				assert.Len(t, population, tt.trials)
				return
			}
			require.Error(t, err)
			var outOfRange *OutOfRangeError
			require.ErrorAs(t, err, &outOfRange)
			assert.Equal(t, "num_port", outOfRange.Param)
			assert.True(t, IsInputError(err))
			assert.Nil(t, population)
		})
	}
}

func TestSimulatorSelectionIsOptimal(t *testing.T) {
	sim := testSimulator(10, 20000)
	stats := twoAssetStats()

	population, sel, err := sim.Run(stats, 0.02, 2000, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, population, 2000)

	for i, p := range population {
		assert.LessOrEqual(t, p.Sharpe, population[sel.MaxSharpe].Sharpe, "trial %d beats max-Sharpe pick", i)
		assert.GreaterOrEqual(t, p.Risk, population[sel.MinVariance].Risk, "trial %d beats min-variance pick", i)
	}
}

func TestSimulatorReproducible(t *testing.T) {
	sim := testSimulator(10, 20000)
	stats := twoAssetStats()

	popA, selA, err := sim.Run(stats, 0.02, 500, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	popB, selB, err := sim.Run(stats, 0.02, 500, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// Same seed, bit-identical output.
	assert.Equal(t, popA, popB)
	assert.Equal(t, selA, selB)

	popC, _, err := sim.Run(stats, 0.02, 500, rand.New(rand.NewSource(43)))
	require.NoError(t, err)
	assert.NotEqual(t, popA, popC)
}

func TestSimulatorFavorsBetterAsset(t *testing.T) {
	sim := testSimulator(10, 20000)
	stats := twoAssetStats()

	// The second asset has double the return for a modest extra variance;
	// the tangency portfolio overweights it.
	population, sel, err := sim.Run(stats, 0.02, 5000, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	best := population[sel.MaxSharpe]
	assert.Greater(t, best.Weights[1], best.Weights[0])
}

func TestSimulatorConstantAssetStaysFinite(t *testing.T) {
	sim := testSimulator(10, 20000)

	// One zero-variance asset pulls the min-variance pick toward zero
	// risk; its Sharpe must stay finite.
	prices := [][]float64{
		{10, 100},
		{10, 108},
		{10, 103},
		{10, 110},
	}
	stats, err := testStatsBuilder(252).Build([]string{"FLAT", "MOVE"}, prices)
	require.NoError(t, err)

	population, sel, err := sim.Run(stats, 0.02, 1000, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	minVar := population[sel.MinVariance]
	assert.False(t, math.IsNaN(minVar.Sharpe))
	assert.False(t, math.IsInf(minVar.Sharpe, 0))
	assert.GreaterOrEqual(t, minVar.Risk, 0.0)
}

func TestSimulatorDegenerateUniverse(t *testing.T) {
	sim := testSimulator(10, 20000)
	cov := mat.NewSymDense(2, nil)
	stats := &ReturnStats{
		Assets: []string{"AAA", "BBB"},
		Mean:   []float64{0, 0},
		Cov:    cov,
	}

	population, sel, err := sim.Run(stats, 0.02, 100, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// All trials tie at zero risk and zero Sharpe; the first occurrence wins.
	assert.Equal(t, 0, sel.MaxSharpe)
	assert.Equal(t, 0, sel.MinVariance)
	for _, p := range population {
		assert.Zero(t, p.Risk)
		assert.Zero(t, p.Sharpe)
	}
}
