package charts

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfolio/frontier/internal/modules/optimization"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func testSummary() *optimization.Summary {
	population := optimization.Population{
		{Return: 0.12, Risk: 0.18, Sharpe: 0.55, Weights: []float64{0.6, 0.4}},
		{Return: 0.15, Risk: 0.20, Sharpe: 0.65, Weights: []float64{0.4, 0.6}},
		{Return: 0.10, Risk: 0.15, Sharpe: 0.53, Weights: []float64{0.7, 0.3}},
	}
	return &optimization.Summary{
		RunID:        "run-1",
		Assets:       []string{"REE", "FMC"},
		RiskFreeRate: 0.02,
		Trials:       3,
		Seed:         42,
		MaxSharpe:    population[1],
		MinVariance:  population[2],
		Population:   population,
	}
}

func TestFrontierPNG(t *testing.T) {
	svc := NewService(zerolog.Nop())

	img, err := svc.FrontierPNG(testSummary())
	require.NoError(t, err)
	require.NotEmpty(t, img)
	assert.Equal(t, pngMagic, img[:4])
}

func TestFrontierPNGEmptyPopulation(t *testing.T) {
	svc := NewService(zerolog.Nop())
	summary := testSummary()
	summary.Population = nil

	_, err := svc.FrontierPNG(summary)
	assert.Error(t, err)
}

func TestFrontierPNGCached(t *testing.T) {
	svc := NewService(zerolog.Nop())
	summary := testSummary()

	first, err := svc.FrontierPNG(summary)
	require.NoError(t, err)
	second, err := svc.FrontierPNG(summary)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAllocationPiePNG(t *testing.T) {
	svc := NewService(zerolog.Nop())
	summary := testSummary()

	img, err := svc.AllocationPiePNG(summary, summary.MaxSharpe, "Max Sharpe Ratio Allocation")
	require.NoError(t, err)
	require.NotEmpty(t, img)
	assert.Equal(t, pngMagic, img[:4])
}

func TestAllocationPiePNGWeightMismatch(t *testing.T) {
	svc := NewService(zerolog.Nop())
	summary := testSummary()

	_, err := svc.AllocationPiePNG(summary, optimization.PortfolioResult{Weights: []float64{1}}, "Broken")
	assert.Error(t, err)
}
