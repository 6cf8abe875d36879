package optimization

import (
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// SimulatorConfig holds simulation driver configuration.
type SimulatorConfig struct {
	MinTrials int
	MaxTrials int
}

// Simulator runs the Monte Carlo loop: sample a weight vector, score it,
// collect the population, then pick the max-Sharpe and min-variance
// entries in a single scan.
type Simulator struct {
	cfg SimulatorConfig
	log zerolog.Logger
}

// NewSimulator creates a new simulation driver.
func NewSimulator(cfg SimulatorConfig, log zerolog.Logger) *Simulator {
	return &Simulator{
		cfg: cfg,
		log: log.With().Str("component", "simulator").Logger(),
	}
}

// Run executes trials simulation trials against stats. The trial count is
// validated against the configured bounds before any work happens, so a
// rejected request never produces partial results. Ties in the selection
// scan are broken by first occurrence.
func (s *Simulator) Run(stats *ReturnStats, riskFree float64, trials int, rng *rand.Rand) (Population, OptimalSelection, error) {
	if trials < s.cfg.MinTrials || trials > s.cfg.MaxTrials {
		return nil, OptimalSelection{}, &OutOfRangeError{
			Param: "num_port",
			Value: trials,
			Min:   s.cfg.MinTrials,
			Max:   s.cfg.MaxTrials,
		}
	}

	k := stats.NumAssets()
	sampler, err := NewWeightSampler(k, trials, rng)
	if err != nil {
		return nil, OptimalSelection{}, err
	}

	population := make(Population, 0, trials)
	var scratch mat.VecDense
	sel := OptimalSelection{}

	// The sampler is constructed for exactly trials draws, so its
	// exhaustion is the loop bound. Each trial owns a fresh weights
	// slice because Score stores it without copying.
	for {
		weights := make([]float64, k)
		if !sampler.Next(weights) {
			break
		}
		result := Score(weights, stats, riskFree, &scratch)
		population = append(population, result)

		i := len(population) - 1
		if result.Sharpe > population[sel.MaxSharpe].Sharpe {
			sel.MaxSharpe = i
		}
		if result.Risk < population[sel.MinVariance].Risk {
			sel.MinVariance = i
		}
	}

	return population, sel, nil
}
