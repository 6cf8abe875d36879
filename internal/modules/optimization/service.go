package optimization

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request describes one optimization run.
type Request struct {
	RiskFreeRate float64 `json:"risk_free_rate"`
	Trials       int     `json:"num_port"`
	Seed         int64   `json:"seed"`
}

// Service orchestrates one request-scoped simulation run: load the price
// table, build statistics, run the Monte Carlo driver, assemble the
// summary. Every run gets its own randomness source seeded from the
// request, so concurrent requests share no mutable state and identical
// requests produce bit-identical populations.
type Service struct {
	data  DatasetProvider
	stats *StatsBuilder
	sim   *Simulator
	log   zerolog.Logger
}

// NewService creates a new optimization service.
func NewService(data DatasetProvider, stats *StatsBuilder, sim *Simulator, log zerolog.Logger) *Service {
	return &Service{
		data:  data,
		stats: stats,
		sim:   sim,
		log:   log.With().Str("component", "optimization").Logger(),
	}
}

// Optimize runs one full simulation and returns its summary. Dataset and
// parameter errors propagate unwrapped in the chain so the HTTP boundary
// can classify them with IsDataError / IsInputError; the engine performs
// no local recovery (retrying with fresh random draws would only mask a
// real data problem).
func (s *Service) Optimize(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()

	assets, prices, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	stats, err := s.stats.Build(assets, prices)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(req.Seed))
	population, sel, err := s.sim.Run(stats, req.RiskFreeRate, req.Trials, rng)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:        uuid.NewString(),
		Assets:       assets,
		RiskFreeRate: req.RiskFreeRate,
		Trials:       req.Trials,
		Seed:         req.Seed,
		MaxSharpe:    population[sel.MaxSharpe],
		MinVariance:  population[sel.MinVariance],
		Population:   population,
	}

	elapsed := time.Since(start)
	perTrial := 0.0
	if req.Trials > 0 {
		perTrial = float64(elapsed.Microseconds()) / float64(req.Trials)
	}
	s.log.Info().
		Str("run_id", summary.RunID).
		Int("assets", len(assets)).
		Int("trials", req.Trials).
		Float64("risk_free_rate", req.RiskFreeRate).
		Int64("seed", req.Seed).
		Dur("elapsed", elapsed).
		Float64("us_per_trial", perTrial).
		Msg("Simulation completed")

	return summary, nil
}
