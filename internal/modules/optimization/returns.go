package optimization

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StatsConfig holds statistics builder configuration.
type StatsConfig struct {
	// PeriodsPerYear scales per-step statistics to annual terms.
	// 252 for daily bars, 52 for weekly.
	PeriodsPerYear float64
}

// StatsBuilder converts an aligned price table into annualized return
// statistics: a mean log-return vector and a sample covariance matrix.
type StatsBuilder struct {
	cfg StatsConfig
	log zerolog.Logger
}

// NewStatsBuilder creates a new statistics builder.
func NewStatsBuilder(cfg StatsConfig, log zerolog.Logger) *StatsBuilder {
	return &StatsBuilder{
		cfg: cfg,
		log: log.With().Str("component", "stats_builder").Logger(),
	}
}

// Build derives ReturnStats from a price table with assets as columns and
// one row per trading day. All rows must have len(assets) entries.
//
// A constant-price asset yields a zero covariance row/column; that is a
// valid input here and is handled downstream by the scorer's zero-risk
// guard.
func (b *StatsBuilder) Build(assets []string, prices [][]float64) (*ReturnStats, error) {
	k := len(assets)
	t := len(prices)
	if t < 2 {
		return nil, &InsufficientDataError{Observations: t}
	}
	if k < 1 {
		return nil, &InvalidParameterError{Param: "assets", Reason: "empty asset universe"}
	}
	for row, pr := range prices {
		if len(pr) != k {
			return nil, &InvalidParameterError{Param: "prices", Reason: "row width does not match asset count"}
		}
		for col, p := range pr {
			if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
				return nil, &DegenerateAssetError{Asset: assets[col], Row: row, Price: p}
			}
		}
	}

	// (T-1) x K matrix of log returns, held column-wise for the
	// mean/covariance passes below.
	cols := make([][]float64, k)
	for j := 0; j < k; j++ {
		cols[j] = make([]float64, t-1)
	}
	for i := 1; i < t; i++ {
		for j := 0; j < k; j++ {
			cols[j][i-1] = math.Log(prices[i][j] / prices[i-1][j])
		}
	}

	mean := make([]float64, k)
	for j := 0; j < k; j++ {
		mean[j] = stat.Mean(cols[j], nil) * b.cfg.PeriodsPerYear
	}

	cov := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			cov.SetSym(i, j, stat.Covariance(cols[i], cols[j], nil)*b.cfg.PeriodsPerYear)
		}
	}

	b.log.Debug().
		Int("assets", k).
		Int("observations", t).
		Float64("periods_per_year", b.cfg.PeriodsPerYear).
		Msg("Built return statistics")

	return &ReturnStats{Assets: assets, Mean: mean, Cov: cov}, nil
}
