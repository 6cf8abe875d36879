package optimization

import "math/rand"

// WeightSampler draws random fully-invested long-only allocations: K
// uniforms normalized by their sum, so every vector is non-negative and
// sums to 1. Normalizing uniforms is not a uniform distribution over the
// simplex in the measure-theoretic sense; it is the usual approximation
// for frontier exploration and is kept deliberately.
//
// The sampler is a finite, non-restartable sequence: every Next call
// advances the injected randomness source.
type WeightSampler struct {
	assets    int
	remaining int
	rng       *rand.Rand
}

// NewWeightSampler creates a sampler producing trials weight vectors over
// an assets-sized universe. The rand source is injected so callers control
// seeding and reproducibility.
func NewWeightSampler(assets, trials int, rng *rand.Rand) (*WeightSampler, error) {
	if assets < 2 {
		return nil, &InvalidParameterError{Param: "assets", Reason: "need at least 2 assets"}
	}
	if trials < 1 {
		return nil, &InvalidParameterError{Param: "trials", Reason: "need at least 1 trial"}
	}
	if rng == nil {
		return nil, &InvalidParameterError{Param: "rng", Reason: "randomness source is required"}
	}
	return &WeightSampler{assets: assets, remaining: trials, rng: rng}, nil
}

// Next fills dst (len == assets) with the next weight vector and reports
// whether one was produced. It returns false once the sequence is
// exhausted.
func (s *WeightSampler) Next(dst []float64) bool {
	if s.remaining <= 0 {
		return false
	}
	s.remaining--

	for {
		sum := 0.0
		for i := range dst {
			dst[i] = s.rng.Float64()
			sum += dst[i]
		}
		if sum == 0 {
			// All-zero draw; redraw rather than divide by zero.
			continue
		}
		for i := range dst {
			dst[i] /= sum
		}
		return true
	}
}
