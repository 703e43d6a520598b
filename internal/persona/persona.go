// Package persona fixes the per-session behavioral parameters: a correlated
// trait vector drawn once at startup, and a fatigue level that drifts over
// the session. Everything downstream (timing variance, click precision,
// path jitter) reads from here instead of hardcoding population means.
package persona

import (
	"go.uber.org/zap"

	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

// Traits is the fixed session persona. Each field is a multiplier or pixel
// amplitude consumed by one downstream component.
type Traits struct {
	// PointerSpeed scales movement pacing; 1.0 is the population mean.
	PointerSpeed float64
	// Precision scales the click-point spread; below 1.0 is tighter.
	Precision float64
	// ReactionScale multiplies sampled reaction delays.
	ReactionScale float64
	// TremorAmplitude is the high-frequency Gaussian tremor in pixels.
	TremorAmplitude float64
	// JitterAmplitude is the Perlin path jitter amplitude in pixels.
	JitterAmplitude float64
}

var (
	traitMeans   = []float64{1.0, 1.0, 1.0, 0.5, 2.5}
	traitStdDevs = []float64{0.15, 0.20, 0.12, 0.10, 0.50}
	traitMins    = []float64{0.6, 0.5, 0.7, 0.1, 0.5}
	traitMaxs    = []float64{1.5, 1.8, 1.4, 1.2, 5.0}
)

// baseCorrelation ties the traits together the way human sub-populations do:
// faster pointers come with looser precision and quicker reactions, and both
// noise amplitudes rise together. Magnitudes sit in the r=0.3-0.6 band seen
// in motor-control studies, never near 1.
func baseCorrelation() [][]float64 {
	return [][]float64{
		{1.00, 0.45, -0.40, 0.20, 0.25},
		{0.45, 1.00, -0.25, 0.50, 0.40},
		{-0.40, -0.25, 1.00, 0.10, 0.05},
		{0.20, 0.50, 0.10, 1.00, 0.35},
		{0.25, 0.40, 0.05, 0.35, 1.00},
	}
}

// NewTraits draws a session persona. The base correlation matrix is perturbed
// per instance (noiseStdDev around 0.10) before sampling, so no two sessions
// share the exact trait coupling either.
func NewTraits(sampler *sampling.Sampler, noiseStdDev float64, logger *zap.Logger) (Traits, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	correlation := sampler.PerturbCorrelationMatrix(baseCorrelation(), noiseStdDev)

	values, err := sampler.MultivariateNormalBounded(
		traitMeans, traitStdDevs, correlation, traitMins, traitMaxs)
	if err != nil {
		return Traits{}, err
	}

	t := Traits{
		PointerSpeed:    values[0],
		Precision:       values[1],
		ReactionScale:   values[2],
		TremorAmplitude: values[3],
		JitterAmplitude: values[4],
	}
	logger.Info("session persona fixed",
		zap.Float64("pointer_speed", t.PointerSpeed),
		zap.Float64("precision", t.Precision),
		zap.Float64("reaction_scale", t.ReactionScale),
		zap.Float64("tremor_amplitude", t.TremorAmplitude),
		zap.Float64("jitter_amplitude", t.JitterAmplitude))
	return t, nil
}
