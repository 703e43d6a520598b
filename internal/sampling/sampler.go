// Package sampling implements the statistical primitives behind every
// humanized delay and click position: scalar distributions tuned for human
// motor timing, plus correlated multivariate trait sampling.
package sampling

import (
	"errors"
	"math"
	"time"

	"github.com/adamsbytes/rocinante-sub012/internal/random"
)

var (
	// ErrEmptyWeights is returned by WeightedChoice for a nil or empty slice.
	ErrEmptyWeights = errors.New("sampling: weights must be non-empty")
	// ErrNegativeWeight is returned by WeightedChoice when any weight is < 0.
	ErrNegativeWeight = errors.New("sampling: weights must be non-negative")
	// ErrDimensionMismatch is returned by the multivariate samplers when the
	// parameter slices do not share a common length.
	ErrDimensionMismatch = errors.New("sampling: parameter dimensions must match")
)

// Sampler draws from the distributions used across the engine. It is stateless
// apart from the injected source, so one instance may be shared by any number
// of goroutines as long as the source is concurrency-safe.
type Sampler struct {
	src random.Source
}

// New returns a Sampler drawing from src.
func New(src random.Source) *Sampler {
	return &Sampler{src: src}
}

// Source exposes the underlying random source for components that need raw
// deviates (e.g. the resolver's rotation jitter).
func (s *Sampler) Source() random.Source {
	return s.src
}

// Gaussian returns a draw from N(mean, stdDev²).
func (s *Sampler) Gaussian(mean, stdDev float64) float64 {
	return mean + s.src.NormFloat64()*stdDev
}

// GaussianBounded samples N(mean, stdDev²) and clamps the result to [min, max].
func (s *Sampler) GaussianBounded(mean, stdDev, min, max float64) float64 {
	return Clamp(s.Gaussian(mean, stdDev), min, max)
}

// GaussianInt rounds a Gaussian draw to the nearest integer.
func (s *Sampler) GaussianInt(mean, stdDev float64) int {
	return int(math.Round(s.Gaussian(mean, stdDev)))
}

// Poisson draws from Poisson(lambda) with Knuth's algorithm: multiply uniform
// deviates until the running product drops below e^-lambda. Exact for the
// small-to-moderate lambdas the timing profiles use.
func (s *Sampler) Poisson(lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= s.src.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// PoissonBounded clamps a Poisson draw to [min, max].
func (s *Sampler) PoissonBounded(lambda float64, min, max int) int {
	v := s.Poisson(lambda)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Uniform returns a uniform deviate in the half-open interval [min, max).
func (s *Sampler) Uniform(min, max float64) float64 {
	return min + s.src.Float64()*(max-min)
}

// UniformInt returns a uniform integer in the closed interval [min, max].
// Degenerate ranges (min >= max) return min.
func (s *Sampler) UniformInt(min, max int) int {
	if min >= max {
		return min
	}
	return min + s.src.IntN(max-min+1)
}

// Exponential draws from Exponential(lambda) by inverse transform. The 1-U
// form keeps the argument of the logarithm strictly positive.
func (s *Sampler) Exponential(lambda float64) float64 {
	return -math.Log(1-s.src.Float64()) / lambda
}

// ExponentialBounded clamps an exponential draw to [min, max].
func (s *Sampler) ExponentialBounded(lambda, min, max float64) float64 {
	return Clamp(s.Exponential(lambda), min, max)
}

// ExGaussian draws from the exponentially modified Gaussian: the Gaussian core
// models fast reactions clustered around mu, the exponential term the
// occasional attention-lapse tail. The sample mean approaches mu + tau.
func (s *Sampler) ExGaussian(mu, sigma, tau float64) float64 {
	gaussian := s.Gaussian(mu, sigma)
	exponential := -tau * math.Log(1-s.src.Float64())
	return gaussian + exponential
}

// ExGaussianBounded clamps an ex-Gaussian draw to [min, max].
func (s *Sampler) ExGaussianBounded(mu, sigma, tau, min, max float64) float64 {
	return Clamp(s.ExGaussian(mu, sigma, tau), min, max)
}

// LogNormal draws from LogNormal(mu, sigma); the median is e^mu.
func (s *Sampler) LogNormal(mu, sigma float64) float64 {
	return math.Exp(s.Gaussian(mu, sigma))
}

// LogNormalBounded clamps a log-normal draw to [min, max].
func (s *Sampler) LogNormalBounded(mu, sigma, min, max float64) float64 {
	return Clamp(s.LogNormal(mu, sigma), min, max)
}

// ReactionTime produces a human-like reaction delay around the given median.
// Sigma and tau are tuned from reaction-time literature: 20% of the median for
// core consistency, 30% for the slow-reaction tail.
func (s *Sampler) ReactionTime(median, min, max time.Duration) time.Duration {
	m := float64(median.Milliseconds())
	v := s.ExGaussianBounded(m, m*0.20, m*0.30,
		float64(min.Milliseconds()), float64(max.Milliseconds()))
	return time.Duration(math.Round(v)) * time.Millisecond
}

// HumanizedDelay produces an inter-action interval around the given median
// using a log-normal distribution. Spread controls tail heaviness; 0.4 is a
// moderate default that keeps most draws near the median with occasional
// much longer hiccups.
func (s *Sampler) HumanizedDelay(median time.Duration, spread float64, min, max time.Duration) time.Duration {
	mu := math.Log(float64(median.Milliseconds()))
	v := s.LogNormalBounded(mu, spread,
		float64(min.Milliseconds()), float64(max.Milliseconds()))
	return time.Duration(math.Round(v)) * time.Millisecond
}

// WeightedChoice selects an index with probability proportional to its weight.
// Weights need not sum to one. If every weight is zero the choice degrades to
// a uniform index.
func (s *Sampler) WeightedChoice(weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyWeights
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, ErrNegativeWeight
		}
		total += w
	}
	if total <= 0 {
		return s.src.IntN(len(weights)), nil
	}
	target := s.src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i, nil
		}
	}
	// Floating-point underflow in the cumulative sum; the last index is the
	// only one left.
	return len(weights) - 1, nil
}

// Chance reports whether an event with probability p occurs.
func (s *Sampler) Chance(p float64) bool {
	return s.src.Float64() < p
}

// Gaussian2D draws an independent bivariate Gaussian point around a center.
func (s *Sampler) Gaussian2D(centerX, centerY, sigmaX, sigmaY float64) (float64, float64) {
	return s.Gaussian(centerX, sigmaX), s.Gaussian(centerY, sigmaY)
}

// Clamp restricts v to [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
