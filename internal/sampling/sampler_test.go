package sampling

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/adamsbytes/rocinante-sub012/internal/random"
)

func newTestSampler(seed int64) *Sampler {
	return New(random.NewSeededSource(seed))
}

func TestGaussianBounded(t *testing.T) {
	s := newTestSampler(1)
	for i := 0; i < 10000; i++ {
		v := s.GaussianBounded(100, 50, 80, 120)
		require.GreaterOrEqual(t, v, 80.0)
		require.LessOrEqual(t, v, 120.0)
	}
}

func TestGaussianStatistics(t *testing.T) {
	s := newTestSampler(2)
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = s.Gaussian(200, 30)
	}
	mean, stdDev := stat.MeanStdDev(samples, nil)
	assert.InDelta(t, 200, mean, 2)
	assert.InDelta(t, 30, stdDev, 2)
}

func TestPoissonMean(t *testing.T) {
	for _, lambda := range []float64{1, 50, 500} {
		lambda := lambda
		t.Run(fmt.Sprintf("lambda=%g", lambda), func(t *testing.T) {
			s := newTestSampler(int64(lambda))
			sum := 0
			const n = 10000
			for i := 0; i < n; i++ {
				sum += s.Poisson(lambda)
			}
			mean := float64(sum) / n
			assert.InDelta(t, lambda, mean, lambda*0.05,
				"sample mean should sit within 5%% of lambda")
		})
	}
}

func TestPoissonBounded(t *testing.T) {
	s := newTestSampler(3)
	for i := 0; i < 1000; i++ {
		v := s.PoissonBounded(10, 8, 12)
		require.GreaterOrEqual(t, v, 8)
		require.LessOrEqual(t, v, 12)
	}
}

func TestUniform(t *testing.T) {
	s := newTestSampler(4)
	for i := 0; i < 10000; i++ {
		v := s.Uniform(5, 10)
		require.GreaterOrEqual(t, v, 5.0)
		require.Less(t, v, 10.0)
	}
}

func TestUniformInt(t *testing.T) {
	s := newTestSampler(5)

	t.Run("covers the closed interval", func(t *testing.T) {
		seen := make(map[int]bool)
		for i := 0; i < 1000; i++ {
			v := s.UniformInt(3, 6)
			require.GreaterOrEqual(t, v, 3)
			require.LessOrEqual(t, v, 6)
			seen[v] = true
		}
		assert.Len(t, seen, 4)
	})

	t.Run("degenerate range returns min", func(t *testing.T) {
		assert.Equal(t, 7, s.UniformInt(7, 7))
		assert.Equal(t, 9, s.UniformInt(9, 2))
	})
}

func TestExponentialMean(t *testing.T) {
	s := newTestSampler(6)
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = s.Exponential(0.01)
		require.GreaterOrEqual(t, samples[i], 0.0)
	}
	mean := stat.Mean(samples, nil)
	assert.InDelta(t, 100, mean, 5, "exponential mean should approach 1/lambda")
}

func TestExGaussianMean(t *testing.T) {
	s := newTestSampler(7)
	const mu, sigma, tau = 200.0, 30.0, 50.0
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = s.ExGaussian(mu, sigma, tau)
	}
	mean := stat.Mean(samples, nil)
	assert.InDelta(t, mu+tau, mean, (mu+tau)*0.10,
		"ex-Gaussian mean should approach mu+tau")
}

func TestLogNormalMedian(t *testing.T) {
	s := newTestSampler(8)
	const mu = 5.0 // median e^5 ~ 148.4
	above, below := 0, 0
	for i := 0; i < 10000; i++ {
		if s.LogNormal(mu, 0.4) > 148.41 {
			above++
		} else {
			below++
		}
	}
	// The median splits the draws roughly in half.
	assert.InDelta(t, above, below, 400)
}

func TestReactionTime(t *testing.T) {
	s := newTestSampler(9)
	min, max := 150*time.Millisecond, 600*time.Millisecond
	var total time.Duration
	const n = 1000
	for i := 0; i < n; i++ {
		v := s.ReactionTime(200*time.Millisecond, min, max)
		require.GreaterOrEqual(t, v, min)
		require.LessOrEqual(t, v, max)
		total += v
	}
	mean := total / n
	// Expected mean is about median + tau = 200 + 60 = 260ms.
	assert.Greater(t, mean, 220*time.Millisecond)
	assert.Less(t, mean, 320*time.Millisecond)
}

func TestHumanizedDelay(t *testing.T) {
	s := newTestSampler(10)
	min, max := 100*time.Millisecond, 5*time.Second
	for i := 0; i < 1000; i++ {
		v := s.HumanizedDelay(500*time.Millisecond, 0.4, min, max)
		require.GreaterOrEqual(t, v, min)
		require.LessOrEqual(t, v, max)
	}
}

func TestWeightedChoice(t *testing.T) {
	s := newTestSampler(11)

	t.Run("empty weights error", func(t *testing.T) {
		_, err := s.WeightedChoice(nil)
		assert.ErrorIs(t, err, ErrEmptyWeights)
		_, err = s.WeightedChoice([]float64{})
		assert.ErrorIs(t, err, ErrEmptyWeights)
	})

	t.Run("negative weight error", func(t *testing.T) {
		_, err := s.WeightedChoice([]float64{1, -0.5, 2})
		assert.ErrorIs(t, err, ErrNegativeWeight)
	})

	t.Run("all-zero weights degrade to uniform", func(t *testing.T) {
		counts := make([]int, 3)
		for i := 0; i < 3000; i++ {
			idx, err := s.WeightedChoice([]float64{0, 0, 0})
			require.NoError(t, err)
			counts[idx]++
		}
		for _, c := range counts {
			assert.InDelta(t, 1000, c, 200)
		}
	})

	t.Run("selection follows the weights", func(t *testing.T) {
		counts := make([]int, 3)
		for i := 0; i < 10000; i++ {
			idx, err := s.WeightedChoice([]float64{1, 3, 6})
			require.NoError(t, err)
			counts[idx]++
		}
		assert.InDelta(t, 1000, counts[0], 250)
		assert.InDelta(t, 3000, counts[1], 350)
		assert.InDelta(t, 6000, counts[2], 400)
	})

	t.Run("zero weight is never chosen", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			idx, err := s.WeightedChoice([]float64{0, 1, 0})
			require.NoError(t, err)
			assert.Equal(t, 1, idx)
		}
	})
}

func TestChance(t *testing.T) {
	s := newTestSampler(12)

	hits := 0
	for i := 0; i < 10000; i++ {
		if s.Chance(0.3) {
			hits++
		}
	}
	assert.InDelta(t, 3000, hits, 300)

	for i := 0; i < 100; i++ {
		assert.False(t, s.Chance(0))
		assert.True(t, s.Chance(1))
	}
}

func TestClampLerp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(3, 5, 10))
	assert.Equal(t, 10.0, Clamp(12, 5, 10))
	assert.Equal(t, 7.0, Clamp(7, 5, 10))

	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}
