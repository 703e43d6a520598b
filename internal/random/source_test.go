package random

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoSource(t *testing.T) {
	src := NewCryptoSource()

	t.Run("Float64 stays in the half-open unit interval", func(t *testing.T) {
		for i := 0; i < 10000; i++ {
			v := src.Float64()
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	})

	t.Run("IntN stays in range and covers small domains", func(t *testing.T) {
		seen := make(map[int]bool)
		for i := 0; i < 1000; i++ {
			v := src.IntN(4)
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, 4)
			seen[v] = true
		}
		assert.Len(t, seen, 4, "1000 draws should hit every value of a 4-wide domain")
	})

	t.Run("NormFloat64 produces finite values with a sane spread", func(t *testing.T) {
		var sum, sumSq float64
		const n = 10000
		for i := 0; i < n; i++ {
			v := src.NormFloat64()
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			sum += v
			sumSq += v * v
		}
		mean := sum / n
		variance := sumSq/n - mean*mean
		assert.InDelta(t, 0.0, mean, 0.1)
		assert.InDelta(t, 1.0, variance, 0.15)
	})

	t.Run("safe under concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					_ = src.Float64()
					_ = src.IntN(100)
					_ = src.NormFloat64()
				}
			}()
		}
		wg.Wait()
	})
}

func TestSeededSource(t *testing.T) {
	t.Run("identical seeds replay the same stream", func(t *testing.T) {
		a := NewSeededSource(42)
		b := NewSeededSource(42)
		for i := 0; i < 100; i++ {
			assert.Equal(t, a.Float64(), b.Float64())
			assert.Equal(t, a.IntN(1000), b.IntN(1000))
			assert.Equal(t, a.NormFloat64(), b.NormFloat64())
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := NewSeededSource(1)
		b := NewSeededSource(2)
		same := 0
		for i := 0; i < 100; i++ {
			if a.Float64() == b.Float64() {
				same++
			}
		}
		assert.Less(t, same, 5)
	})
}
