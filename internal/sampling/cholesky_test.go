package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reconstruct computes L·Lᵗ.
func reconstruct(l [][]float64) [][]float64 {
	n := len(l)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				out[i][j] += l[i][k] * l[j][k]
			}
		}
	}
	return out
}

func TestCholesky(t *testing.T) {
	t.Run("factors a known positive definite matrix", func(t *testing.T) {
		m := [][]float64{
			{4, 12, -16},
			{12, 37, -43},
			{-16, -43, 98},
		}
		expected := [][]float64{
			{2, 0, 0},
			{6, 1, 0},
			{-8, 5, 3},
		}
		l := Cholesky(m)
		for i := range expected {
			for j := range expected[i] {
				assert.InDelta(t, expected[i][j], l[i][j], 1e-9)
			}
		}
	})

	t.Run("round-trips a correlation matrix", func(t *testing.T) {
		m := [][]float64{
			{1.0, 0.5, 0.3},
			{0.5, 1.0, 0.2},
			{0.3, 0.2, 1.0},
		}
		back := reconstruct(Cholesky(m))
		for i := range m {
			for j := range m[i] {
				assert.InDelta(t, m[i][j], back[i][j], 1e-9)
			}
		}
	})

	t.Run("is lower triangular", func(t *testing.T) {
		l := Cholesky([][]float64{
			{1.0, 0.4},
			{0.4, 1.0},
		})
		assert.Equal(t, 0.0, l[0][1])
	})

	t.Run("tolerates a singular matrix without NaN", func(t *testing.T) {
		// Perfect correlation gives a rank-1 matrix.
		m := [][]float64{
			{1, 1},
			{1, 1},
		}
		l := Cholesky(m)
		for i := range l {
			for j := range l[i] {
				require.False(t, math.IsNaN(l[i][j]))
				require.False(t, math.IsInf(l[i][j], 0))
			}
		}
	})

	t.Run("tolerates a non positive definite matrix", func(t *testing.T) {
		m := [][]float64{
			{1.0, 0.99},
			{0.99, 0.5},
		}
		l := Cholesky(m)
		for i := range l {
			for j := range l[i] {
				require.False(t, math.IsNaN(l[i][j]))
			}
		}
	})
}
