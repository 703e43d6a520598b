package sampling

import "math"

// choleskyEpsilon replaces non-positive diagonal terms that show up when the
// input matrix is near-singular.
const choleskyEpsilon = 1e-10

// Cholesky factors a symmetric positive semi-definite matrix into its lower
// triangular factor L with L·Lᵗ = m, using the Cholesky-Banachiewicz scheme.
// Mildly ill-conditioned correlation matrices are tolerated rather than
// rejected: a non-positive computed diagonal is substituted with a small
// epsilon, and entries that would divide by a near-zero pivot become zero.
func Cholesky(m [][]float64) [][]float64 {
	l, _ := cholesky(m)
	return l
}

// cholesky additionally reports whether the factorization succeeded without
// any epsilon substitution. PerturbCorrelationMatrix uses the strict signal to
// drive its regularization loop.
func cholesky(m [][]float64) ([][]float64, bool) {
	n := len(m)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	exact := true

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for k := 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if i == j {
				diag := m[i][i] - sum
				if diag <= 0 {
					diag = choleskyEpsilon
					exact = false
				}
				l[i][j] = math.Sqrt(diag)
			} else {
				if l[j][j] < choleskyEpsilon {
					l[i][j] = 0
				} else {
					l[i][j] = (m[i][j] - sum) / l[j][j]
				}
			}
		}
	}
	return l, exact
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
