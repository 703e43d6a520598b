package persona

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/adamsbytes/rocinante-sub012/internal/random"
	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

func TestNewTraits(t *testing.T) {
	sampler := sampling.New(random.NewSeededSource(1))

	t.Run("traits stay inside their bounds", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			traits, err := NewTraits(sampler, 0.1, nil)
			require.NoError(t, err)

			values := []float64{
				traits.PointerSpeed, traits.Precision, traits.ReactionScale,
				traits.TremorAmplitude, traits.JitterAmplitude,
			}
			for d, v := range values {
				require.GreaterOrEqual(t, v, traitMins[d])
				require.LessOrEqual(t, v, traitMaxs[d])
			}
		}
	})

	t.Run("speed and precision correlate across sessions", func(t *testing.T) {
		const n = 3000
		speeds := make([]float64, n)
		precisions := make([]float64, n)
		for i := 0; i < n; i++ {
			traits, err := NewTraits(sampler, 0.05, nil)
			require.NoError(t, err)
			speeds[i] = traits.PointerSpeed
			precisions[i] = traits.Precision
		}
		r := stat.Correlation(speeds, precisions, nil)
		// Base coupling is 0.45; clamping and perturbation erode it but the
		// sign and a meaningful magnitude must survive.
		assert.Greater(t, r, 0.2)
	})

	t.Run("high perturbation noise still yields valid traits", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			_, err := NewTraits(sampler, 0.3, nil)
			require.NoError(t, err)
		}
	})
}

func TestBaseCorrelationShape(t *testing.T) {
	m := baseCorrelation()
	require.Len(t, m, len(traitMeans))
	for i := range m {
		require.Len(t, m[i], len(traitMeans))
		assert.Equal(t, 1.0, m[i][i])
		for j := range m[i] {
			assert.Equal(t, m[i][j], m[j][i], "base matrix must be symmetric")
			if i != j {
				assert.Less(t, m[i][j], 0.95)
				assert.Greater(t, m[i][j], -0.95)
			}
		}
	}
}

func TestFatigue(t *testing.T) {
	t.Run("starts rested", func(t *testing.T) {
		f := NewFatigue()
		assert.Equal(t, 0.0, f.Level())
		assert.Equal(t, 1.0, f.SigmaMultiplier())
		assert.Equal(t, 1.0, f.TauMultiplier())
	})

	t.Run("activity accrues and rest recovers", func(t *testing.T) {
		f := NewFatigue()
		f.RecordActivity(30 * time.Minute)
		level := f.Level()
		assert.InDelta(t, 0.3, level, 1e-9)

		f.RecordRest(5 * time.Minute)
		assert.Less(t, f.Level(), level)
	})

	t.Run("level clamps to [0,1]", func(t *testing.T) {
		f := NewFatigue()
		f.RecordActivity(10 * time.Hour)
		assert.Equal(t, 1.0, f.Level())

		f.RecordRest(10 * time.Hour)
		assert.Equal(t, 0.0, f.Level())
	})

	t.Run("multipliers grow with fatigue", func(t *testing.T) {
		f := NewFatigue()
		f.RecordActivity(10 * time.Hour)
		assert.InDelta(t, 1.0+sigmaGain, f.SigmaMultiplier(), 1e-9)
		assert.InDelta(t, 1.0+tauGain, f.TauMultiplier(), 1e-9)
	})
}
