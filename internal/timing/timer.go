package timing

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

// FatigueProvider scales the variance and tail of sampled delays as a session
// wears on. Absent a fatigue model both multipliers are 1.0.
type FatigueProvider interface {
	SigmaMultiplier() float64
	TauMultiplier() float64
}

// restedFatigue is the neutral provider used when none is supplied.
type restedFatigue struct{}

func (restedFatigue) SigmaMultiplier() float64 { return 1.0 }
func (restedFatigue) TauMultiplier() float64   { return 1.0 }

// Timer samples concrete delays from the profile table.
type Timer struct {
	sampler *sampling.Sampler
	fatigue FatigueProvider
	logger  *zap.Logger
}

// NewTimer builds a Timer. fatigue may be nil; logger may be nil for a no-op.
func NewTimer(sampler *sampling.Sampler, fatigue FatigueProvider, logger *zap.Logger) *Timer {
	if fatigue == nil {
		fatigue = restedFatigue{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{sampler: sampler, fatigue: fatigue, logger: logger}
}

// Delay samples a delay from the profile's distribution. Sigma and tau are
// pre-scaled by the fatigue multipliers before sampling. Negative draws are
// floored at zero before the optional [min, max] clamp is applied, so a
// profile with a positive minimum still lands on its minimum rather than on
// zero. (Flooring after the clamp would instead pile probability mass at 0
// for unbounded profiles — the floor-then-clamp order is deliberate.)
func (t *Timer) Delay(p Profile) time.Duration {
	sigma := p.StdDev * t.fatigue.SigmaMultiplier()

	var ms float64
	switch p.Distribution {
	case ExGaussian:
		tau := p.Tau * t.fatigue.TauMultiplier()
		ms = t.sampler.ExGaussian(p.Mean, sigma, tau)
	default:
		ms = t.sampler.Gaussian(p.Mean, sigma)
	}

	ms = math.Max(0, ms)
	ms = sampling.Clamp(ms, p.minOrZero(), p.maxOrInf())

	d := time.Duration(math.Round(ms)) * time.Millisecond
	t.logger.Debug("sampled delay",
		zap.String("profile", p.Name),
		zap.Duration("delay", d))
	return d
}

// DialogueDelay samples a reading delay scaled by word count: the dialogue
// profile's base mean plus PerWordMs for each word, Gaussian-sampled with the
// profile's (fatigue-scaled) sigma. Negative word counts count as zero.
func (t *Timer) DialogueDelay(wordCount int) time.Duration {
	if wordCount < 0 {
		wordCount = 0
	}
	p := DialogueRead
	mean := p.Mean + p.PerWordMs*float64(wordCount)
	sigma := p.StdDev * t.fatigue.SigmaMultiplier()

	ms := math.Max(0, t.sampler.Gaussian(mean, sigma))
	d := time.Duration(math.Round(ms)) * time.Millisecond
	t.logger.Debug("sampled dialogue delay",
		zap.Int("words", wordCount),
		zap.Duration("delay", d))
	return d
}
