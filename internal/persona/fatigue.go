package persona

import (
	"sync"
	"time"
)

const (
	// fatigueGainPerMinute is the level accrued per minute of activity.
	fatigueGainPerMinute = 0.01
	// fatigueRecoveryPerMinute is the level shed per minute of rest.
	fatigueRecoveryPerMinute = 0.04

	// sigmaGain and tauGain translate the fatigue level into timing
	// multipliers: a fully fatigued session is 40% more variable and
	// carries a 60% heavier reaction tail.
	sigmaGain = 0.4
	tauGain   = 0.6
)

// Fatigue tracks session tiredness on a [0,1] scale. Activity raises it,
// rest lowers it, and the timing layer reads it as a pair of multipliers.
// Safe for concurrent use.
type Fatigue struct {
	mu    sync.Mutex
	level float64
}

// NewFatigue returns a fully rested tracker.
func NewFatigue() *Fatigue {
	return &Fatigue{}
}

// Level returns the current fatigue in [0,1].
func (f *Fatigue) Level() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level
}

// RecordActivity accrues fatigue for the given span of active work.
func (f *Fatigue) RecordActivity(d time.Duration) {
	f.adjust(d.Minutes() * fatigueGainPerMinute)
}

// RecordRest sheds fatigue for the given span of idle time.
func (f *Fatigue) RecordRest(d time.Duration) {
	f.adjust(-d.Minutes() * fatigueRecoveryPerMinute)
}

func (f *Fatigue) adjust(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level += delta
	if f.level < 0 {
		f.level = 0
	} else if f.level > 1 {
		f.level = 1
	}
}

// SigmaMultiplier widens delay spread as fatigue accrues.
func (f *Fatigue) SigmaMultiplier() float64 {
	return 1.0 + f.Level()*sigmaGain
}

// TauMultiplier lengthens the reaction-time tail as fatigue accrues.
func (f *Fatigue) TauMultiplier() float64 {
	return 1.0 + f.Level()*tauGain
}
