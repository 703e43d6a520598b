// Package timing holds the named delay profiles and the sampler that turns
// them into concrete humanized delays.
package timing

import "time"

// Distribution selects the sampling distribution for a profile.
type Distribution int

const (
	// Gaussian samples N(Mean, StdDev²).
	Gaussian Distribution = iota
	// ExGaussian samples N(Mean, StdDev²) + Exp(1/Tau); the exponential tail
	// reproduces the right skew of measured human reaction times.
	ExGaussian
)

// Profile is an immutable named timing profile. All durations are in
// milliseconds to match the distribution parameters. Profiles are registered
// once below and never mutated afterwards.
type Profile struct {
	Name         string
	Distribution Distribution
	// Mean is mu for both distributions.
	Mean   float64
	StdDev float64
	// Tau is the exponential tail parameter; only meaningful for ExGaussian.
	Tau float64
	// HasMin/HasMax gate the optional clamp bounds.
	HasMin bool
	MinMs  float64
	HasMax bool
	MaxMs  float64
	// PerWordMs adds reading time per word; only the dialogue profile sets it.
	PerWordMs   float64
	Description string
}

// The profile table. Values mirror measured player behavior: the reaction
// family is ex-Gaussian with tails that lengthen as the event gets less
// expected, the rest are plain Gaussians tuned per interaction kind.
var (
	// Reaction covers responding to an ordinary host event.
	// Mean reaction ≈ mu + tau = 250ms.
	Reaction = Profile{
		Name: "reaction", Distribution: ExGaussian,
		Mean: 200, StdDev: 30, Tau: 50,
		HasMin: true, MinMs: 150, HasMax: true, MaxMs: 600,
		Description: "responding to host events",
	}

	// ReactionExpected is the faster variant used when attention is already
	// focused on the thing that changes.
	ReactionExpected = Profile{
		Name: "reaction_expected", Distribution: ExGaussian,
		Mean: 150, StdDev: 25, Tau: 30,
		HasMin: true, MinMs: 100, HasMax: true, MaxMs: 400,
		Description: "responding to an anticipated event",
	}

	// ReactionUnexpected models surprise: notice, identify, then decide.
	ReactionUnexpected = Profile{
		Name: "reaction_unexpected", Distribution: ExGaussian,
		Mean: 350, StdDev: 60, Tau: 100,
		HasMin: true, MinMs: 250, HasMax: true, MaxMs: 800,
		Description: "responding to a surprise event",
	}

	// ReactionComplex adds deliberation time when a decision is required.
	ReactionComplex = Profile{
		Name: "reaction_complex", Distribution: ExGaussian,
		Mean: 500, StdDev: 100, Tau: 200,
		HasMin: true, MinMs: 300, HasMax: true, MaxMs: 1500,
		Description: "responding with a decision required",
	}

	// ActionGap sits between routine sequential actions.
	ActionGap = Profile{
		Name: "action_gap", Distribution: Gaussian,
		Mean: 800, StdDev: 200,
		HasMin: true, MinMs: 400, HasMax: true, MaxMs: 2000,
		Description: "between routine actions",
	}

	// MenuSelect is the quick deliberate pick from a context menu.
	MenuSelect = Profile{
		Name: "menu_select", Distribution: Gaussian,
		Mean: 180, StdDev: 50,
		Description: "choosing a menu option",
	}

	// DialogueRead scales with text length through PerWordMs; see
	// Timer.DialogueDelay.
	DialogueRead = Profile{
		Name: "dialogue_read", Distribution: Gaussian,
		Mean: 1200, StdDev: 300, PerWordMs: 50,
		Description: "reading dialogue text",
	}

	// PanelScan is the time to visually locate an item in a familiar panel.
	PanelScan = Profile{
		Name: "panel_scan", Distribution: Gaussian,
		Mean: 400, StdDev: 100,
		Description: "locating an item in a familiar panel",
	}

	// SearchScan covers the larger search area of a full storage interface.
	SearchScan = Profile{
		Name: "search_scan", Distribution: Gaussian,
		Mean: 600, StdDev: 150,
		Description: "locating an item in a large interface",
	}

	// QuickSwitch is the fastest profile, for rhythmic toggling; the floor
	// keeps it humanly possible.
	QuickSwitch = Profile{
		Name: "quick_switch", Distribution: Gaussian,
		Mean: 80, StdDev: 20,
		HasMin: true, MinMs: 50,
		Description: "rapid rhythmic toggling",
	}

	// LoadoutSwitch paces the individual steps of a multi-part swap.
	LoadoutSwitch = Profile{
		Name: "loadout_switch", Distribution: Gaussian,
		Mean: 120, StdDev: 30,
		Description: "individual steps of a multi-part swap",
	}
)

// Profiles lists every registered profile, for calibration tooling.
func Profiles() []Profile {
	return []Profile{
		Reaction, ReactionExpected, ReactionUnexpected, ReactionComplex,
		ActionGap, MenuSelect, DialogueRead, PanelScan, SearchScan,
		QuickSwitch, LoadoutSwitch,
	}
}

// ProfileByName looks up a registered profile by its name. Registration
// order decides ties, so the first profile with a given name wins.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// minOrZero returns the lower clamp bound, defaulting to 0.
func (p Profile) minOrZero() float64 {
	if p.HasMin {
		return p.MinMs
	}
	return 0
}

// maxOrInf returns the upper clamp bound, defaulting to +inf.
func (p Profile) maxOrInf() float64 {
	if p.HasMax {
		return p.MaxMs
	}
	return maxDelayMs
}

// maxDelayMs bounds unclamped profiles; ten minutes is far beyond any
// plausible draw.
const maxDelayMs = float64(10 * time.Minute / time.Millisecond)
