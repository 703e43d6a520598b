package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/adamsbytes/rocinante-sub012/internal/observability"
	"github.com/adamsbytes/rocinante-sub012/internal/persona"
	"github.com/adamsbytes/rocinante-sub012/internal/random"
	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
	"github.com/adamsbytes/rocinante-sub012/internal/timing"
)

var (
	calibrateProfile string
	calibrateSamples int
	calibrateSeed    int64
)

// calibrateCmd samples timing profiles and reports their realized
// statistics, so profile tuning can be checked against the intended means
// and spreads without attaching to a host.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Sample timing profiles and report realized delay statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := calibrateSeed
		if seed == 0 && appCfg != nil {
			seed = appCfg.Timing().SeedOverride
		}
		var src random.Source
		if seed != 0 {
			src = random.NewSeededSource(seed)
		} else {
			src = random.NewCryptoSource()
		}
		sampler := sampling.New(src)
		var fatigue timing.FatigueProvider
		if appCfg == nil || appCfg.Timing().FatigueEnabled {
			fatigue = persona.NewFatigue()
		}
		timer := timing.NewTimer(sampler, fatigue, observability.GetLogger())

		profiles := timing.Profiles()
		if calibrateProfile != "" {
			p, ok := timing.ProfileByName(calibrateProfile)
			if !ok {
				return fmt.Errorf("unknown profile %q", calibrateProfile)
			}
			profiles = []timing.Profile{p}
		}

		for _, p := range profiles {
			samples := make([]float64, calibrateSamples)
			for i := range samples {
				samples[i] = float64(timer.Delay(p).Milliseconds())
			}
			mean, stdDev := stat.MeanStdDev(samples, nil)
			fmt.Printf("%-22s mean=%8.1fms stddev=%7.1fms target=%8.1fms\n",
				p.Name, mean, stdDev, p.Mean)
		}
		return nil
	},
}

// personaCmd draws a session persona and prints the trait vector, to sanity
// check correlation and bound settings.
var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Draw a session persona and print the correlated trait vector.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sampler := sampling.New(random.NewCryptoSource())
		noise := 0.1
		if appCfg != nil {
			noise = appCfg.Persona().CorrelationNoiseStdDev
		}
		traits, err := persona.NewTraits(sampler, noise, observability.GetLogger())
		if err != nil {
			return fmt.Errorf("drawing persona: %w", err)
		}
		fmt.Printf("pointer_speed:    %.3f\n", traits.PointerSpeed)
		fmt.Printf("precision:        %.3f\n", traits.Precision)
		fmt.Printf("reaction_scale:   %.3f\n", traits.ReactionScale)
		fmt.Printf("tremor_amplitude: %.3f\n", traits.TremorAmplitude)
		fmt.Printf("jitter_amplitude: %.3f\n", traits.JitterAmplitude)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().StringVar(&calibrateProfile, "profile", "",
		"calibrate a single named profile instead of all of them")
	calibrateCmd.Flags().IntVar(&calibrateSamples, "samples", 2000,
		"number of delays to draw per profile")
	calibrateCmd.Flags().Int64Var(&calibrateSeed, "seed", 0,
		"seed for a reproducible run; 0 uses the crypto source")
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(personaCmd)
}
