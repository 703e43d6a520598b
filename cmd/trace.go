package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamsbytes/rocinante-sub012/internal/config"
	"github.com/adamsbytes/rocinante-sub012/internal/interact"
	"github.com/adamsbytes/rocinante-sub012/internal/noise"
	"github.com/adamsbytes/rocinante-sub012/internal/observability"
	"github.com/adamsbytes/rocinante-sub012/internal/persona"
	"github.com/adamsbytes/rocinante-sub012/internal/random"
	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

var traceSeed int64

// traceCmd runs one synthetic acquisition against an in-memory surface and
// prints the resolved click point plus the jittered approach path. It touches
// no host; the point is to eyeball resolver and jitter settings together.
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Simulate one click-point acquisition and print the jittered path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var src random.Source
		if traceSeed != 0 {
			src = random.NewSeededSource(traceSeed)
		} else {
			src = random.NewCryptoSource()
		}
		sampler := sampling.New(src)
		logger := observability.GetLogger()

		cfg := appCfg
		if cfg == nil {
			cfg = config.NewDefaultConfig()
		}

		traits, err := persona.NewTraits(sampler, cfg.Persona().CorrelationNoiseStdDev, logger)
		if err != nil {
			return fmt.Errorf("drawing persona: %w", err)
		}

		surface := &syntheticSurface{
			viewport: interact.Rect{X: 0, Y: 0, W: 800, H: 600},
			pointer:  interact.Point{X: 120, Y: 140},
		}
		target := &syntheticTarget{
			region: interact.Rect{X: 340, Y: 260, W: 60, H: 34},
		}

		rc := cfg.Resolver()
		resolver := interact.NewResolver(interact.Config{
			MaxWaitTicks:        rc.MaxWaitTicks,
			RotationTriggerTick: rc.RotationTriggerTick,
			MaxRotationRetries:  rc.MaxRotationRetries,
			ViewportMargin:      rc.ViewportMargin,
			RotationTimeout:     rc.RotationTimeout,
		}, sampler, surface, nil, logger)

		var res interact.Result
		for tick := 0; tick < rc.MaxWaitTicks*4; tick++ {
			res = resolver.Resolve(context.Background(), target)
			if res.Status.Terminal() {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		fmt.Printf("status: %s\n", res.Status)
		if res.Status == interact.StatusFailed {
			fmt.Printf("reason: %s\n", res.Reason)
			return nil
		}
		fmt.Printf("click point: %s\n", res.Point)

		jc := cfg.Jitter()
		gen := noise.NewGenerator()
		amplitude := jc.Amplitude * traits.JitterAmplitude
		pathSeed := traceSeed
		if pathSeed == 0 {
			pathSeed = int64(src.IntN(1 << 30))
		}
		fmt.Println("approach path (progress, dx, dy):")
		for i := 0; i <= 10; i++ {
			p := float64(i) / 10
			dx, dy := gen.PathOffset(p, amplitude, pathSeed)
			fmt.Printf("  %.1f  %+6.2f  %+6.2f\n", p, dx, dy)
		}
		return nil
	},
}

type syntheticSurface struct {
	viewport interact.Rect
	pointer  interact.Point
}

func (s *syntheticSurface) ViewportBounds() interact.Rect { return s.viewport }
func (s *syntheticSurface) PointerPosition() (interact.Point, bool) {
	return s.pointer, true
}

type syntheticTarget struct {
	region interact.Rect
}

func (t *syntheticTarget) Region() (interact.Rect, bool) { return t.region, true }
func (t *syntheticTarget) ReferencePoint() (interact.Point, bool) {
	return t.region.Center(), true
}
func (t *syntheticTarget) Kind() interact.Kind { return interact.KindScenery }
func (t *syntheticTarget) Precise() bool       { return false }

func init() {
	traceCmd.Flags().Int64Var(&traceSeed, "seed", 0,
		"seed for a reproducible run; 0 uses the crypto source")
	rootCmd.AddCommand(traceCmd)
}
