package interact

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

// Config tunes the acquisition state machine. Zero values are replaced by
// the defaults below.
type Config struct {
	// MaxWaitTicks is the wait-window length before the resolver falls
	// back or gives up.
	MaxWaitTicks int
	// RotationTriggerTick is the tick within the wait window at which a
	// camera rotation is launched.
	RotationTriggerTick int
	// MaxRotationRetries bounds camera attempts per acquisition.
	MaxRotationRetries int
	// ViewportMargin shrinks the viewport for the visibility check, so
	// edge-hugging regions are treated as off-screen.
	ViewportMargin int
	// PointMargin keeps generated click points off the region border.
	PointMargin int
	// FallbackMargin is how far inside the viewport a fallback
	// projection must land to be accepted.
	FallbackMargin int
	// StdDevFraction is the Gaussian click spread as a fraction of the
	// region dimensions; PreciseStdDevFraction applies to precise
	// targets.
	StdDevFraction        float64
	PreciseStdDevFraction float64
	// RotationTimeout bounds a single camera move.
	RotationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxWaitTicks == 0 {
		c.MaxWaitTicks = 8
	}
	if c.RotationTriggerTick == 0 {
		c.RotationTriggerTick = 3
	}
	if c.MaxRotationRetries == 0 {
		c.MaxRotationRetries = 3
	}
	if c.ViewportMargin == 0 {
		c.ViewportMargin = 5
	}
	if c.PointMargin == 0 {
		c.PointMargin = 3
	}
	if c.FallbackMargin == 0 {
		c.FallbackMargin = 10
	}
	if c.StdDevFraction == 0 {
		c.StdDevFraction = 0.15
	}
	if c.PreciseStdDevFraction == 0 {
		c.PreciseStdDevFraction = 0.10
	}
	if c.RotationTimeout == 0 {
		c.RotationTimeout = 5 * time.Second
	}
	return c
}

const (
	// pointerBiasRange is the pointer distance within which click points
	// drift toward the cursor, and pointerBiasFactor how strongly.
	pointerBiasRange  = 200.0
	pointerBiasFactor = 0.2
	// pointerBiasCapFraction caps the drift at a fraction of the region
	// dimension on each axis.
	pointerBiasCapFraction = 0.2

	fallbackNoiseStdDev = 15.0
)

// Resolver drives click-point acquisition for one target at a time. Resolve
// is called once per host tick and never blocks; camera rotation runs on its
// own goroutine with the in-flight flag gating re-entry.
type Resolver struct {
	cfg     Config
	sampler *sampling.Sampler
	surface Surface
	camera  CameraController
	logger  *zap.Logger

	inFlight  atomic.Bool
	waitTicks atomic.Int32
	retries   atomic.Int32
	attemptID atomic.Value // string
}

// NewResolver wires a resolver. surface is required; camera may be nil, in
// which case off-screen targets skip straight to the fallback path.
func NewResolver(cfg Config, sampler *sampling.Sampler, surface Surface, camera CameraController, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		cfg:     cfg.withDefaults(),
		sampler: sampler,
		surface: surface,
		camera:  camera,
		logger:  logger,
	}
	r.attemptID.Store(uuid.NewString())
	return r
}

// Reset clears the acquisition state for a new target. Not safe to call
// while a rotation is in flight for the previous target; callers should
// wait for a terminal status first.
func (r *Resolver) Reset() {
	r.waitTicks.Store(0)
	r.retries.Store(0)
	r.attemptID.Store(uuid.NewString())
}

// Resolve advances the state machine by one tick. It returns Success with a
// click point when the target is visible, Waiting or NeedsRotation while
// acquisition is still live, Fallback with a projected point when the wait
// window closes with retries left on a camera-less or stubborn target, and
// Failed when all retries are spent.
func (r *Resolver) Resolve(ctx context.Context, target Target) Result {
	if r.inFlight.Load() {
		// The camera is still moving; the tick counts toward the wait
		// window but nothing else happens until the move settles.
		r.waitTicks.Add(1)
		return waiting("camera rotation in progress")
	}

	region, hasRegion := target.Region()
	if hasRegion && r.visible(region) {
		p := r.clickPoint(region, target.Precise())
		r.logger.Debug("target acquired",
			zap.String("attempt", r.attemptID.Load().(string)),
			zap.String("kind", target.Kind().String()),
			zap.Int("x", p.X), zap.Int("y", p.Y))
		r.waitTicks.Store(0)
		r.retries.Store(0)
		return success(p)
	}

	// A region that is present but clipped by the viewport edge will not
	// reappear on its own; rotate toward the overhang immediately instead
	// of burning the wait window.
	if hasRegion && r.camera != nil {
		if int(r.retries.Load()) >= r.cfg.MaxRotationRetries {
			r.logger.Warn("target acquisition abandoned",
				zap.String("attempt", r.attemptID.Load().(string)),
				zap.String("kind", target.Kind().String()),
				zap.Int32("retries", r.retries.Load()))
			return failed("region still clipped by the viewport after all rotation retries")
		}
		r.launchRotation(planRegionRotation(r.sampler, r.surface.ViewportBounds(), region))
		return needsRotation("region clipped by the viewport edge")
	}

	ticks := r.waitTicks.Add(1)

	if int(ticks) == r.cfg.RotationTriggerTick && r.camera != nil {
		if int(r.retries.Load()) < r.cfg.MaxRotationRetries {
			if ref, ok := target.ReferencePoint(); ok {
				r.launchRotation(planRotation(r.sampler, r.surface.ViewportBounds(), ref))
				return needsRotation("region missing; rotating toward the reference point")
			}
		}
	}

	if int(ticks) < r.cfg.MaxWaitTicks {
		return waiting("region not yet available")
	}

	// Wait window closed; try projecting the reference point directly.
	ref, hasRef := target.ReferencePoint()
	if hasRef {
		if p, ok := r.fallbackPoint(ref); ok {
			r.logger.Debug("fallback projection accepted",
				zap.String("attempt", r.attemptID.Load().(string)),
				zap.Int("x", p.X), zap.Int("y", p.Y))
			r.waitTicks.Store(0)
			r.retries.Store(0)
			return fallback(p, "projected from the reference point after the wait window closed")
		}
	}

	// Fallback unusable; reopen the wait window when another rotation can
	// still change the projection, otherwise give up.
	if r.camera != nil && hasRef && int(r.retries.Load()) < r.cfg.MaxRotationRetries {
		r.waitTicks.Store(0)
		return waiting("fallback projection rejected; starting another rotation cycle")
	}
	r.logger.Warn("target acquisition abandoned",
		zap.String("attempt", r.attemptID.Load().(string)),
		zap.String("kind", target.Kind().String()),
		zap.Int32("retries", r.retries.Load()))
	return failed("target never became visible and fallback projection left the viewport")
}

// visible reports whether region sits fully inside the margin-shrunk
// viewport. Partial visibility is treated as off-screen: clicking a clipped
// region risks hitting whatever occludes it.
func (r *Resolver) visible(region Rect) bool {
	if region.W <= 0 || region.H <= 0 {
		return false
	}
	return r.surface.ViewportBounds().Inset(r.cfg.ViewportMargin).ContainsRect(region)
}

// clickPoint samples a humanized point inside region. The mean starts at the
// center, drifts toward a nearby pointer, gets a Gaussian spread scaled to
// the region size, and is hard-clamped PointMargin pixels inside the border.
func (r *Resolver) clickPoint(region Rect, precise bool) Point {
	center := region.Center()
	meanX := float64(center.X)
	meanY := float64(center.Y)

	if cursor, ok := r.surface.PointerPosition(); ok {
		dx := float64(cursor.X - center.X)
		dy := float64(cursor.Y - center.Y)
		if math.Hypot(dx, dy) < pointerBiasRange {
			capX := pointerBiasCapFraction * float64(region.W)
			capY := pointerBiasCapFraction * float64(region.H)
			meanX += sampling.Clamp(dx*pointerBiasFactor, -capX, capX)
			meanY += sampling.Clamp(dy*pointerBiasFactor, -capY, capY)
		}
	}

	frac := r.cfg.StdDevFraction
	if precise {
		frac = r.cfg.PreciseStdDevFraction
	}
	x := r.sampler.Gaussian(meanX, frac*float64(region.W))
	y := r.sampler.Gaussian(meanY, frac*float64(region.H))

	m := r.cfg.PointMargin
	p := Point{
		X: clampInt(int(math.Round(x)), region.X+m, region.X+region.W-m-1),
		Y: clampInt(int(math.Round(y)), region.Y+m, region.Y+region.H-m-1),
	}
	if !region.Contains(p) {
		// Region thinner than twice the margin; the center is the only
		// safe choice left.
		r.logger.Warn("click point escaped the region; using the center",
			zap.String("attempt", r.attemptID.Load().(string)),
			zap.Int("x", p.X), zap.Int("y", p.Y),
			zap.Int("regionX", region.X), zap.Int("regionY", region.Y),
			zap.Int("regionW", region.W), zap.Int("regionH", region.H))
		return center
	}
	return p
}

// fallbackPoint jitters the reference point and accepts it only when it
// lands comfortably inside the viewport.
func (r *Resolver) fallbackPoint(ref Point) (Point, bool) {
	p := Point{
		X: int(math.Round(r.sampler.Gaussian(float64(ref.X), fallbackNoiseStdDev))),
		Y: int(math.Round(r.sampler.Gaussian(float64(ref.Y), fallbackNoiseStdDev))),
	}
	if r.surface.ViewportBounds().Inset(r.cfg.FallbackMargin).Contains(p) {
		return p, true
	}
	return Point{}, false
}

// launchRotation runs a planned camera move on its own goroutine and spends
// one retry. The in-flight flag is set before launch and cleared when the
// move finishes, errors, or times out; Resolve keeps counting wait ticks
// while it is up. The rotation deliberately detaches from the tick's context
// so a short-lived caller cannot cancel a half-finished camera drag.
func (r *Resolver) launchRotation(plan rotationPlan) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return
	}
	retry := r.retries.Add(1)
	r.logger.Debug("camera rotation launched",
		zap.String("attempt", r.attemptID.Load().(string)),
		zap.Float64("degrees", plan.degrees),
		zap.String("direction", plan.direction.String()),
		zap.Bool("hold", plan.hold),
		zap.Int32("retry", retry))

	go func() {
		defer r.inFlight.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RotationTimeout)
		defer cancel()
		if err := plan.execute(ctx, r.camera); err != nil {
			r.logger.Warn("camera rotation failed",
				zap.String("attempt", r.attemptID.Load().(string)),
				zap.Error(err))
		}
	}()
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
