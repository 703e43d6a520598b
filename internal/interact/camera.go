package interact

import (
	"context"
	"time"

	"github.com/adamsbytes/rocinante-sub012/internal/sampling"
)

// Direction is a camera rotation direction.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

func (d Direction) String() string {
	if d == DirectionLeft {
		return "left"
	}
	return "right"
}

// CameraController is the host's camera. RotateBy performs a short relative
// yaw adjustment; HoldRotation presses and holds in a direction for the
// given duration, which reads as a deliberate human camera drag. Both block
// until the motion finishes or ctx expires.
type CameraController interface {
	RotateBy(ctx context.Context, degrees float64) error
	HoldRotation(ctx context.Context, dir Direction, duration time.Duration, degrees float64) error
}

const (
	// holdThresholdDegrees is the smallest rotation executed as a held
	// drag instead of a tap adjustment.
	holdThresholdDegrees = 20.0

	minRotationDegrees = 20.0
	maxRotationDegrees = 90.0

	// holdDegreesPerSecond is the assumed drag speed when converting a
	// rotation magnitude into a hold duration.
	holdDegreesPerSecond = 60.0

	minHoldDuration = 500 * time.Millisecond
	maxHoldDuration = 3 * time.Second
)

// rotationPlan is one decided camera move.
type rotationPlan struct {
	degrees   float64
	direction Direction
	hold      bool
	duration  time.Duration
}

// planRotation decides how far and which way to swing the camera so the
// reference point comes on-screen. A horizontal overhang drives a rotation
// proportional to half the overshoot; a purely vertical miss gets a modest
// rotation in a random direction, since yaw alone cannot fix pitch but a
// new angle usually reprojects the target.
func planRotation(s *sampling.Sampler, viewport Rect, ref Point) rotationPlan {
	switch {
	case ref.X < viewport.X:
		return horizontalPlan(s, DirectionLeft, float64(viewport.X-ref.X))
	case ref.X >= viewport.X+viewport.W:
		return horizontalPlan(s, DirectionRight, float64(ref.X-(viewport.X+viewport.W)))
	default:
		return verticalPlan(s)
	}
}

// planRegionRotation aims a corrective rotation at a region that is present
// but clipped by the viewport: the swing follows the larger of the left and
// right overhangs, or a vertical-style nudge when only the top or bottom
// edge is cut off.
func planRegionRotation(s *sampling.Sampler, viewport Rect, region Rect) rotationPlan {
	leftOverhang := float64(viewport.X - region.X)
	rightOverhang := float64((region.X + region.W) - (viewport.X + viewport.W))

	switch {
	case leftOverhang > 0 && leftOverhang >= rightOverhang:
		return horizontalPlan(s, DirectionLeft, leftOverhang)
	case rightOverhang > 0:
		return horizontalPlan(s, DirectionRight, rightOverhang)
	default:
		return verticalPlan(s)
	}
}

func horizontalPlan(s *sampling.Sampler, dir Direction, overhang float64) rotationPlan {
	plan := rotationPlan{direction: dir}
	plan.degrees = sampling.Clamp(overhang/2, minRotationDegrees, maxRotationDegrees)
	plan.degrees += s.Gaussian(0, 5)
	return finishPlan(plan)
}

func verticalPlan(s *sampling.Sampler) rotationPlan {
	plan := rotationPlan{direction: DirectionRight}
	if s.Chance(0.5) {
		plan.direction = DirectionLeft
	}
	plan.degrees = 30 + s.Gaussian(0, 10)
	return finishPlan(plan)
}

func finishPlan(plan rotationPlan) rotationPlan {
	if plan.degrees < 1 {
		plan.degrees = 1
	}
	if plan.degrees >= holdThresholdDegrees {
		plan.hold = true
		ms := plan.degrees/holdDegreesPerSecond*1000 + 200
		plan.duration = time.Duration(ms) * time.Millisecond
		if plan.duration < minHoldDuration {
			plan.duration = minHoldDuration
		} else if plan.duration > maxHoldDuration {
			plan.duration = maxHoldDuration
		}
	}
	return plan
}

// execute runs the planned move against the controller.
func (p rotationPlan) execute(ctx context.Context, camera CameraController) error {
	if p.hold {
		return camera.HoldRotation(ctx, p.direction, p.duration, p.degrees)
	}
	degrees := p.degrees
	if p.direction == DirectionLeft {
		degrees = -degrees
	}
	return camera.RotateBy(ctx, degrees)
}
