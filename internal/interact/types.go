// Package interact resolves on-screen targets into concrete click points.
// It owns the acquisition state machine: visibility checks against the
// viewport, humanized point selection inside the target's region, bounded
// waiting for async region population, camera rotation when the target sits
// off-screen, and a noisy fallback projection when rotation fails.
package interact

import "fmt"

// Point is a screen coordinate in pixels.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRect reports whether inner lies fully inside r.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.X+inner.W <= r.X+r.W && inner.Y+inner.H <= r.Y+r.H
}

// Inset shrinks r by margin on every side. A rect too small to inset
// collapses to zero size around its anchor.
func (r Rect) Inset(margin int) Rect {
	out := Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Kind classifies what a target represents; actors move between ticks so
// their cached regions go stale faster.
type Kind int

const (
	KindScenery Kind = iota
	KindActor
	KindWidget
)

func (k Kind) String() string {
	switch k {
	case KindScenery:
		return "scenery"
	case KindActor:
		return "actor"
	case KindWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// Surface is the host's view of the screen. ViewportBounds is the area
// clicks can land in; PointerPosition reports the current cursor when the
// host tracks one.
type Surface interface {
	ViewportBounds() Rect
	PointerPosition() (Point, bool)
}

// Target is one interactable thing on the surface. Region returns the
// current clickable rectangle, which may be absent while the host is still
// projecting the target. ReferencePoint is the target's world-projected
// anchor, used to aim camera rotation and the fallback projection. Precise
// targets get a tighter click spread.
type Target interface {
	Region() (Rect, bool)
	ReferencePoint() (Point, bool)
	Kind() Kind
	Precise() bool
}
