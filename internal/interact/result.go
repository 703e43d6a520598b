package interact

// Status is the outcome of one resolution attempt. Waiting and NeedsRotation
// are non-terminal: the caller should tick again. Success, Fallback and
// Failed are terminal for the current acquisition.
type Status int

const (
	// StatusSuccess means Point holds a click location inside the
	// target's visible region.
	StatusSuccess Status = iota
	// StatusWaiting means the region is absent or off-screen and the
	// resolver is inside its wait window.
	StatusWaiting
	// StatusNeedsRotation means a camera rotation is in flight; the
	// caller should keep ticking until it completes.
	StatusNeedsRotation
	// StatusFallback means Point holds a noisy projection of the
	// target's reference point rather than a sampled region point.
	StatusFallback
	// StatusFailed means acquisition was abandoned; Reason says why.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWaiting:
		return "waiting"
	case StatusNeedsRotation:
		return "needs_rotation"
	case StatusFallback:
		return "fallback"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the acquisition is over.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFallback || s == StatusFailed
}

// Result is what one Resolve call produced. Point is meaningful only for
// StatusSuccess and StatusFallback. Every non-success variant carries a
// Reason describing why the resolver is in that state.
type Result struct {
	Status Status
	Point  Point
	Reason string
}

func success(p Point) Result {
	return Result{Status: StatusSuccess, Point: p}
}

func waiting(reason string) Result {
	return Result{Status: StatusWaiting, Reason: reason}
}

func needsRotation(reason string) Result {
	return Result{Status: StatusNeedsRotation, Reason: reason}
}

func fallback(p Point, reason string) Result {
	return Result{Status: StatusFallback, Point: p, Reason: reason}
}

func failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}
