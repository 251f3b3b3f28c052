package timeline

import "time"

// Interval is the scheduled span of a project or task.
// Callers should keep End >= Start; the engine clamps malformed intervals
// instead of rejecting them.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns the interval [start, end].
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether End is not before Start.
func (iv Interval) Valid() bool {
	return !iv.End.Before(iv.Start)
}

// Duration returns End - Start, or zero for a malformed interval.
func (iv Interval) Duration() time.Duration {
	if !iv.Valid() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether iv and o share any time. Intervals that only
// touch at an endpoint do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// Clamp pins both bounds of iv inside w. A malformed or fully out-of-window
// interval collapses to zero length at its clamped start.
func (iv Interval) Clamp(w ViewWindow) Interval {
	start := clampTime(iv.Start, w.Start, w.End)
	end := clampTime(iv.End, w.Start, w.End)
	if end.Before(start) {
		end = start
	}
	return Interval{Start: start, End: end}
}

func clampTime(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
