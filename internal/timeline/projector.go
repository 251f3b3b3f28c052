package timeline

import (
	"fmt"
	"math"
)

// MinWidthPx is the default floor for a projected bar, so zero-length and
// out-of-window items still render as a sliver.
const MinWidthPx = 2.0

// PositionedBar is an interval projected into pixel space. Values are exact
// fractions; snapping to whole pixels is left to the renderer.
type PositionedBar struct {
	LeftPx  float64
	WidthPx float64
}

// RightPx returns the right edge of the bar.
func (b PositionedBar) RightPx() float64 {
	return b.LeftPx + b.WidthPx
}

// Project maps iv onto a timeline totalWidthPx wide covering w, using the
// default minimum bar width.
func Project(iv Interval, w ViewWindow, totalWidthPx float64) (PositionedBar, error) {
	return ProjectWith(iv, w, totalWidthPx, MinWidthPx)
}

// ProjectWith is Project with an explicit minimum bar width.
//
// The interval is clamped to the window first. Items that end up with no
// duration (outside the window, zero length, or end before start) become a
// minWidthPx marker at their clamped start rather than an error.
func ProjectWith(iv Interval, w ViewWindow, totalWidthPx, minWidthPx float64) (PositionedBar, error) {
	span := w.Duration()
	if span <= 0 {
		return PositionedBar{}, fmt.Errorf("projecting onto %s: %w", w, ErrDegenerateWindow)
	}

	c := iv.Clamp(w)
	perUnit := totalWidthPx / float64(span)

	return PositionedBar{
		LeftPx:  float64(c.Start.Sub(w.Start)) * perUnit,
		WidthPx: math.Max(float64(c.End.Sub(c.Start))*perUnit, minWidthPx),
	}, nil
}
