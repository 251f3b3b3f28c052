package timeline

import (
	"fmt"
	"time"
)

// ViewWindow is the visible date range. A normalized window starts at the
// first instant of a month and ends at the last instant of a month.
type ViewWindow struct {
	Start time.Time
	End   time.Time
}

// MonthStart returns the first instant of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last representable instant of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// NormalizeWindow floors Start to its month start and ceils End to its
// month end.
func NormalizeWindow(w ViewWindow) ViewWindow {
	return ViewWindow{Start: MonthStart(w.Start), End: MonthEnd(w.End)}
}

// Duration returns End - Start.
func (w ViewWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t lies inside the window, bounds included.
func (w ViewWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Validate checks the Start < End invariant.
func (w ViewWindow) Validate() error {
	switch {
	case w.End.Before(w.Start):
		return fmt.Errorf("window %s: %w", w, ErrInvalidWindow)
	case w.End.Equal(w.Start):
		return fmt.Errorf("window %s: %w", w, ErrDegenerateWindow)
	}
	return nil
}

func (w ViewWindow) String() string {
	return w.Start.Format("2006-01-02") + ".." + w.End.Format("2006-01-02")
}

// DeriveWindow picks the view window for a set of intervals.
//
// An explicit window wins and is only normalized to month boundaries.
// Otherwise the window spans the earliest start to the latest end, padded by
// one month on the right. With neither, ErrNoData is returned and the caller
// is expected to supply a fallback (see FallbackWindow).
func DeriveWindow(intervals []Interval, explicit *ViewWindow) (ViewWindow, error) {
	if explicit != nil {
		return NormalizeWindow(*explicit), nil
	}
	if len(intervals) == 0 {
		return ViewWindow{}, ErrNoData
	}

	// Both endpoints are considered so malformed intervals still land inside.
	lo, hi := intervals[0].Start, intervals[0].Start
	for _, iv := range intervals {
		for _, t := range []time.Time{iv.Start, iv.End} {
			if t.Before(lo) {
				lo = t
			}
			if t.After(hi) {
				hi = t
			}
		}
	}

	padded := MonthStart(hi).AddDate(0, 1, 0)
	return NormalizeWindow(ViewWindow{Start: lo, End: padded}), nil
}

// FallbackWindow returns the current month widened by months on each side.
func FallbackWindow(now time.Time, months int) ViewWindow {
	if months < 0 {
		months = 0
	}
	base := MonthStart(now)
	return ViewWindow{
		Start: base.AddDate(0, -months, 0),
		End:   MonthEnd(base.AddDate(0, months, 0)),
	}
}
