package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value holding a calendar date (YYYY-MM-DD).
type dateFlag struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if !f.set {
		return ""
	}
	return f.t.Format(domain.DateLayout)
}

func (f *dateFlag) Set(s string) error {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	f.t, f.set = t, true
	return nil
}

func (f *dateFlag) Type() string { return "YYYY-MM-DD" }

// monthFlag is a pflag.Value holding a month. It accepts YYYY-MM or a full
// date, which is floored to its month.
type monthFlag struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*monthFlag)(nil)

func (f *monthFlag) String() string {
	if !f.set {
		return ""
	}
	return f.t.Format("2006-01")
}

func (f *monthFlag) Set(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", domain.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			f.t, f.set = timeline.MonthStart(t), true
			return nil
		}
	}
	return fmt.Errorf("use YYYY-MM format")
}

func (f *monthFlag) Type() string { return "YYYY-MM" }

// defaultSpanMonths is how far a one-sided --from/--to range extends.
const defaultSpanMonths = 6

// windowFromFlags turns optional --from/--to months into an explicit view
// window. With neither set it returns nil so the window is derived from the
// data. With only one set the window spans six months from that side.
func windowFromFlags(from, to monthFlag) (*timeline.ViewWindow, error) {
	if !from.set && !to.set {
		return nil, nil
	}
	start, end := from.t, to.t
	switch {
	case !to.set:
		end = start.AddDate(0, defaultSpanMonths-1, 0)
	case !from.set:
		start = end.AddDate(0, -(defaultSpanMonths - 1), 0)
	}
	w := timeline.NormalizeWindow(timeline.ViewWindow{Start: start, End: end})
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("--from %s is after --to %s: %w", from.String(), to.String(), err)
	}
	return &w, nil
}
