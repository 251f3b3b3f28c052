package timeline

import (
	"fmt"
	"time"
)

// DefaultMonthLabelLayout renders month headers as "Jan 2024".
const DefaultMonthLabelLayout = "Jan 2006"

// BuildMonthGrid enumerates the first of every month from w.Start through
// w.End inclusive, in chronological order.
func BuildMonthGrid(w ViewWindow) ([]time.Time, error) {
	if w.End.Before(w.Start) {
		return nil, fmt.Errorf("building month grid for %s: %w", w, ErrInvalidWindow)
	}

	first := MonthStart(w.Start)
	n := monthIndex(w.End) - monthIndex(first) + 1

	months := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, first.AddDate(0, i, 0))
	}
	return months, nil
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthGrid is the column structure of a timeline: one column per month,
// each ColumnWidth pixels wide.
type MonthGrid struct {
	Months      []time.Time
	ColumnWidth float64
	TotalWidth  float64
}

// NewMonthGrid builds the grid for w and sizes its columns for the given
// container. The total width grows with the month count once the column
// floor is reached, leaving the overflow to horizontal scrolling.
func NewMonthGrid(w ViewWindow, containerWidthPx, minColumnWidthPx float64) (MonthGrid, error) {
	months, err := BuildMonthGrid(w)
	if err != nil {
		return MonthGrid{}, err
	}
	colW := ResolveColumnWidth(containerWidthPx, len(months), minColumnWidthPx)
	return MonthGrid{
		Months:      months,
		ColumnWidth: colW,
		TotalWidth:  colW * float64(len(months)),
	}, nil
}

// Len returns the number of month columns.
func (g MonthGrid) Len() int {
	return len(g.Months)
}

// ColumnOffset returns the x offset of the first instant of month i, on the
// same linear scale Project uses. Months differ in length, so offsets are not
// multiples of ColumnWidth. i past the last month gives TotalWidth.
func (g MonthGrid) ColumnOffset(i int) float64 {
	if len(g.Months) == 0 || i <= 0 {
		return 0
	}
	if i >= len(g.Months) {
		return g.TotalWidth
	}
	start := g.Months[0]
	span := MonthEnd(g.Months[len(g.Months)-1]).Sub(start)
	return float64(g.Months[i].Sub(start)) * g.TotalWidth / float64(span)
}

// Labels formats each month with layout, or DefaultMonthLabelLayout when
// layout is empty.
func (g MonthGrid) Labels(layout string) []string {
	if layout == "" {
		layout = DefaultMonthLabelLayout
	}
	labels := make([]string, len(g.Months))
	for i, m := range g.Months {
		labels[i] = m.Format(layout)
	}
	return labels
}
