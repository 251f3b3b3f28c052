package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGrid_Quarter(t *testing.T) {
	months, err := BuildMonthGrid(q1())
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	}, months)
}

func TestBuildMonthGrid_SameMonth(t *testing.T) {
	w := ViewWindow{Start: date(2024, time.May, 3), End: date(2024, time.May, 20)}
	months, err := BuildMonthGrid(w)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, date(2024, time.May, 1), months[0])
}

func TestBuildMonthGrid_CrossesYear(t *testing.T) {
	w := NormalizeWindow(ViewWindow{Start: date(2023, time.November, 10), End: date(2024, time.February, 2)})
	months, err := BuildMonthGrid(w)
	require.NoError(t, err)
	require.Len(t, months, 4)
	assert.Equal(t, date(2023, time.November, 1), months[0])
	assert.Equal(t, date(2024, time.February, 1), months[3])
}

func TestBuildMonthGrid_InvertedWindow(t *testing.T) {
	w := ViewWindow{Start: date(2024, time.March, 1), End: date(2024, time.January, 1)}
	_, err := BuildMonthGrid(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

// TestBuildMonthGrid_CountMatchesMonthArithmetic checks the month count
// formula over random normalized windows.
func TestBuildMonthGrid_CountMatchesMonthArithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := date(2015, time.January, 1)

	for trial := 0; trial < 300; trial++ {
		start := base.AddDate(0, 0, rng.Intn(3650))
		end := start.AddDate(0, 0, rng.Intn(1500))
		w := NormalizeWindow(ViewWindow{Start: start, End: end})

		months, err := BuildMonthGrid(w)
		require.NoError(t, err)

		want := (w.End.Year()*12 + int(w.End.Month())) - (w.Start.Year()*12 + int(w.Start.Month())) + 1
		require.Len(t, months, want, "trial %d window %s", trial, w)
		for i := 1; i < len(months); i++ {
			assert.True(t, months[i-1].Before(months[i]), "trial %d: months must be ascending", trial)
			assert.Equal(t, 1, months[i].Day())
		}
	}
}

func TestNewMonthGrid_ResolvesColumnWidth(t *testing.T) {
	g, err := NewMonthGrid(q1(), 240, 60)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.InDelta(t, 80.0, g.ColumnWidth, 1e-9)
	assert.InDelta(t, 240.0, g.TotalWidth, 1e-9)
	// Jan and Feb 2024 hold 60 of the window's 91 days.
	assert.InDelta(t, 240*60.0/91, g.ColumnOffset(2), 1e-6)
	assert.Equal(t, 0.0, g.ColumnOffset(0))
	assert.Equal(t, 240.0, g.ColumnOffset(3))
}

func TestMonthGrid_ColumnOffsetMatchesProjectedMonthStart(t *testing.T) {
	w := q1()
	g, err := NewMonthGrid(w, 240, 60)
	require.NoError(t, err)

	for i, m := range g.Months {
		bar, err := Project(NewInterval(m, m), w, g.TotalWidth)
		require.NoError(t, err)
		assert.InDelta(t, bar.LeftPx, g.ColumnOffset(i), 1e-6, "month %s", m.Format("2006-01"))
	}
	// Feb 1 sits past the nominal 80px column edge because January is 31 of 91 days.
	assert.InDelta(t, 240*31.0/91, g.ColumnOffset(1), 1e-6)
}

func TestNewMonthGrid_FloorGrowsTotalWidth(t *testing.T) {
	w := NormalizeWindow(ViewWindow{Start: date(2024, time.January, 1), End: date(2024, time.December, 1)})
	g, err := NewMonthGrid(w, 360, 60)
	require.NoError(t, err)
	assert.Equal(t, 12, g.Len())
	assert.InDelta(t, 60.0, g.ColumnWidth, 1e-9)
	assert.InDelta(t, 720.0, g.TotalWidth, 1e-9, "overflow is left to horizontal scrolling")
}

func TestMonthGrid_Labels(t *testing.T) {
	g, err := NewMonthGrid(q1(), 240, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan 2024", "Feb 2024", "Mar 2024"}, g.Labels(""))
	assert.Equal(t, []string{"01", "02", "03"}, g.Labels("01"))
}
