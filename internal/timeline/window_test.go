package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBoundaries(t *testing.T) {
	d := time.Date(2024, time.February, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.February, 1), MonthStart(d))
	assert.Equal(t, date(2024, time.March, 1).Add(-time.Nanosecond), MonthEnd(d), "leap February ends on the 29th")
}

func TestDeriveWindow_ExplicitIsNormalized(t *testing.T) {
	explicit := &ViewWindow{Start: date(2024, time.January, 17), End: date(2024, time.March, 3)}
	intervals := []Interval{NewInterval(date(2020, time.January, 1), date(2030, time.January, 1))}

	w, err := DeriveWindow(intervals, explicit)
	require.NoError(t, err)
	assert.Equal(t, q1(), w, "explicit window wins over data")
}

func TestDeriveWindow_FromIntervalsPadsOneMonth(t *testing.T) {
	intervals := []Interval{
		NewInterval(date(2024, time.January, 15), date(2024, time.January, 30)),
		NewInterval(date(2024, time.January, 20), date(2024, time.February, 10)),
	}

	w, err := DeriveWindow(intervals, nil)
	require.NoError(t, err)
	assert.Equal(t, q1(), w)
}

func TestDeriveWindow_PaddingFromMonthEndDoesNotSkip(t *testing.T) {
	intervals := []Interval{NewInterval(date(2024, time.January, 2), date(2024, time.January, 31))}

	w, err := DeriveWindow(intervals, nil)
	require.NoError(t, err)
	assert.Equal(t, time.February, w.End.Month())
}

func TestDeriveWindow_MalformedIntervalStillCovered(t *testing.T) {
	intervals := []Interval{NewInterval(date(2024, time.June, 10), date(2024, time.May, 1))}

	w, err := DeriveWindow(intervals, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.May, 1), w.Start)
	assert.Equal(t, time.July, w.End.Month())
}

func TestDeriveWindow_NoData(t *testing.T) {
	_, err := DeriveWindow(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFallbackWindow(t *testing.T) {
	now := time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC)

	w := FallbackWindow(now, 1)
	assert.Equal(t, q1(), w)

	single := FallbackWindow(now, -3)
	assert.Equal(t, date(2024, time.February, 1), single.Start)
	assert.Equal(t, MonthEnd(now), single.End)
}

func TestViewWindow_Validate(t *testing.T) {
	assert.NoError(t, q1().Validate())

	d := date(2024, time.January, 1)
	assert.ErrorIs(t, ViewWindow{Start: d, End: d}.Validate(), ErrDegenerateWindow)
	assert.ErrorIs(t, ViewWindow{Start: d, End: d.Add(-time.Hour)}.Validate(), ErrInvalidWindow)
}

func TestInterval_Clamp(t *testing.T) {
	w := q1()

	inside := NewInterval(date(2024, time.February, 1), date(2024, time.February, 5))
	assert.Equal(t, inside, inside.Clamp(w))

	wide := NewInterval(date(2023, time.January, 1), date(2025, time.January, 1))
	assert.Equal(t, NewInterval(w.Start, w.End), wide.Clamp(w))

	before := NewInterval(date(2023, time.January, 1), date(2023, time.February, 1))
	assert.Equal(t, NewInterval(w.Start, w.Start), before.Clamp(w))
}

func TestInterval_Overlaps(t *testing.T) {
	a := NewInterval(date(2024, time.January, 1), date(2024, time.January, 10))
	b := NewInterval(date(2024, time.January, 5), date(2024, time.January, 15))
	c := NewInterval(date(2024, time.January, 10), date(2024, time.January, 12))

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "touching intervals do not overlap")
	assert.Equal(t, 9*24*time.Hour, a.Duration())
	assert.Zero(t, NewInterval(a.End, a.Start).Duration())
}
