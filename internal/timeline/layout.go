package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Options tunes the layout. Zero numeric fields fall back to DefaultOptions.
type Options struct {
	MinColumnWidthPx float64
	MinBarWidthPx    float64
	LaneHeightPx     float64
	LaneGapPx        float64

	// SortTasksByStart stacks tasks in start order, which minimises lanes.
	// When false, tasks are stacked in source order.
	SortTasksByStart bool
}

// DefaultOptions returns the layout defaults used by the CLI and TUI.
func DefaultOptions() Options {
	return Options{
		MinColumnWidthPx: 60,
		MinBarWidthPx:    MinWidthPx,
		LaneHeightPx:     20,
		LaneGapPx:        4,
		SortTasksByStart: true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinColumnWidthPx <= 0 {
		o.MinColumnWidthPx = d.MinColumnWidthPx
	}
	if o.MinBarWidthPx <= 0 {
		o.MinBarWidthPx = d.MinBarWidthPx
	}
	if o.LaneHeightPx <= 0 {
		o.LaneHeightPx = d.LaneHeightPx
	}
	if o.LaneGapPx < 0 {
		o.LaneGapPx = 0
	}
	return o
}

// LanePitch is the vertical distance between two lanes.
func (o Options) LanePitch() float64 {
	return o.LaneHeightPx + o.LaneGapPx
}

// TaskInput is the layout view of a task. Only ID and Interval drive the
// geometry; the rest is carried through for the renderer.
type TaskInput struct {
	ID           string
	Name         string
	Status       domain.Status
	Interval     Interval
	Progress     int
	CriticalPath bool
}

// ProjectInput is the layout view of a project and its tasks.
type ProjectInput struct {
	ID       string
	Name     string
	Status   domain.Status
	Interval Interval
	Tasks    []TaskInput
}

// Input is everything one render pass needs.
type Input struct {
	Projects         []ProjectInput
	ContainerWidthPx float64
	Window           *ViewWindow // optional explicit window
	Options          Options
}

// StackedBar is a task bar with its vertical slot beneath the project bar.
type StackedBar struct {
	PositionedBar
	Lane        int
	RowOffsetPx float64
}

// TaskBar is a positioned task plus pass-through metadata.
type TaskBar struct {
	ID           string
	Name         string
	Status       domain.Status
	Progress     int
	CriticalPath bool
	Bar          StackedBar
}

// ProjectRow is a positioned project bar with its stacked tasks.
type ProjectRow struct {
	ID        string
	Name      string
	Status    domain.Status
	Bar       PositionedBar
	Tasks     []TaskBar
	LaneCount int
	HeightPx  float64
}

// Layout is the result of one render pass.
type Layout struct {
	Window   ViewWindow
	Grid     MonthGrid
	Projects []ProjectRow
	Options  Options
}

// Compute derives the view window, builds the month grid, and positions
// every project and task bar.
//
// Window-level problems (no data, inverted or empty window) are returned as
// errors. A single bad interval never fails the layout; it is drawn as a
// minimum-width marker instead.
func Compute(in Input) (*Layout, error) {
	opts := in.Options.withDefaults()

	window, err := DeriveWindow(collectIntervals(in.Projects), in.Window)
	if err != nil {
		return nil, err
	}

	grid, err := NewMonthGrid(window, in.ContainerWidthPx, opts.MinColumnWidthPx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProjectRow, 0, len(in.Projects))
	for _, p := range in.Projects {
		row, err := layoutProject(p, window, grid.TotalWidth, opts)
		if err != nil {
			return nil, fmt.Errorf("laying out project %q: %w", p.ID, err)
		}
		rows = append(rows, row)
	}

	return &Layout{
		Window:   window,
		Grid:     grid,
		Projects: rows,
		Options:  opts,
	}, nil
}

func collectIntervals(projects []ProjectInput) []Interval {
	var out []Interval
	for _, p := range projects {
		out = append(out, p.Interval)
		for _, t := range p.Tasks {
			out = append(out, t.Interval)
		}
	}
	return out
}

func layoutProject(p ProjectInput, w ViewWindow, totalWidth float64, opts Options) (ProjectRow, error) {
	bar, err := ProjectWith(p.Interval, w, totalWidth, opts.MinBarWidthPx)
	if err != nil {
		return ProjectRow{}, err
	}

	tasks := p.Tasks
	if opts.SortTasksByStart {
		tasks = sortTasksByStart(tasks)
	}

	items := make([]LaneItem, len(tasks))
	for i, t := range tasks {
		items[i] = LaneItem{ID: t.ID, Interval: t.Interval}
	}
	lanes := AssignLanes(items)
	pitch := opts.LanePitch()

	bars := make([]TaskBar, 0, len(tasks))
	for i, t := range tasks {
		pb, err := ProjectWith(t.Interval, w, totalWidth, opts.MinBarWidthPx)
		if err != nil {
			return ProjectRow{}, fmt.Errorf("task %q: %w", t.ID, err)
		}
		bars = append(bars, TaskBar{
			ID:           t.ID,
			Name:         t.Name,
			Status:       t.Status,
			Progress:     clampProgress(t.Progress),
			CriticalPath: t.CriticalPath,
			Bar: StackedBar{
				PositionedBar: pb,
				Lane:          lanes[i],
				RowOffsetPx:   float64(lanes[i]) * pitch,
			},
		})
	}

	laneCount := LaneCount(lanes)
	return ProjectRow{
		ID:        p.ID,
		Name:      p.Name,
		Status:    p.Status,
		Bar:       bar,
		Tasks:     bars,
		LaneCount: laneCount,
		HeightPx:  float64(1+laneCount) * pitch,
	}, nil
}

func sortTasksByStart(tasks []TaskInput) []TaskInput {
	sorted := make([]TaskInput, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.Start.Before(sorted[j].Interval.Start)
	})
	return sorted
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// MarkerAt returns the x offset of instant t and whether t falls inside the
// window. Instants outside the window are pinned to the nearest edge.
func (l *Layout) MarkerAt(t time.Time) (float64, bool) {
	span := l.Window.Duration()
	if span <= 0 {
		return 0, false
	}
	c := clampTime(t, l.Window.Start, l.Window.End)
	x := float64(c.Sub(l.Window.Start)) * l.Grid.TotalWidth / float64(span)
	return x, l.Window.Contains(t)
}

// TotalWidthPx is the full scrollable width of the chart.
func (l *Layout) TotalWidthPx() float64 {
	return l.Grid.TotalWidth
}

// TotalHeightPx sums the heights of all project rows.
func (l *Layout) TotalHeightPx() float64 {
	var h float64
	for _, r := range l.Projects {
		h += r.HeightPx
	}
	return h
}

// TaskCount returns the number of task bars across all projects.
func (l *Layout) TaskCount() int {
	n := 0
	for _, r := range l.Projects {
		n += len(r.Tasks)
	}
	return n
}
