package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/theme"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Glyphs used by the terminal Gantt chart.
const (
	glyphProjectBar = "━"
	glyphMonthTick  = "┬"
	glyphRule       = "─"
	glyphToday      = "┊"
	glyphTodayLabel = "▲ today"
)

// TimelineOptions controls how a layout is rasterized into terminal cells.
type TimelineOptions struct {
	// CellWidthPx is how many layout pixels one terminal column covers.
	CellWidthPx float64
	// LabelWidth is the width of the fixed name gutter on the left.
	LabelWidth int
	// Today draws a vertical marker when it falls inside the window.
	Today time.Time
	// OffsetCols and ViewCols select a horizontal slice of the chart.
	// ViewCols <= 0 renders the full width.
	OffsetCols int
	ViewCols   int
	Legend     bool
}

func (o TimelineOptions) withDefaults() TimelineOptions {
	if o.CellWidthPx <= 0 {
		o.CellWidthPx = 8
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 24
	}
	if o.OffsetCols < 0 {
		o.OffsetCols = 0
	}
	return o
}

// ChartColumns returns how many terminal columns the full chart needs.
func ChartColumns(l *timeline.Layout, cellWidthPx float64) int {
	if cellWidthPx <= 0 {
		cellWidthPx = 8
	}
	cols := int(math.Ceil(l.TotalWidthPx()/cellWidthPx - 1e-9))
	if cols < 1 {
		cols = 1
	}
	return cols
}

// ContainerWidthFor converts a terminal chart width back into layout pixels.
func ContainerWidthFor(chartCols int, cellWidthPx float64) float64 {
	if chartCols < 1 {
		chartCols = 1
	}
	return float64(chartCols) * cellWidthPx
}

// FormatTimeline renders a computed layout as a terminal Gantt chart: a month
// header, one bar row per project and one row per task lane beneath it.
func FormatTimeline(l *timeline.Layout, opts TimelineOptions) string {
	opts = opts.withDefaults()
	cols := ChartColumns(l, opts.CellWidthPx)
	r := raster{cols: cols, cell: opts.CellWidthPx}

	todayCol := -1
	if !opts.Today.IsZero() {
		if x, ok := l.MarkerAt(opts.Today); ok {
			todayCol = clampCol(int(x/opts.CellWidthPx), cols)
		}
	}

	var rows []chartRow
	rows = append(rows, chartRow{canvas: r.monthLabels(l)}, chartRow{canvas: r.monthRule(l)})

	for _, p := range l.Projects {
		sw := theme.ForStatus(p.Status)
		c := r.blank()
		from, to := r.span(p.Bar)
		c.fill(from, to, glyphProjectBar, sw.Hex)
		rows = append(rows, chartRow{
			gutter: SwatchStyle(sw).Render(sw.Glyph) + " " + StyleBold.Render(p.Name),
			canvas: c,
			body:   true,
		})

		lanes := make([]canvas, p.LaneCount)
		names := make([][]string, p.LaneCount)
		for i := range lanes {
			lanes[i] = r.blank()
		}
		for _, t := range p.Tasks {
			lane := t.Bar.Lane
			if lane < 0 || lane >= len(lanes) {
				continue
			}
			r.taskBar(lanes[lane], t)
			names[lane] = append(names[lane], t.Name)
		}
		for i, c := range lanes {
			rows = append(rows, chartRow{
				gutter: "  " + strings.Join(names[i], ", "),
				canvas: c,
				body:   true,
			})
		}
	}

	if todayCol >= 0 {
		for i := range rows {
			if rows[i].body {
				rows[i].canvas.mark(todayCol, glyphToday, theme.Red)
			}
		}
		footer := r.blank()
		footer.write(todayCol, glyphTodayLabel, theme.Red)
		rows = append(rows, chartRow{canvas: footer})
	}

	var b strings.Builder
	for _, row := range rows {
		line := gutter(row.gutter, opts.LabelWidth) + slice(row.canvas.render(), opts)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	if opts.Legend {
		b.WriteString("\n")
		b.WriteString(FormatLegend())
		b.WriteString("\n")
	}

	return b.String()
}

// FormatLegend renders every status swatch on one line.
func FormatLegend() string {
	swatches := theme.Legend()
	parts := make([]string, 0, len(swatches))
	for _, sw := range swatches {
		parts = append(parts, SwatchStyle(sw).Render(sw.Glyph)+" "+Dim(sw.Label))
	}
	return strings.Join(parts, "  ")
}

// FormatTimelineEmpty is shown when there is nothing to lay out.
func FormatTimelineEmpty() string {
	return RenderBox("Timeline", Dim("No projects with dates to show.")+"\n"+
		Dim("Add one with `gantry project add` or `gantry project import`."))
}

type chartRow struct {
	gutter string
	canvas canvas
	body   bool
}

type cell struct {
	glyph string
	hex   string
}

type canvas []cell

func (c canvas) fill(from, to int, glyph, hex string) {
	for i := from; i < to && i < len(c); i++ {
		if i >= 0 {
			c[i] = cell{glyph: glyph, hex: hex}
		}
	}
}

// write places text starting at col, clipped at the right edge.
func (c canvas) write(col int, text, hex string) {
	for _, ch := range text {
		if col >= len(c) {
			return
		}
		if col >= 0 {
			c[col] = cell{glyph: string(ch), hex: hex}
		}
		col++
	}
}

// mark draws glyph at col only where the canvas is empty.
func (c canvas) mark(col int, glyph, hex string) {
	if col < 0 || col >= len(c) || c[col].glyph != " " {
		return
	}
	c[col] = cell{glyph: glyph, hex: hex}
}

// render groups runs of same-colored cells into single styled strings.
func (c canvas) render() string {
	var b strings.Builder
	var run strings.Builder
	runHex := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHex == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
		}
		run.Reset()
	}
	for _, cl := range c {
		if cl.hex != runHex {
			flush()
			runHex = cl.hex
		}
		run.WriteString(cl.glyph)
	}
	flush()
	return b.String()
}

type raster struct {
	cols int
	cell float64
}

func (r raster) blank() canvas {
	c := make(canvas, r.cols)
	for i := range c {
		c[i] = cell{glyph: " "}
	}
	return c
}

func (r raster) col(px float64) int {
	return int(math.Round(px / r.cell))
}

// span converts a bar to a half-open column range that is never empty.
func (r raster) span(b timeline.PositionedBar) (int, int) {
	from := clampCol(r.col(b.LeftPx), r.cols)
	to := r.col(b.RightPx())
	if to <= from {
		to = from + 1
	}
	if to > r.cols {
		to = r.cols
	}
	return from, to
}

func (r raster) taskBar(c canvas, t timeline.TaskBar) {
	sw := theme.ForTask(t.Status, t.CriticalPath)
	from, to := r.span(t.Bar.PositionedBar)
	filled := int(math.Round(float64(t.Progress) / 100 * float64(to-from)))
	c.fill(from, from+filled, filledBlock, sw.Hex)
	c.fill(from+filled, to, emptyBlock, sw.Hex)
}

// monthLabels writes each month's label at its linear position so the
// header lines up with the bars, shortening labels that do not fit.
func (r raster) monthLabels(l *timeline.Layout) canvas {
	c := r.blank()
	starts := r.monthStarts(l)
	for i, m := range l.Grid.Months {
		next := r.cols
		if i+1 < len(starts) {
			next = starts[i+1]
		}
		c.write(starts[i], monthLabel(m, next-starts[i]-1), theme.Fg)
	}
	return c
}

func (r raster) monthRule(l *timeline.Layout) canvas {
	c := r.blank()
	c.fill(0, r.cols, glyphRule, theme.Grid)
	for _, s := range r.monthStarts(l) {
		c.write(s, glyphMonthTick, theme.Grid)
	}
	return c
}

func (r raster) monthStarts(l *timeline.Layout) []int {
	out := make([]int, len(l.Grid.Months))
	for i, m := range l.Grid.Months {
		x, _ := l.MarkerAt(m)
		out[i] = clampCol(r.col(x), r.cols)
	}
	return out
}

func monthLabel(m time.Time, width int) string {
	switch {
	case width >= 8:
		return m.Format("Jan 2006")
	case width >= 6:
		return m.Format("Jan 06")
	case width >= 3:
		return m.Format("Jan")
	case width >= 1:
		return m.Format("Jan")[:1]
	default:
		return ""
	}
}

func clampCol(col, cols int) int {
	if col < 0 {
		return 0
	}
	if col >= cols {
		return cols - 1
	}
	return col
}

// gutter truncates the label to leave one blank column and pads it to width.
func gutter(label string, width int) string {
	label = ansi.Truncate(label, width-1, "…")
	pad := width - ansi.StringWidth(label)
	if pad < 0 {
		pad = 0
	}
	return label + strings.Repeat(" ", pad)
}

func slice(row string, opts TimelineOptions) string {
	if opts.ViewCols <= 0 {
		return row
	}
	return ansi.Cut(row, opts.OffsetCols, opts.OffsetCols+opts.ViewCols)
}
