package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerLines is the month label row plus the tick rule, pinned above the
// scrolling body.
const headerLines = 2

// resizeTickMsg fires once the terminal has stopped resizing. Only the tick
// carrying the latest seq triggers a relayout.
type resizeTickMsg struct{ seq int }

// layoutLoadedMsg carries a computed layout back to the model. Results for an
// older seq than the model's current one are dropped.
type layoutLoadedMsg struct {
	seq      int
	layout   *timeline.Layout
	fallback bool
	err      error
}

type timelineKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	Home      key.Binding
	End       key.Binding
	Today     key.Binding
	Legend    key.Binding
	Quit      key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		PageLeft:  key.NewBinding(key.WithKeys("shift+left", "H", "[")),
		PageRight: key.NewBinding(key.WithKeys("shift+right", "L", "]")),
		Home:      key.NewBinding(key.WithKeys("home", "0")),
		End:       key.NewBinding(key.WithKeys("end", "$")),
		Today:     key.NewBinding(key.WithKeys("t")),
		Legend:    key.NewBinding(key.WithKeys("?")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// bodyViewportKeys leaves letters free for the bindings above.
func bodyViewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// timelineModel is the interactive Gantt view.
type timelineModel struct {
	ctx  context.Context
	src  timelineSource
	cfg  config.Config
	now  func() time.Time
	keys timelineKeyMap

	width, height int

	// seq is bumped on every width change; loadedSeq is the seq of the
	// layout currently on screen.
	seq       int
	loadedSeq int

	layout   *timeline.Layout
	fallback bool
	err      error

	offset int
	legend bool
	body   viewport.Model
}

func newTimelineModel(ctx context.Context, src timelineSource, cfg config.Config, now func() time.Time, legend bool) timelineModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = bodyViewportKeys()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return timelineModel{
		ctx:    ctx,
		src:    src,
		cfg:    cfg,
		now:    now,
		keys:   defaultTimelineKeys(),
		legend: legend,
		body:   vp,
	}
}

func (m timelineModel) Init() tea.Cmd {
	return nil
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)

	case resizeTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.load(msg.seq, m.chartCols())

	case layoutLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loadedSeq = msg.seq
		m.layout, m.fallback, m.err = msg.layout, msg.fallback, msg.err
		m.offset = m.clampOffset(m.offset)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m timelineModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.height = msg.Height
	m.body.Width = msg.Width
	m.body.Height = max(msg.Height-headerLines-1, 1)
	if msg.Width == m.width {
		m.refresh()
		return m, nil
	}

	m.width = msg.Width
	m.seq++
	if m.layout == nil && m.err == nil {
		// First size: nothing on screen yet, so skip the debounce.
		return m, m.load(m.seq, m.chartCols())
	}
	seq := m.seq
	return m, tea.Tick(m.cfg.ResizeDebounce(), func(time.Time) tea.Msg {
		return resizeTickMsg{seq: seq}
	})
}

// load computes the layout for chartCols. An empty store falls back to a
// window around today so the view still has a month grid to show.
func (m timelineModel) load(seq, chartCols int) tea.Cmd {
	ctx, src, cfg, now := m.ctx, m.src, m.cfg, m.now
	return func() tea.Msg {
		containerPx := formatter.ContainerWidthFor(chartCols, cfg.Render.CellWidthPx)
		l, err := src.build(ctx, containerPx)
		if !errors.Is(err, timeline.ErrNoData) {
			return layoutLoadedMsg{seq: seq, layout: l, err: err}
		}
		w := timeline.FallbackWindow(now(), cfg.Timeline.FallbackMonths)
		fb := src
		fb.request.Window = &w
		l, err = fb.build(ctx, containerPx)
		return layoutLoadedMsg{seq: seq, layout: l, fallback: true, err: err}
	}
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.monthCols()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.offset = m.clampOffset(m.offset - step)
	case key.Matches(msg, m.keys.Right):
		m.offset = m.clampOffset(m.offset + step)
	case key.Matches(msg, m.keys.PageLeft):
		m.offset = m.clampOffset(m.offset - m.chartCols())
	case key.Matches(msg, m.keys.PageRight):
		m.offset = m.clampOffset(m.offset + m.chartCols())
	case key.Matches(msg, m.keys.Home):
		m.offset = 0
	case key.Matches(msg, m.keys.End):
		m.offset = m.maxOffset()
	case key.Matches(msg, m.keys.Today):
		m.offset = m.clampOffset(m.todayCol() - m.chartCols()/2)
	case key.Matches(msg, m.keys.Legend):
		m.legend = !m.legend
	default:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// chartCols is the visible chart width: the terminal minus the name gutter.
func (m timelineModel) chartCols() int {
	return max(m.width-m.cfg.Render.LabelColumns, minChartColumns)
}

func (m timelineModel) fullCols() int {
	if m.layout == nil {
		return 0
	}
	return formatter.ChartColumns(m.layout, m.cfg.Render.CellWidthPx)
}

func (m timelineModel) maxOffset() int {
	return max(m.fullCols()-m.chartCols(), 0)
}

func (m timelineModel) clampOffset(off int) int {
	return min(max(off, 0), m.maxOffset())
}

// monthCols is the horizontal scroll step: one month column.
func (m timelineModel) monthCols() int {
	if m.layout == nil {
		return 1
	}
	return max(int(math.Round(m.layout.Grid.ColumnWidth/m.cfg.Render.CellWidthPx)), 1)
}

func (m timelineModel) todayCol() int {
	if m.layout == nil {
		return 0
	}
	x, _ := m.layout.MarkerAt(m.now())
	return int(x / m.cfg.Render.CellWidthPx)
}

func (m timelineModel) chart() string {
	return formatter.FormatTimeline(m.layout, formatter.TimelineOptions{
		CellWidthPx: m.cfg.Render.CellWidthPx,
		LabelWidth:  m.cfg.Render.LabelColumns,
		Today:       m.now(),
		OffsetCols:  m.offset,
		ViewCols:    m.chartCols(),
		Legend:      m.legend,
	})
}

// refresh re-slices the chart at the current offset and hands the body rows
// to the viewport.
func (m *timelineModel) refresh() {
	if m.layout == nil {
		m.body.SetContent("")
		return
	}
	lines := strings.Split(strings.TrimRight(m.chart(), "\n"), "\n")
	if len(lines) <= headerLines {
		m.body.SetContent("")
		return
	}
	m.body.SetContent(strings.Join(lines[headerLines:], "\n"))
}

func (m timelineModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.err != nil {
		return formatter.RenderBox("Timeline", formatter.StyleRed.Render("Error: "+m.err.Error())) + "\n"
	}
	if m.layout == nil {
		return formatter.Dim("  Loading timeline...")
	}

	lines := strings.SplitN(m.chart(), "\n", headerLines+1)
	var b strings.Builder
	for _, l := range lines[:min(headerLines, len(lines))] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(m.body.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m timelineModel) statusBar() string {
	left := formatter.Bold(m.layout.Window.String())
	if m.fallback {
		left += "  " + formatter.StyleYellow.Render("no data, showing around today")
	}
	pos := fmt.Sprintf("col %d/%d", m.offset, m.maxOffset())
	if m.body.TotalLineCount() > m.body.Height {
		pos += fmt.Sprintf("  row %d%%", int(m.body.ScrollPercent()*100))
	}
	help := "←/→ scroll  t today  ? legend  q quit"
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(pos)-lipgloss.Width(help)-4, 1)
	return left + "  " + formatter.Dim(pos) + strings.Repeat(" ", gap) + formatter.Dim(help)
}
