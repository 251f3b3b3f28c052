// Package export writes a computed timeline layout to standalone files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/theme"
	"github.com/alexanderramin/gantry/internal/timeline"
)

// SVGOptions controls the chrome around the chart. Bar geometry always
// comes from the layout.
type SVGOptions struct {
	Title          string
	LabelWidthPx   float64
	HeaderHeightPx float64
	FontFamily     string
	FontSize       int
	Today          time.Time
	Legend         bool
}

// DefaultSVGOptions returns the options used by `gantry export`.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		LabelWidthPx:   180,
		HeaderHeightPx: 28,
		FontFamily:     "Helvetica, Arial, sans-serif",
		FontSize:       12,
	}
}

func (o SVGOptions) withDefaults() SVGOptions {
	d := DefaultSVGOptions()
	if o.LabelWidthPx <= 0 {
		o.LabelWidthPx = d.LabelWidthPx
	}
	if o.HeaderHeightPx <= 0 {
		o.HeaderHeightPx = d.HeaderHeightPx
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	return o
}

const (
	svgMargin      = 12.0
	svgTitleHeight = 28.0
	svgLegendRow   = 24.0
)

// WriteSVG renders l as a standalone SVG document.
func WriteSVG(w io.Writer, l *timeline.Layout, opts SVGOptions) error {
	opts = opts.withDefaults()
	_, err := io.WriteString(w, renderSVG(l, opts))
	if err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

func renderSVG(l *timeline.Layout, opts SVGOptions) string {
	pitch := l.Options.LanePitch()
	barH := l.Options.LaneHeightPx

	top := svgMargin
	if opts.Title != "" {
		top += svgTitleHeight
	}
	chartX := svgMargin + opts.LabelWidthPx
	chartTop := top + opts.HeaderHeightPx
	chartW := l.TotalWidthPx()
	chartH := l.TotalHeightPx()

	width := chartX + chartW + svgMargin
	height := chartTop + chartH + svgMargin
	if opts.Legend {
		height += svgLegendRow
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.title { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.label { font-family: %s; font-size: %dpx; fill: %s; }
.month { font-family: %s; font-size: %dpx; fill: %s; }
</style>
</defs>
`, num(width), num(height), num(width), num(height), theme.Bg,
		opts.FontFamily, opts.FontSize+4, theme.Fg,
		opts.FontFamily, opts.FontSize, theme.Fg,
		opts.FontFamily, opts.FontSize-1, theme.Dim))

	if opts.Title != "" {
		svg.WriteString(fmt.Sprintf(`<text class="title" x="%s" y="%s">%s</text>`+"\n",
			num(svgMargin), num(svgMargin+svgTitleHeight-10), escapeXML(opts.Title)))
	}

	// Month columns: grid line at each linear month start, label beside it.
	for _, m := range l.Grid.Months {
		x, _ := l.MarkerAt(m)
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(chartX+x), num(top), num(chartX+x), num(chartTop+chartH), theme.Grid))
		svg.WriteString(fmt.Sprintf(`<text class="month" x="%s" y="%s">%s</text>`+"\n",
			num(chartX+x+4), num(top+opts.HeaderHeightPx-10), escapeXML(m.Format("Jan 2006"))))
	}

	y := chartTop
	for _, p := range l.Projects {
		sw := theme.ForStatus(p.Status)
		svg.WriteString(fmt.Sprintf(`<g class="project" data-id="%s">`+"\n", escapeXML(p.ID)))
		svg.WriteString(fmt.Sprintf(`<text class="label" x="%s" y="%s" font-weight="bold">%s</text>`+"\n",
			num(svgMargin), num(y+barH-5), escapeXML(p.Name)))
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s"><title>%s</title></rect>`+"\n",
			num(chartX+p.Bar.LeftPx), num(y), num(p.Bar.WidthPx), num(barH), sw.Hex,
			escapeXML(p.Name+" ("+sw.Label+")")))

		names := make([][]string, p.LaneCount)
		for _, t := range p.Tasks {
			if t.Bar.Lane >= 0 && t.Bar.Lane < len(names) {
				names[t.Bar.Lane] = append(names[t.Bar.Lane], t.Name)
			}
			writeTaskSVG(&svg, t, chartX, y+pitch+t.Bar.RowOffsetPx, barH)
		}
		// One gutter label per lane; bars sharing a lane share the label.
		for lane, n := range names {
			if len(n) == 0 {
				continue
			}
			laneY := y + pitch + float64(lane)*pitch
			svg.WriteString(fmt.Sprintf(`<text class="label" x="%s" y="%s">%s</text>`+"\n",
				num(svgMargin+12), num(laneY+barH-5), escapeXML(strings.Join(n, ", "))))
		}
		svg.WriteString("</g>\n")
		y += p.HeightPx
	}

	if !opts.Today.IsZero() {
		if x, ok := l.MarkerAt(opts.Today); ok {
			svg.WriteString(fmt.Sprintf(`<line class="today" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2" stroke-dasharray="4 3"/>`+"\n",
				num(chartX+x), num(top), num(chartX+x), num(chartTop+chartH), theme.Red))
		}
	}

	if opts.Legend {
		writeLegendSVG(&svg, svgMargin, chartTop+chartH+svgLegendRow-6, opts)
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeTaskSVG(svg *strings.Builder, t timeline.TaskBar, chartX, y, barH float64) {
	sw := theme.ForTask(t.Status, t.CriticalPath)
	x := chartX + t.Bar.LeftPx
	svg.WriteString(fmt.Sprintf(`<rect class="task" x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s" fill-opacity="0.45"><title>%s</title></rect>`+"\n",
		num(x), num(y), num(t.Bar.WidthPx), num(barH), sw.Hex,
		escapeXML(fmt.Sprintf("%s: %s, %d%%", t.Name, theme.ForStatus(t.Status).Label, t.Progress))))
	if t.Progress > 0 {
		svg.WriteString(fmt.Sprintf(`<rect class="progress" x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s"/>`+"\n",
			num(x), num(y), num(t.Bar.WidthPx*float64(t.Progress)/100), num(barH), sw.Hex))
	}
}

func writeLegendSVG(svg *strings.Builder, x, y float64, opts SVGOptions) {
	for _, sw := range theme.Legend() {
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="10" height="10" fill="%s"/>`+"\n",
			num(x), num(y-9), sw.Hex))
		svg.WriteString(fmt.Sprintf(`<text class="label" x="%s" y="%s">%s</text>`+"\n",
			num(x+14), num(y), escapeXML(sw.Label)))
		x += 14 + float64(len(sw.Label)*opts.FontSize)*0.6 + 16
	}
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// escapeXML escapes the five XML special characters so labels cannot break
// the document.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
