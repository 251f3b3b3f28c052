package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/gantry/internal/theme"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/go-pdf/fpdf"
)

// PDFOptions controls the printed chart. All lengths are millimetres.
type PDFOptions struct {
	Title        string
	LabelWidthMM float64
	RowHeightMM  float64
	Today        time.Time
	Legend       bool
}

// DefaultPDFOptions returns the options used by `gantry export`.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{LabelWidthMM: 55, RowHeightMM: 6}
}

func (o PDFOptions) withDefaults() PDFOptions {
	d := DefaultPDFOptions()
	if o.LabelWidthMM <= 0 {
		o.LabelWidthMM = d.LabelWidthMM
	}
	if o.RowHeightMM <= 0 {
		o.RowHeightMM = d.RowHeightMM
	}
	return o
}

// Page geometry for landscape A4.
const (
	pdfPageW   = 297.0
	pdfPageH   = 210.0
	pdfMargin  = 10.0
	pdfHeaderH = 8.0
	pdfFont    = "Helvetica"
)

// WritePDF renders l as a landscape A4 chart and writes it to path.
func WritePDF(path string, l *timeline.Layout, opts PDFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating pdf: %w", err)
	}
	if err := RenderPDF(f, l, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing pdf: %w", err)
	}
	return nil
}

// RenderPDF writes the PDF document to w. Horizontal geometry is the layout's
// pixel geometry scaled to the printable width; rows that do not fit continue
// on a new page with the month header repeated.
func RenderPDF(w io.Writer, l *timeline.Layout, opts PDFOptions) error {
	pdf := buildPDF(l, opts.withDefaults())
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func buildPDF(l *timeline.Layout, opts PDFOptions) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	p := pdfPainter{
		pdf:    pdf,
		tr:     tr,
		l:      l,
		opts:   opts,
		chartX: pdfMargin + opts.LabelWidthMM,
		chartW: pdfPageW - 2*pdfMargin - opts.LabelWidthMM,
	}
	p.scale = p.chartW / l.TotalWidthPx()

	p.newPage()
	for _, row := range l.Projects {
		p.project(row)
	}
	p.closePage()
	if opts.Legend {
		p.legend()
	}
	return pdf
}

type pdfPainter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	l      *timeline.Layout
	opts   PDFOptions
	chartX float64
	chartW float64
	scale  float64 // mm per layout px

	y       float64
	pageTop float64
	pages   int
}

func (p *pdfPainter) fill(hex string) {
	r, g, b, err := theme.RGB(hex)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	p.pdf.SetFillColor(r, g, b)
}

func (p *pdfPainter) draw(hex string) {
	r, g, b, err := theme.RGB(hex)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	p.pdf.SetDrawColor(r, g, b)
}

func (p *pdfPainter) text(hex string) {
	r, g, b, err := theme.RGB(hex)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	p.pdf.SetTextColor(r, g, b)
}

func (p *pdfPainter) newPage() {
	if p.pages > 0 {
		p.closePage()
	}
	p.pdf.AddPage()
	p.y = pdfMargin

	if p.opts.Title != "" {
		p.text(theme.Bg)
		p.pdf.SetFont(pdfFont, "B", 14)
		p.pdf.Text(pdfMargin, p.y+5, p.tr(p.opts.Title))
		p.y += 10
	}

	p.pdf.SetFont(pdfFont, "", 8)
	p.text(theme.Dim)
	for _, m := range p.l.Grid.Months {
		x, _ := p.l.MarkerAt(m)
		p.pdf.Text(p.chartX+x*p.scale+1, p.y+pdfHeaderH-3, m.Format("Jan 06"))
	}
	p.y += pdfHeaderH
	p.pageTop = p.y
	p.pages++
}

// closePage draws the month grid lines and the today marker down to the
// last row of the page.
func (p *pdfPainter) closePage() {
	p.draw(theme.Grid)
	p.pdf.SetLineWidth(0.1)
	for _, m := range p.l.Grid.Months {
		x, _ := p.l.MarkerAt(m)
		p.pdf.Line(p.chartX+x*p.scale, p.pageTop-pdfHeaderH, p.chartX+x*p.scale, p.y)
	}

	if p.opts.Today.IsZero() {
		return
	}
	if x, ok := p.l.MarkerAt(p.opts.Today); ok {
		p.draw(theme.Red)
		p.pdf.SetLineWidth(0.4)
		p.pdf.Line(p.chartX+x*p.scale, p.pageTop, p.chartX+x*p.scale, p.y)
	}
}

func (p *pdfPainter) ensure(h float64) {
	if p.y+h > pdfPageH-pdfMargin {
		p.newPage()
	}
}

func (p *pdfPainter) project(row timeline.ProjectRow) {
	rowH := p.opts.RowHeightMM
	barH := rowH * 0.7

	p.ensure(rowH)
	sw := theme.ForStatus(row.Status)
	p.text(theme.Bg)
	p.pdf.SetFont(pdfFont, "B", 9)
	p.pdf.Text(pdfMargin, p.y+barH, p.tr(fit(row.Name, 34)))
	p.fill(sw.Hex)
	p.pdf.Rect(p.chartX+row.Bar.LeftPx*p.scale, p.y, row.Bar.WidthPx*p.scale, barH, "F")
	p.y += rowH

	lanes := make([][]timeline.TaskBar, row.LaneCount)
	for _, t := range row.Tasks {
		if t.Bar.Lane >= 0 && t.Bar.Lane < len(lanes) {
			lanes[t.Bar.Lane] = append(lanes[t.Bar.Lane], t)
		}
	}
	p.pdf.SetFont(pdfFont, "", 8)
	for _, lane := range lanes {
		p.ensure(rowH)
		names := ""
		for i, t := range lane {
			if i > 0 {
				names += ", "
			}
			names += t.Name
		}
		p.text(theme.Dim)
		p.pdf.Text(pdfMargin+3, p.y+barH, p.tr(fit(names, 40)))
		for _, t := range lane {
			p.task(t, barH)
		}
		p.y += rowH
	}
}

func (p *pdfPainter) task(t timeline.TaskBar, barH float64) {
	sw := theme.ForTask(t.Status, t.CriticalPath)
	x := p.chartX + t.Bar.LeftPx*p.scale
	w := t.Bar.WidthPx * p.scale

	p.fill(sw.Hex)
	p.pdf.SetAlpha(0.45, "Normal")
	p.pdf.Rect(x, p.y, w, barH, "F")
	p.pdf.SetAlpha(1, "Normal")
	if t.Progress > 0 {
		p.pdf.Rect(x, p.y, w*float64(t.Progress)/100, barH, "F")
	}
}

func (p *pdfPainter) legend() {
	p.ensure(8)
	p.y += 3
	x := pdfMargin
	p.pdf.SetFont(pdfFont, "", 8)
	for _, sw := range theme.Legend() {
		p.fill(sw.Hex)
		p.pdf.Rect(x, p.y, 3, 3, "F")
		p.text(theme.Bg)
		p.pdf.Text(x+4, p.y+2.6, sw.Label)
		x += 6 + p.pdf.GetStringWidth(sw.Label) + 4
	}
	p.y += 5
}

// fit shortens s to at most n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
