package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"reportforge/internal/composer"
)

const (
	pageLeftMargin   = 36
	pageRightMargin  = 36
	pageTopMargin    = 50
	pageBottomMargin = 50

	chartWidth  = 300
	chartHeight = 150
	pieRadius   = 50
)

// PDFRenderer renders the block sequence to a PDF byte buffer on A4 pages.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(doc *composer.Document) ([]byte, error) {
	f := fpdf.New("P", "pt", "A4", "")
	f.SetMargins(pageLeftMargin, pageTopMargin, pageRightMargin)
	f.SetAutoPageBreak(true, pageBottomMargin)
	f.AddPage()

	// Core fonts are cp1252; translate UTF-8 text (bullets, dashes) up front.
	tr := f.UnicodeTranslatorFromDescriptor("")

	for _, block := range doc.Blocks {
		switch block.Kind {
		case composer.BlockStyledText:
			r.renderText(f, tr, doc.Styles, block)
		case composer.BlockTable:
			r.renderTable(f, tr, doc.Styles, block)
		case composer.BlockChart:
			r.renderChart(f, tr, doc.Styles, block.Chart)
		case composer.BlockPageBreak:
			f.AddPage()
		case composer.BlockSpacer:
			f.Ln(block.Gap)
		}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fontStyleString(bold, italic, underline bool) string {
	s := ""
	if bold {
		s += "B"
	}
	if italic {
		s += "I"
	}
	if underline {
		s += "U"
	}
	return s
}

func contentWidth(f *fpdf.Fpdf) float64 {
	pageW, _ := f.GetPageSize()
	left, _, right, _ := f.GetMargins()
	return pageW - left - right
}

func (r *PDFRenderer) renderText(f *fpdf.Fpdf, tr func(string) string, styles composer.StyleSet, block composer.RenderBlock) {
	style := styles.ByName(block.Style)
	if style.SpaceBefore > 0 {
		f.Ln(style.SpaceBefore)
	}

	lineHt := style.FontSize * 1.2
	if style.LineSpacing > 0 {
		lineHt = style.FontSize * style.LineSpacing
	}

	cr, cg, cb := hexToRGB(style.Color)
	f.SetTextColor(cr, cg, cb)

	if style.Indent > 0 {
		f.SetLeftMargin(pageLeftMargin + style.Indent)
		f.SetX(pageLeftMargin + style.Indent)
		defer func() {
			f.SetLeftMargin(pageLeftMargin)
		}()
	}

	// Filled blocks (section headers, callouts) render as a single cell;
	// everything else honors inline emphasis runs with word wrapping.
	if style.Background != "" {
		br, bg, bb := hexToRGB(style.Background)
		f.SetFillColor(br, bg, bb)
		f.SetFont("Helvetica", fontStyleString(style.Bold, style.Italic, false), style.FontSize)
		f.MultiCell(0, lineHt, tr(stripMarkup(block.Text)), "", style.Align, true)
	} else if style.Align == "C" {
		f.SetFont("Helvetica", fontStyleString(style.Bold, style.Italic, false), style.FontSize)
		f.MultiCell(0, lineHt, tr(stripMarkup(block.Text)), "", "C", false)
	} else {
		for _, run := range parseMarkup(block.Text) {
			bold := style.Bold || run.bold
			italic := style.Italic || run.italic
			f.SetFont("Helvetica", fontStyleString(bold, italic, run.underline), style.FontSize)
			f.Write(lineHt, tr(run.text))
		}
		f.Ln(lineHt)
	}

	if style.SpaceAfter > 0 {
		f.Ln(style.SpaceAfter)
	}
}

func (r *PDFRenderer) renderTable(f *fpdf.Fpdf, tr func(string) string, styles composer.StyleSet, block composer.RenderBlock) {
	table := block.Table
	if table == nil || (len(table.Rows) == 0 && len(table.Header) == 0) {
		return
	}

	cols := len(table.Header)
	if cols == 0 && len(table.Rows) > 0 {
		cols = len(table.Rows[0])
	}
	widths := columnWidths(f, cols)

	pr, pg, pb := hexToRGB(styles.Palette.Primary)
	nr, ng, nb := hexToRGB(styles.Palette.Neutral)
	dr, dg, db := hexToRGB(styles.Palette.Text)

	if len(table.Header) > 0 {
		f.SetFont("Helvetica", "B", 9)
		f.SetFillColor(pr, pg, pb)
		f.SetTextColor(255, 255, 255)
		f.SetDrawColor(dr, dg, db)
		for i, cell := range table.Header {
			f.CellFormat(widths[i], 18, tr(cell), "1", 0, "C", true, 0, "")
		}
		f.Ln(-1)
	}

	f.SetFont("Helvetica", "", 8)
	f.SetTextColor(dr, dg, db)
	for rowIdx, row := range table.Rows {
		fill := rowIdx%2 == 1
		if fill {
			f.SetFillColor(nr, ng, nb)
		} else {
			f.SetFillColor(255, 255, 255)
		}
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			align := "L"
			// Numeric trailing column (TOC page numbers) aligns right.
			if len(table.Header) == 0 && i == len(row)-1 {
				align = "R"
			}
			border := "1"
			if len(table.Header) == 0 {
				border = ""
			}
			f.CellFormat(widths[i], 16, tr(cell), border, 0, align, true, 0, "")
		}
		f.Ln(-1)
	}
	f.Ln(4)
}

func columnWidths(f *fpdf.Fpdf, cols int) []float64 {
	total := contentWidth(f)
	switch cols {
	case 4:
		// Metric / Value / Importance / Context, per the data table layout.
		return []float64{100, 58, 58, total - 216}
	case 2:
		return []float64{total - 50, 50}
	default:
		widths := make([]float64, cols)
		for i := range widths {
			widths[i] = total / float64(cols)
		}
		return widths
	}
}

func (r *PDFRenderer) renderChart(f *fpdf.Fpdf, tr func(string) string, styles composer.StyleSet, chart *composer.ChartData) {
	if chart == nil || len(chart.Values) == 0 {
		return
	}

	_, pageH := f.GetPageSize()
	if f.GetY()+chartHeight+pageBottomMargin > pageH {
		f.AddPage()
	}

	if chart.Title != "" {
		pr, pg, pb := hexToRGB(styles.Palette.Primary)
		f.SetTextColor(pr, pg, pb)
		f.SetFont("Helvetica", "B", 10)
		f.MultiCell(0, 14, tr(chart.Title), "", "C", false)
	}

	switch chart.Kind {
	case "bar":
		r.renderBarChart(f, tr, styles, chart)
	case "pie":
		r.renderPieChart(f, tr, styles, chart)
	}
	f.Ln(10)
}

func (r *PDFRenderer) renderBarChart(f *fpdf.Fpdf, tr func(string) string, styles composer.StyleSet, chart *composer.ChartData) {
	maxVal := chart.Values[0]
	for _, v := range chart.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	originX := pageLeftMargin + (contentWidth(f)-chartWidth)/2
	topY := f.GetY() + 6
	plotHeight := chartHeight - 30.0
	baseY := topY + plotHeight

	n := len(chart.Values)
	slot := chartWidth / float64(n)
	barW := slot * 0.6

	sr, sg, sb := hexToRGB(styles.Palette.Secondary)
	dr, dg, db := hexToRGB(styles.Palette.Text)
	f.SetFillColor(sr, sg, sb)
	f.SetDrawColor(dr, dg, db)
	f.Line(originX, baseY, originX+chartWidth, baseY)

	f.SetFont("Helvetica", "", 7)
	f.SetTextColor(dr, dg, db)
	for i, v := range chart.Values {
		h := plotHeight * (v / maxVal)
		x := originX + float64(i)*slot + (slot-barW)/2
		f.Rect(x, baseY-h, barW, h, "F")
		f.Text(x, baseY-h-3, fmt.Sprintf("%g", v))
		f.Text(x, baseY+10, tr(chart.Labels[i]))
	}
	f.SetY(baseY + 16)
}

func (r *PDFRenderer) renderPieChart(f *fpdf.Fpdf, tr func(string) string, styles composer.StyleSet, chart *composer.ChartData) {
	total := 0.0
	for _, v := range chart.Values {
		total += v
	}
	if total <= 0 {
		return
	}

	cx := pageLeftMargin + contentWidth(f)/2 - 40
	cy := f.GetY() + pieRadius + 6

	sliceColors := [][3]int{}
	for _, hex := range []string{
		styles.Palette.Primary, styles.Palette.Secondary,
		styles.Palette.Accent, styles.Palette.Neutral,
	} {
		cr, cg, cb := hexToRGB(hex)
		sliceColors = append(sliceColors, [3]int{cr, cg, cb})
	}

	dr, dg, db := hexToRGB(styles.Palette.Text)
	f.SetDrawColor(dr, dg, db)
	f.SetLineWidth(0.5)

	start := 0.0
	for i, v := range chart.Values {
		end := start + 360*(v/total)
		c := sliceColors[i%len(sliceColors)]
		f.SetFillColor(c[0], c[1], c[2])
		f.MoveTo(cx, cy)
		f.ArcTo(cx, cy, pieRadius, pieRadius, 0, start, end)
		f.ClosePath()
		f.DrawPath("FD")
		start = end
	}

	// Legend to the right of the pie.
	f.SetFont("Helvetica", "", 7)
	f.SetTextColor(dr, dg, db)
	legendX := cx + pieRadius + 16
	legendY := cy - pieRadius
	for i, label := range chart.Labels {
		c := sliceColors[i%len(sliceColors)]
		f.SetFillColor(c[0], c[1], c[2])
		f.Rect(legendX, legendY, 7, 7, "FD")
		f.Text(legendX+11, legendY+6, tr(fmt.Sprintf("%s (%g)", label, chart.Values[i])))
		legendY += 12
	}

	f.SetY(cy + pieRadius + 10)
}
