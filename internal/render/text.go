package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"reportforge/internal/composer"
)

// TextRenderer renders the block sequence as plain text. It backs the CLI
// preview format and keeps pipeline tests independent of PDF byte output.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(doc *composer.Document) ([]byte, error) {
	var buf bytes.Buffer

	for _, block := range doc.Blocks {
		switch block.Kind {
		case composer.BlockStyledText:
			r.writeText(&buf, block)
		case composer.BlockTable:
			r.writeTable(&buf, block.Table)
		case composer.BlockChart:
			r.writeChart(&buf, block.Chart)
		case composer.BlockPageBreak:
			fmt.Fprintf(&buf, "\n%s\n\n", strings.Repeat("-", 72))
		case composer.BlockSpacer:
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (r *TextRenderer) writeText(buf *bytes.Buffer, block composer.RenderBlock) {
	text := stripMarkup(block.Text)
	switch block.Style {
	case composer.StyleDocumentTitle:
		fmt.Fprintf(buf, "%s\n%s\n\n", text, strings.Repeat("=", len(text)))
	case composer.StyleSectionHeader:
		fmt.Fprintf(buf, "\n%s\n%s\n", text, strings.Repeat("-", len(text)))
	case composer.StyleSubsectionHeader:
		fmt.Fprintf(buf, "\n%s\n", text)
	default:
		fmt.Fprintf(buf, "%s\n", text)
	}
}

func (r *TextRenderer) writeTable(buf *bytes.Buffer, table *composer.TableData) {
	if table == nil || (len(table.Rows) == 0 && len(table.Header) == 0) {
		return
	}
	w := tablewriter.NewWriter(buf)
	if len(table.Header) > 0 {
		w.SetHeader(table.Header)
	}
	for _, row := range table.Rows {
		w.Append(row)
	}
	w.Render()
	buf.WriteByte('\n')
}

func (r *TextRenderer) writeChart(buf *bytes.Buffer, chart *composer.ChartData) {
	if chart == nil || len(chart.Values) == 0 {
		return
	}
	if chart.Title != "" {
		fmt.Fprintf(buf, "\n[%s chart] %s\n", chart.Kind, chart.Title)
	} else {
		fmt.Fprintf(buf, "\n[%s chart]\n", chart.Kind)
	}
	w := tablewriter.NewWriter(buf)
	w.SetHeader([]string{"Label", "Value"})
	for i, label := range chart.Labels {
		if i >= len(chart.Values) {
			break
		}
		w.Append([]string{label, fmt.Sprintf("%g", chart.Values[i])})
	}
	w.Render()
	buf.WriteByte('\n')
}
