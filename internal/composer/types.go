package composer

import "reportforge/internal/intelligence"

// Section is re-exported so render and server code doesn't import
// intelligence just for the input type.
type Section = intelligence.Section

// OptimizedSection pairs one surviving entry of the section order with its
// optimization result.
type OptimizedSection struct {
	OriginalIndex   int
	OriginalHeader  string
	OriginalContent string
	Optimization    intelligence.SectionOptimization
}

// BlockKind enumerates the renderable block types.
type BlockKind int

const (
	BlockStyledText BlockKind = iota
	BlockTable
	BlockChart
	BlockPageBreak
	BlockSpacer
)

func (k BlockKind) String() string {
	switch k {
	case BlockStyledText:
		return "styled_text"
	case BlockTable:
		return "table"
	case BlockChart:
		return "chart"
	case BlockPageBreak:
		return "page_break"
	case BlockSpacer:
		return "spacer"
	}
	return "unknown"
}

// TableData is the payload of a table block. Rows never exceed the renderer
// budget; cells are pre-truncated by the builder.
type TableData struct {
	Header []string
	Rows   [][]string
}

// ChartData is the payload of a chart block with already-extracted numerics.
type ChartData struct {
	Kind   string // "bar" or "pie"
	Title  string
	Labels []string
	Values []float64
}

// RenderBlock is one styled, orderable unit of document output. Exactly one
// payload field is set, matching Kind.
type RenderBlock struct {
	Kind  BlockKind
	Style string
	Text  string
	Table *TableData
	Chart *ChartData
	Gap   float64 // spacer height in points
}

func textBlock(style, text string) RenderBlock {
	return RenderBlock{Kind: BlockStyledText, Style: style, Text: text}
}

func spacer(points float64) RenderBlock {
	return RenderBlock{Kind: BlockSpacer, Gap: points}
}

func pageBreak() RenderBlock {
	return RenderBlock{Kind: BlockPageBreak}
}

// Document is the assembled artifact handed to a render.Renderer.
type Document struct {
	Meta   intelligence.DocumentMeta
	Styles StyleSet
	Blocks []RenderBlock
}
