package composer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/intelligence"
)

func falseFlag() intelligence.IncludeFlag {
	f := false
	return intelligence.IncludeFlag{Include: &f}
}

func testAssembler() *Assembler {
	a := NewAssembler(DefaultChunkLimit)
	a.Now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	return a
}

func textsByStyle(doc *Document, style string) []string {
	var out []string
	for _, b := range doc.Blocks {
		if b.Kind == BlockStyledText && b.Style == style {
			out = append(out, b.Text)
		}
	}
	return out
}

func countKind(doc *Document, kind BlockKind) int {
	n := 0
	for _, b := range doc.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

func TestAssembler_BuildFallbackDocument(t *testing.T) {
	sections := []Section{
		{Header: "Introduction", Content: "Opening remarks."},
		{Header: "Findings", Content: "Things we found."},
	}
	intel := intelligence.DefaultIntelligence(sections)
	optimized := fallbackOptimized(sections)
	plan := intelligence.DefaultLayoutPlan(len(optimized))
	styles := ResolveTheme(intel.DesignSystem)

	doc := testAssembler().Build(intel, optimized, plan, styles)
	require.NotEmpty(t, doc.Blocks)

	t.Run("Title page", func(t *testing.T) {
		require.Equal(t, BlockStyledText, doc.Blocks[0].Kind)
		assert.Equal(t, StyleDocumentTitle, doc.Blocks[0].Style)
		assert.Equal(t, "Professional Analysis Report", doc.Blocks[0].Text)

		meta := textsByStyle(doc, StyleMeta)
		require.Len(t, meta, 1)
		assert.Contains(t, meta[0], "Generated: March 2026")
		assert.Contains(t, meta[0], "Est. Reading Time:")
	})

	t.Run("Structural headers in order", func(t *testing.T) {
		headers := textsByStyle(doc, StyleSectionHeader)
		assert.Equal(t, []string{
			"Table of Contents",
			"Executive Summary",
			"Introduction",
			"Findings",
			"Recommendations",
			"Appendix",
		}, headers)
	})

	t.Run("Original content survives as body text", func(t *testing.T) {
		bodies := strings.Join(textsByStyle(doc, StyleBody), "\n")
		assert.Contains(t, bodies, "Opening remarks.")
		assert.Contains(t, bodies, "Things we found.")
	})

	t.Run("Fallback recommendations are numbered", func(t *testing.T) {
		points := textsByStyle(doc, StyleKeyPoint)
		var recs []string
		for _, p := range points {
			if strings.HasPrefix(p, "1. ") || strings.HasPrefix(p, "5. ") {
				recs = append(recs, p)
			}
		}
		require.Len(t, recs, 2)
		assert.Equal(t, "1. "+fallbackRecommendations[0], recs[0])
		assert.Equal(t, "5. "+fallbackRecommendations[4], recs[1])
	})

	t.Run("No synthesized tables or charts", func(t *testing.T) {
		// The only table is the TOC, which carries no header row.
		for _, b := range doc.Blocks {
			if b.Kind == BlockTable {
				assert.Empty(t, b.Table.Header)
			}
			assert.NotEqual(t, BlockChart, b.Kind)
		}
	})
}

func TestAssembler_FlagsDisableStructuralBlocks(t *testing.T) {
	sections := []Section{{Header: "Solo", Content: "Body."}}
	intel := intelligence.DefaultIntelligence(sections)
	optimized := fallbackOptimized(sections)
	plan := intelligence.DefaultLayoutPlan(1)

	plan.DocumentFlow.TitlePage.IncludeFlag = falseFlag()
	plan.DocumentFlow.TableOfContents.IncludeFlag = falseFlag()
	plan.DocumentFlow.ExecutiveSummary.IncludeFlag = falseFlag()
	plan.DocumentFlow.Conclusions.IncludeFlag = falseFlag()
	plan.DocumentFlow.Appendix.IncludeFlag = falseFlag()

	doc := testAssembler().Build(intel, optimized, plan, ResolveTheme(intel.DesignSystem))

	headers := textsByStyle(doc, StyleSectionHeader)
	assert.Equal(t, []string{"Solo"}, headers)
	assert.Empty(t, textsByStyle(doc, StyleDocumentTitle))
	assert.Equal(t, 0, countKind(doc, BlockTable))
}

func TestAssembler_PlannedContentPreferred(t *testing.T) {
	sections := []Section{{Header: "S", Content: "C."}}
	intel := intelligence.DefaultIntelligence(sections)
	intel.ContentIntelligence.ExecutiveSummary = "From analysis."
	intel.ContentIntelligence.KeyInsights = []string{"i1", "i2", "i3", "i4", "i5", "i6"}
	optimized := fallbackOptimized(sections)
	plan := intelligence.DefaultLayoutPlan(1)
	plan.DocumentFlow.ExecutiveSummary.Content = "From the layout plan."
	plan.DocumentFlow.Conclusions.Content = []string{"Do the thing.", " ", "Do it again."}

	doc := testAssembler().Build(intel, optimized, plan, ResolveTheme(intel.DesignSystem))

	summaries := textsByStyle(doc, StyleExecutiveSummary)
	require.NotEmpty(t, summaries)
	assert.Equal(t, "From the layout plan.", summaries[0])

	points := textsByStyle(doc, StyleKeyPoint)
	var insights, recs []string
	for _, p := range points {
		if strings.HasPrefix(p, "• ") {
			insights = append(insights, p)
		}
		if strings.HasPrefix(p, "1. ") || strings.HasPrefix(p, "2. ") || strings.HasPrefix(p, "3. ") {
			recs = append(recs, p)
		}
	}
	// Key insights cap at five.
	assert.Len(t, insights, 5)
	// Blank planned recommendations are dropped, the rest keep their order.
	assert.Equal(t, []string{"1. Do the thing.", "2. Do it again."}, recs)
}

func TestAssembler_ForcedPageBreaks(t *testing.T) {
	sections := []Section{
		{Header: "A", Content: "a."},
		{Header: "B", Content: "b."},
	}
	intel := intelligence.DefaultIntelligence(sections)
	optimized := fallbackOptimized(sections)

	plan := intelligence.DefaultLayoutPlan(2)
	plan.DocumentFlow.TitlePage.IncludeFlag = falseFlag()
	plan.DocumentFlow.TableOfContents.IncludeFlag = falseFlag()
	plan.DocumentFlow.ExecutiveSummary.IncludeFlag = falseFlag()
	plan.DocumentFlow.Conclusions.IncludeFlag = falseFlag()
	plan.DocumentFlow.Appendix.IncludeFlag = falseFlag()

	base := testAssembler().Build(intel, optimized, plan, ResolveTheme(intel.DesignSystem))
	assert.Equal(t, 0, countKind(base, BlockPageBreak))

	plan.PageOptimization.OptimalPageBreaks = []int{0}
	broken := testAssembler().Build(intel, optimized, plan, ResolveTheme(intel.DesignSystem))
	assert.Equal(t, 1, countKind(broken, BlockPageBreak))
}
