package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/intelligence"
)

func optimizedWithHeaders(headers ...string) []OptimizedSection {
	out := make([]OptimizedSection, 0, len(headers))
	for _, h := range headers {
		out = append(out, OptimizedSection{
			Optimization: intelligence.SectionOptimization{EnhancedHeader: h},
		})
	}
	return out
}

func TestEstimateTOC_PageProgression(t *testing.T) {
	flow := DocumentFlowFlags{ExecutiveSummary: true, Conclusions: true, Appendix: true}
	entries := EstimateTOC(optimizedWithHeaders("Alpha", "Beta"), flow)

	require.Len(t, entries, 5)
	assert.Equal(t, TOCEntry{Title: "Executive Summary", Page: 3}, entries[0])
	assert.Equal(t, TOCEntry{Title: "Alpha", Page: 4}, entries[1])
	assert.Equal(t, TOCEntry{Title: "Beta", Page: 6}, entries[2])
	assert.Equal(t, TOCEntry{Title: "Recommendations", Page: 8}, entries[3])
	assert.Equal(t, TOCEntry{Title: "Appendix", Page: 9}, entries[4])
}

func TestEstimateTOC_DisabledBlocksOmitted(t *testing.T) {
	entries := EstimateTOC(optimizedWithHeaders("Only"), DocumentFlowFlags{})

	require.Len(t, entries, 1)
	assert.Equal(t, TOCEntry{Title: "Only", Page: 3}, entries[0])
}

func TestEstimateTOC_TruncatesLongHeaders(t *testing.T) {
	long := strings.Repeat("h", 90)
	entries := EstimateTOC(optimizedWithHeaders(long), DocumentFlowFlags{})

	require.Len(t, entries, 1)
	assert.Equal(t, strings.Repeat("h", 67)+"...", entries[0].Title)
	assert.Len(t, entries[0].Title, 70)
}

func TestForcedBreaks(t *testing.T) {
	breaks := ForcedBreaks([]int{0, 2})
	assert.True(t, breaks[0])
	assert.False(t, breaks[1])
	assert.True(t, breaks[2])
}
