package composer

import "strconv"

const (
	execSummaryStartPage = 3
	pagesPerSection      = 2
	maxTOCHeaderChars    = 70
)

// TOCEntry is one display row of the table of contents. Pages are estimates:
// a fixed starting page plus a fixed per-section increment, with no feedback
// from the actual rendered page count.
type TOCEntry struct {
	Title string
	Page  int
}

// EstimateTOC computes the table of contents rows for the given optimized
// sections and document flow flags. Long headers are truncated for display
// only; truncation never affects the page estimates.
func EstimateTOC(sections []OptimizedSection, flow DocumentFlowFlags) []TOCEntry {
	var entries []TOCEntry
	page := execSummaryStartPage

	if flow.ExecutiveSummary {
		entries = append(entries, TOCEntry{Title: "Executive Summary", Page: page})
		page++
	}
	for _, s := range sections {
		entries = append(entries, TOCEntry{Title: truncateHeader(s.Optimization.EnhancedHeader), Page: page})
		page += pagesPerSection
	}
	if flow.Conclusions {
		entries = append(entries, TOCEntry{Title: "Recommendations", Page: page})
	}
	if flow.Appendix {
		entries = append(entries, TOCEntry{Title: "Appendix", Page: page + 1})
	}
	return entries
}

// DocumentFlowFlags collapses the layout plan's include flags for assembly.
type DocumentFlowFlags struct {
	TitlePage        bool
	TableOfContents  bool
	ExecutiveSummary bool
	Conclusions      bool
	Appendix         bool
}

// ForcedBreaks converts the layout plan's page break index list into a set
// keyed by position in the optimized section sequence.
func ForcedBreaks(indices []int) map[int]bool {
	breaks := make(map[int]bool, len(indices))
	for _, i := range indices {
		breaks[i] = true
	}
	return breaks
}

func truncateHeader(header string) string {
	if len(header) > maxTOCHeaderChars {
		return header[:maxTOCHeaderChars-3] + "..."
	}
	return header
}

func pageLabel(p int) string {
	return strconv.Itoa(p)
}
