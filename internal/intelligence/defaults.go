package intelligence

import "fmt"

// Default builders for the fallback cascade. Each returns a schema-complete
// contract that preserves the caller's headers and content verbatim and
// carries no synthesized structure: no key points, no tables, no charts,
// identity ordering. The pipeline substitutes these whenever a phase fails.

// DefaultIntelligence builds the analysis fallback for the given sections.
func DefaultIntelligence(sections []Section) *DocumentIntelligence {
	totalChars := 0
	for _, s := range sections {
		totalChars += len(s.Content)
	}
	minutes := totalChars/1200 + 1

	intel := &DocumentIntelligence{
		DocumentMeta: DocumentMeta{
			Title:                "Professional Analysis Report",
			Domain:               "other",
			DocumentType:         "report",
			ComplexityLevel:      "intermediate",
			TargetAudience:       "general",
			EstimatedReadingTime: fmt.Sprintf("%d minutes", minutes),
		},
		StructureOptimization: StructureOptimization{
			OptimalSectionOrder: identityOrder(len(sections)),
		},
	}
	intel.Normalize()
	return intel
}

// DefaultOptimization builds the optimization fallback for one section.
func DefaultOptimization(header, content string) *SectionOptimization {
	opt := &SectionOptimization{EnhancedHeader: header}
	opt.Normalize(header, content)
	return opt
}

// DefaultLayoutPlan builds the layout fallback: every structural block
// included, no forced page breaks.
func DefaultLayoutPlan(sectionCount int) *LayoutPlan {
	plan := &LayoutPlan{}
	for i := 0; i < sectionCount; i++ {
		plan.DocumentFlow.MainSections = append(plan.DocumentFlow.MainSections, MainSectionFlow{
			SectionIndex:  i,
			EmphasisLevel: "medium",
		})
	}
	plan.Normalize()
	return plan
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
