package intelligence

import (
	"context"
)

// Section is one header/content input unit, supplied by the caller.
type Section struct {
	Header  string `json:"header"`
	Content string `json:"content"`
}

// DocContext carries document-level context into per-section optimization.
type DocContext struct {
	Domain         string
	TargetAudience string
	DocumentType   string
}

// Oracle defines the interface for the layout intelligence collaborator.
// Each operation is stateless and may fail in arbitrary ways; callers must
// always be prepared to fall back to the default builders in defaults.go.
type Oracle interface {
	// AnalyzeDocument produces document-wide intelligence from a section overview.
	AnalyzeDocument(ctx context.Context, sections []Section) (*DocumentIntelligence, error)
	// OptimizeSection restructures a single section for presentation.
	OptimizeSection(ctx context.Context, section Section, docCtx DocContext) (*SectionOptimization, error)
	// PlanLayout decides document flow and pagination from the enhanced headers.
	PlanLayout(ctx context.Context, intel *DocumentIntelligence, headers []string) (*LayoutPlan, error)
}
