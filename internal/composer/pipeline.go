package composer

import (
	"context"
	"fmt"
	"log"

	"reportforge/internal/intelligence"
	"reportforge/internal/validate"
)

// Renderer turns an assembled document into the final byte artifact. The byte
// format is the renderer's concern; the pipeline only requires that rendering
// either succeeds with a non-trivial buffer or returns an error.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// Pipeline runs one generation request: analysis, per-section optimization,
// and layout planning against the oracle, each phase independently protected
// by a deterministic fallback, followed by pure assembly and rendering.
//
// A Pipeline holds no per-request state and is safe for concurrent use; every
// call resolves a fresh style set and block sequence.
type Pipeline struct {
	oracle     intelligence.Oracle
	renderer   Renderer
	chunkLimit int

	// MaxArtifactMB is the artifact size warning threshold; zero means the
	// validate package default.
	MaxArtifactMB int
}

func NewPipeline(oracle intelligence.Oracle, renderer Renderer, chunkLimit int) *Pipeline {
	if chunkLimit <= 0 {
		chunkLimit = DefaultChunkLimit
	}
	return &Pipeline{oracle: oracle, renderer: renderer, chunkLimit: chunkLimit}
}

// Generate produces the document artifact for the given sections. Input
// validation errors and renderer errors are fatal; oracle failures are
// recovered per phase and never surfaced.
func (p *Pipeline) Generate(ctx context.Context, sections []Section) ([]byte, error) {
	if result := validate.Input(sections); !result.IsValid {
		return nil, fmt.Errorf("invalid input: %s", result.ErrorMessage)
	} else if len(result.Warnings) > 0 {
		for _, w := range result.Warnings {
			log.Printf("Input warning: %s", w)
		}
	}

	// Phase 1: document analysis.
	intel := p.analyze(ctx, sections)

	// Phase 2: per-section optimization over the surviving order.
	optimized := p.optimize(ctx, sections, intel)

	// Phase 3: layout planning.
	plan := p.planLayout(ctx, intel, optimized)

	styles := ResolveTheme(intel.DesignSystem)
	doc := NewAssembler(p.chunkLimit).Build(intel, optimized, plan, styles)

	data, err := p.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("document rendering failed: %w", err)
	}
	if result := validate.Artifact(data, p.MaxArtifactMB); !result.IsValid {
		return nil, fmt.Errorf("document rendering failed: %s", result.ErrorMessage)
	} else if len(result.Warnings) > 0 {
		for _, w := range result.Warnings {
			log.Printf("Artifact warning: %s", w)
		}
	}
	return data, nil
}

func (p *Pipeline) analyze(ctx context.Context, sections []Section) *intelligence.DocumentIntelligence {
	if p.oracle == nil {
		return intelligence.DefaultIntelligence(sections)
	}
	intel, err := p.oracle.AnalyzeDocument(ctx, sections)
	if err != nil {
		log.Printf("Document analysis failed, using fallback: %v", err)
		return intelligence.DefaultIntelligence(sections)
	}
	return intel
}

// optimize calls the oracle once per surviving section. A single failure
// fails the whole phase: the result is replaced by identity-ordered defaults
// that carry the original headers and content verbatim.
func (p *Pipeline) optimize(ctx context.Context, sections []Section, intel *intelligence.DocumentIntelligence) []OptimizedSection {
	order := SurvivingIndices(len(sections), intel.StructureOptimization.OptimalSectionOrder)

	if p.oracle == nil {
		return fallbackOptimized(sections)
	}

	docCtx := intelligence.DocContext{
		Domain:         intel.DocumentMeta.Domain,
		TargetAudience: intel.DocumentMeta.TargetAudience,
		DocumentType:   intel.DocumentMeta.DocumentType,
	}

	optimized := make([]OptimizedSection, 0, len(order))
	for _, idx := range order {
		section := sections[idx]
		opt, err := p.oracle.OptimizeSection(ctx, section, docCtx)
		if err != nil {
			log.Printf("Content optimization failed, using fallback: %v", err)
			return fallbackOptimized(sections)
		}
		optimized = append(optimized, OptimizedSection{
			OriginalIndex:   idx,
			OriginalHeader:  section.Header,
			OriginalContent: section.Content,
			Optimization:    *opt,
		})
	}
	return optimized
}

func (p *Pipeline) planLayout(ctx context.Context, intel *intelligence.DocumentIntelligence, optimized []OptimizedSection) *intelligence.LayoutPlan {
	if p.oracle == nil {
		return intelligence.DefaultLayoutPlan(len(optimized))
	}
	headers := make([]string, 0, len(optimized))
	for _, s := range optimized {
		headers = append(headers, s.Optimization.EnhancedHeader)
	}
	plan, err := p.oracle.PlanLayout(ctx, intel, headers)
	if err != nil {
		log.Printf("Layout optimization failed, using fallback: %v", err)
		return intelligence.DefaultLayoutPlan(len(optimized))
	}
	return plan
}

// fallbackOptimized is the optimization phase default: identity order,
// original header and content verbatim, no synthesized structure.
func fallbackOptimized(sections []Section) []OptimizedSection {
	out := make([]OptimizedSection, 0, len(sections))
	for i, s := range sections {
		out = append(out, OptimizedSection{
			OriginalIndex:   i,
			OriginalHeader:  s.Header,
			OriginalContent: s.Content,
			Optimization:    *intelligence.DefaultOptimization(s.Header, s.Content),
		})
	}
	return out
}
