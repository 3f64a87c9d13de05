package composer

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/intelligence"
)

// captureRenderer records the assembled document and returns a buffer large
// enough to pass artifact validation.
type captureRenderer struct {
	doc *Document
	err error
}

func (r *captureRenderer) Render(doc *Document) ([]byte, error) {
	r.doc = doc
	if r.err != nil {
		return nil, r.err
	}
	return make([]byte, 2048), nil
}

// stubOracle lets each phase be scripted independently.
type stubOracle struct {
	analyze  func(sections []intelligence.Section) (*intelligence.DocumentIntelligence, error)
	optimize func(section intelligence.Section) (*intelligence.SectionOptimization, error)
	plan     func(headers []string) (*intelligence.LayoutPlan, error)
}

func (s *stubOracle) AnalyzeDocument(_ context.Context, sections []intelligence.Section) (*intelligence.DocumentIntelligence, error) {
	return s.analyze(sections)
}

func (s *stubOracle) OptimizeSection(_ context.Context, section intelligence.Section, _ intelligence.DocContext) (*intelligence.SectionOptimization, error) {
	return s.optimize(section)
}

func (s *stubOracle) PlanLayout(_ context.Context, _ *intelligence.DocumentIntelligence, headers []string) (*intelligence.LayoutPlan, error) {
	return s.plan(headers)
}

func failingOracle() *stubOracle {
	return &stubOracle{
		analyze: func([]intelligence.Section) (*intelligence.DocumentIntelligence, error) {
			return nil, errors.New("analysis unavailable")
		},
		optimize: func(intelligence.Section) (*intelligence.SectionOptimization, error) {
			return nil, errors.New("optimization unavailable")
		},
		plan: func([]string) (*intelligence.LayoutPlan, error) {
			return nil, errors.New("planning unavailable")
		},
	}
}

var testSections = []Section{
	{Header: "Introduction", Content: "Opening remarks."},
	{Header: "Findings", Content: "Things we found."},
}

func TestPipeline_RejectsInvalidInput(t *testing.T) {
	p := NewPipeline(nil, &captureRenderer{}, 0)

	_, err := p.Generate(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")

	_, err = p.Generate(context.Background(), []Section{{Header: "  ", Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty header")
}

func TestPipeline_NilOracleUsesDefaults(t *testing.T) {
	renderer := &captureRenderer{}
	p := NewPipeline(nil, renderer, 0)

	data, err := p.Generate(context.Background(), testSections)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	require.NotNil(t, renderer.doc)
	headers := textsByStyle(renderer.doc, StyleSectionHeader)
	assert.Contains(t, headers, "Introduction")
	assert.Contains(t, headers, "Findings")
	assert.Equal(t, "Professional Analysis Report", renderer.doc.Meta.Title)
}

func TestPipeline_EveryPhaseFailingStillGenerates(t *testing.T) {
	renderer := &captureRenderer{}
	p := NewPipeline(failingOracle(), renderer, 0)

	data, err := p.Generate(context.Background(), testSections)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	require.NotNil(t, renderer.doc)
	headers := textsByStyle(renderer.doc, StyleSectionHeader)
	assert.Contains(t, headers, "Introduction")
	assert.Contains(t, headers, "Findings")

	for _, b := range renderer.doc.Blocks {
		assert.NotEqual(t, BlockChart, b.Kind)
	}
}

func TestPipeline_AnalysisFailureAloneKeepsHeaders(t *testing.T) {
	oracle := failingOracle()
	oracle.optimize = func(section intelligence.Section) (*intelligence.SectionOptimization, error) {
		return intelligence.DefaultOptimization(section.Header, section.Content), nil
	}
	oracle.plan = func(headers []string) (*intelligence.LayoutPlan, error) {
		return intelligence.DefaultLayoutPlan(len(headers)), nil
	}

	renderer := &captureRenderer{}
	p := NewPipeline(oracle, renderer, 0)

	data, err := p.Generate(context.Background(), testSections)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	headers := textsByStyle(renderer.doc, StyleSectionHeader)
	assert.Contains(t, headers, "Introduction")
	assert.Contains(t, headers, "Findings")
}

func TestPipeline_SingleOptimizationFailureFailsWholePhase(t *testing.T) {
	oracle := failingOracle()
	oracle.analyze = func(sections []intelligence.Section) (*intelligence.DocumentIntelligence, error) {
		return intelligence.DefaultIntelligence(sections), nil
	}
	calls := 0
	oracle.optimize = func(section intelligence.Section) (*intelligence.SectionOptimization, error) {
		calls++
		if calls == 1 {
			return intelligence.DefaultOptimization("Polished "+section.Header, section.Content), nil
		}
		return nil, errors.New("model timeout")
	}

	renderer := &captureRenderer{}
	p := NewPipeline(oracle, renderer, 0)

	_, err := p.Generate(context.Background(), testSections)
	require.NoError(t, err)

	headers := textsByStyle(renderer.doc, StyleSectionHeader)
	// The successful first call is discarded along with the failed one.
	assert.NotContains(t, headers, "Polished Introduction")
	assert.Contains(t, headers, "Introduction")
	assert.Contains(t, headers, "Findings")
}

func TestPipeline_AppliesSectionOrder(t *testing.T) {
	oracle := failingOracle()
	oracle.analyze = func(sections []intelligence.Section) (*intelligence.DocumentIntelligence, error) {
		intel := intelligence.DefaultIntelligence(sections)
		intel.StructureOptimization.OptimalSectionOrder = []int{1, 9, 0}
		return intel, nil
	}
	oracle.optimize = func(section intelligence.Section) (*intelligence.SectionOptimization, error) {
		return intelligence.DefaultOptimization(section.Header, section.Content), nil
	}

	renderer := &captureRenderer{}
	p := NewPipeline(oracle, renderer, 0)

	_, err := p.Generate(context.Background(), testSections)
	require.NoError(t, err)

	headers := textsByStyle(renderer.doc, StyleSectionHeader)
	var main []string
	for _, h := range headers {
		if h == "Introduction" || h == "Findings" {
			main = append(main, h)
		}
	}
	// Out-of-range index 9 is dropped, the rest follow the given order.
	assert.Equal(t, []string{"Findings", "Introduction"}, main)
}

func TestPipeline_LogsInputWarnings(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	renderer := &captureRenderer{}
	p := NewPipeline(nil, renderer, 0)

	sections := []Section{{Header: "Huge", Content: strings.Repeat("x", 10001)}}
	_, err := p.Generate(context.Background(), sections)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Input warning")
	assert.Contains(t, buf.String(), "very long content")
}

func TestPipeline_RendererErrorIsFatal(t *testing.T) {
	renderer := &captureRenderer{err: errors.New("disk full")}
	p := NewPipeline(nil, renderer, 0)

	_, err := p.Generate(context.Background(), testSections)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document rendering failed")
	assert.Contains(t, err.Error(), "disk full")
}
