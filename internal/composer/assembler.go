package composer

import (
	"fmt"
	"strings"
	"time"

	"reportforge/internal/intelligence"
)

// Point equivalents of the reference spacing (0.1 / 0.2 / 0.3 inch).
const (
	gapSmall  = 7.2
	gapMedium = 14.4
	gapLarge  = 21.6
)

var fallbackRecommendations = []string{
	"Implement standardized protocols based on identified best practices.",
	"Establish regular monitoring and quality assurance procedures.",
	"Provide comprehensive training to relevant stakeholders.",
	"Create documentation templates for consistent reporting.",
	"Schedule periodic reviews to assess effectiveness and make improvements.",
}

// Assembler orchestrates chunking, styling, tables, charts, and pagination
// into one ordered block sequence. It owns the sequence until handoff.
type Assembler struct {
	ChunkLimit int
	Now        func() time.Time
}

func NewAssembler(chunkLimit int) *Assembler {
	return &Assembler{ChunkLimit: chunkLimit, Now: time.Now}
}

// Build produces the final document in fixed structural order: title page,
// TOC, executive summary, main sections, recommendations, appendix. Each
// structural block is gated by its layout plan flag; absent flags include.
func (a *Assembler) Build(intel *intelligence.DocumentIntelligence, sections []OptimizedSection, plan *intelligence.LayoutPlan, styles StyleSet) *Document {
	doc := &Document{Meta: intel.DocumentMeta, Styles: styles}
	flow := plan.DocumentFlow
	flags := DocumentFlowFlags{
		TitlePage:        flow.TitlePage.Enabled(),
		TableOfContents:  flow.TableOfContents.Enabled(),
		ExecutiveSummary: flow.ExecutiveSummary.Enabled(),
		Conclusions:      flow.Conclusions.Enabled(),
		Appendix:         flow.Appendix.Enabled(),
	}

	if flags.TitlePage {
		a.appendTitlePage(doc, intel)
	}
	if flags.TableOfContents {
		a.appendTOC(doc, sections, flags)
	}
	if flags.ExecutiveSummary {
		a.appendExecutiveSummary(doc, intel, flow.ExecutiveSummary.Content)
	}
	a.appendMainSections(doc, intel, sections, plan)
	if flags.Conclusions {
		a.appendRecommendations(doc, flow.Conclusions.Content)
	}
	if flags.Appendix {
		a.appendAppendix(doc, intel)
	}
	return doc
}

func (a *Assembler) appendTitlePage(doc *Document, intel *intelligence.DocumentIntelligence) {
	meta := intel.DocumentMeta
	doc.Blocks = append(doc.Blocks, textBlock(StyleDocumentTitle, meta.Title))
	if strings.TrimSpace(meta.Subtitle) != "" {
		doc.Blocks = append(doc.Blocks, textBlock(StyleSubtitle, meta.Subtitle))
	}

	badge := fmt.Sprintf("%s • %s Domain", titleWord(meta.DocumentType), titleWord(meta.Domain))
	doc.Blocks = append(doc.Blocks, textBlock(StyleBadge, badge))

	dateStr := a.Now().Format("January 2006")
	metaLine := fmt.Sprintf("Generated: %s • Est. Reading Time: %s", dateStr, meta.EstimatedReadingTime)
	doc.Blocks = append(doc.Blocks, textBlock(StyleMeta, metaLine), pageBreak())
}

func (a *Assembler) appendTOC(doc *Document, sections []OptimizedSection, flags DocumentFlowFlags) {
	doc.Blocks = append(doc.Blocks,
		textBlock(StyleSectionHeader, "Table of Contents"),
		spacer(gapMedium),
	)

	rows := make([][]string, 0, len(sections)+3)
	for _, entry := range EstimateTOC(sections, flags) {
		rows = append(rows, []string{entry.Title, pageLabel(entry.Page)})
	}
	doc.Blocks = append(doc.Blocks, RenderBlock{
		Kind:  BlockTable,
		Style: StyleTOCEntry,
		Table: &TableData{Rows: rows},
	}, pageBreak())
}

func (a *Assembler) appendExecutiveSummary(doc *Document, intel *intelligence.DocumentIntelligence, planContent string) {
	doc.Blocks = append(doc.Blocks, textBlock(StyleSectionHeader, "Executive Summary"))

	summary := strings.TrimSpace(planContent)
	if summary == "" {
		summary = strings.TrimSpace(intel.ContentIntelligence.ExecutiveSummary)
	}
	if summary != "" {
		doc.Blocks = append(doc.Blocks, textBlock(StyleExecutiveSummary, summary))
	}

	insights := intel.ContentIntelligence.KeyInsights
	if len(insights) > 0 {
		doc.Blocks = append(doc.Blocks, textBlock(StyleSubsectionHeader, "Key Findings"))
		if len(insights) > 5 {
			insights = insights[:5]
		}
		for _, insight := range insights {
			doc.Blocks = append(doc.Blocks, textBlock(StyleKeyPoint, "• "+insight))
		}
	}
	doc.Blocks = append(doc.Blocks, spacer(gapLarge))
}

func (a *Assembler) appendMainSections(doc *Document, intel *intelligence.DocumentIntelligence, sections []OptimizedSection, plan *intelligence.LayoutPlan) {
	breaks := ForcedBreaks(plan.PageOptimization.OptimalPageBreaks)
	domain := intel.DocumentMeta.Domain

	for i, section := range sections {
		opt := section.Optimization
		doc.Blocks = append(doc.Blocks, textBlock(StyleSectionHeader, opt.EnhancedHeader))

		if summary := strings.TrimSpace(opt.ContentStructure.ExecutiveSummary); summary != "" {
			doc.Blocks = append(doc.Blocks, textBlock(StyleExecutiveSummary, summary), spacer(gapSmall))
		}

		if table := BuildTable(opt.ContentStructure.DataExtracted); table != nil {
			doc.Blocks = append(doc.Blocks, *table, spacer(gapSmall))
		}

		for _, sub := range opt.ContentStructure.Subsections {
			if strings.TrimSpace(sub.Subheader) != "" {
				doc.Blocks = append(doc.Blocks, textBlock(StyleSubsectionHeader, sub.Subheader))
			}
			for _, chunk := range ChunkContent(sub.Content, a.ChunkLimit) {
				body := ApplyEmphasis(chunk, opt.FormattingEnhancements.TextEmphasis, domain)
				doc.Blocks = append(doc.Blocks, textBlock(StyleBody, body))
			}
		}

		if points := opt.ContentStructure.KeyPoints; len(points) > 0 {
			doc.Blocks = append(doc.Blocks, textBlock(StyleSubsectionHeader, "Key Points:"))
			for _, point := range points {
				doc.Blocks = append(doc.Blocks, textBlock(StyleKeyPoint, "• "+point))
			}
		}

		if chart := BuildChart(opt.VisualizationData); chart != nil {
			doc.Blocks = append(doc.Blocks, *chart, spacer(gapSmall))
		}

		doc.Blocks = append(doc.Blocks, spacer(gapLarge))
		if breaks[i] {
			doc.Blocks = append(doc.Blocks, pageBreak())
		}
	}
}

func (a *Assembler) appendRecommendations(doc *Document, planned []string) {
	doc.Blocks = append(doc.Blocks, pageBreak(), textBlock(StyleSectionHeader, "Recommendations"))

	recs := make([]string, 0, len(planned))
	for _, r := range planned {
		if strings.TrimSpace(r) != "" {
			recs = append(recs, strings.TrimSpace(r))
		}
	}
	if len(recs) == 0 {
		recs = fallbackRecommendations
	}
	for i, rec := range recs {
		doc.Blocks = append(doc.Blocks,
			textBlock(StyleKeyPoint, fmt.Sprintf("%d. %s", i+1, rec)),
			spacer(gapSmall),
		)
	}
}

func (a *Assembler) appendAppendix(doc *Document, intel *intelligence.DocumentIntelligence) {
	doc.Blocks = append(doc.Blocks, pageBreak(), textBlock(StyleSectionHeader, "Appendix"))

	doc.Blocks = append(doc.Blocks,
		textBlock(StyleSubsectionHeader, "A. Data Sources and Methodology"),
		textBlock(StyleBody,
			"This analysis utilized AI-assisted content processing to extract, analyze, and synthesize "+
				"information from the provided source materials. Natural language processing techniques identified "+
				"key metrics, trends, and insights while maintaining accuracy and context."),
		spacer(gapSmall),
	)

	doc.Blocks = append(doc.Blocks,
		textBlock(StyleSubsectionHeader, "B. Technical Specifications"),
		textBlock(StyleBody, fmt.Sprintf(
			"Document classification: %s domain, %s complexity level. "+
				"Content optimization applied model-driven analysis for structure, flow, and presentation enhancement. "+
				"Data visualization recommendations are based on contextual content analysis.",
			titleWord(intel.DocumentMeta.Domain), intel.DocumentMeta.ComplexityLevel)),
		spacer(gapSmall),
	)

	doc.Blocks = append(doc.Blocks,
		textBlock(StyleSubsectionHeader, "C. Quality Assurance"),
		textBlock(StyleBody,
			"Content accuracy verified through cross-referencing and consistency checks. "+
				"Professional formatting standards applied throughout. Data visualization and "+
				"emphasis recommendations generated based on content significance analysis."),
	)
}
