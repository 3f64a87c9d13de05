package intelligence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Default design system values applied whenever the oracle omits them.
const (
	DefaultPrimaryColor   = "#2E4053"
	DefaultSecondaryColor = "#5DADE2"
	DefaultAccentColor    = "#F39C12"
	DefaultNeutralColor   = "#F8F9FA"
	DefaultTextColor      = "#2C3E50"

	DefaultH1Size   = 16
	DefaultH2Size   = 12
	DefaultBodySize = 10

	maxEnhancedHeaderLen = 80
)

var knownDomains = map[string]bool{
	"medical": true, "business": true, "technology": true, "finance": true,
	"legal": true, "research": true, "marketing": true, "other": true,
}

// DocumentMeta describes the document as a whole.
type DocumentMeta struct {
	Title                string `json:"title"`
	Subtitle             string `json:"subtitle"`
	Domain               string `json:"domain"`
	DocumentType         string `json:"document_type"`
	ComplexityLevel      string `json:"complexity_level"`
	TargetAudience       string `json:"target_audience"`
	EstimatedReadingTime string `json:"estimated_reading_time"`
}

// DataPoint is one extracted metric with display context.
type DataPoint struct {
	Metric     string `json:"metric"`
	Value      string `json:"value"`
	Importance string `json:"importance"`
	Context    string `json:"context"`
}

type ContentIntelligence struct {
	MainThemes         []string    `json:"main_themes"`
	KeyInsights        []string    `json:"key_insights"`
	CriticalDataPoints []DataPoint `json:"critical_data_points"`
	ExecutiveSummary   string      `json:"executive_summary"`
}

type SectionGrouping struct {
	GroupName string `json:"group_name"`
	Sections  []int  `json:"sections"`
}

type StructureOptimization struct {
	OptimalSectionOrder      []int             `json:"optimal_section_order"`
	SectionGroupings         []SectionGrouping `json:"section_groupings"`
	PageBreakRecommendations []int             `json:"page_break_recommendations"`
	FlowImprovements         []string          `json:"flow_improvements"`
}

type HeaderEnhancement struct {
	Original  string `json:"original"`
	Enhanced  string `json:"enhanced"`
	Reasoning string `json:"reasoning"`
}

type EmphasisRecommendation struct {
	TextPattern string `json:"text_pattern"`
	Format      string `json:"format"`
	Reason      string `json:"reason"`
}

type VisualizationOpportunity struct {
	SectionIndex int    `json:"section_index"`
	Type         string `json:"type"`
	Data         string `json:"data"`
	Title        string `json:"title"`
}

type FormattingIntelligence struct {
	HeaderEnhancements         []HeaderEnhancement        `json:"header_enhancements"`
	EmphasisRecommendations    []EmphasisRecommendation   `json:"emphasis_recommendations"`
	VisualizationOpportunities []VisualizationOpportunity `json:"visualization_opportunities"`
}

type QualityEnhancements struct {
	ReadabilityScore    string   `json:"readability_score"`
	ContentGaps         []string `json:"content_gaps"`
	RedundancyRemoval   []string `json:"redundancy_removal"`
	ClarityImprovements []string `json:"clarity_improvements"`
}

type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Neutral   string `json:"neutral"`
}

type TypographyHierarchy struct {
	H1Size   float64 `json:"h1_size"`
	H2Size   float64 `json:"h2_size"`
	BodySize float64 `json:"body_size"`
}

type DesignSystem struct {
	ColorPalette        ColorPalette        `json:"color_palette"`
	TypographyHierarchy TypographyHierarchy `json:"typography_hierarchy"`
	LayoutStrategy      string              `json:"layout_strategy"`
	VisualWeight        string              `json:"visual_weight"`
}

// DocumentIntelligence is the analysis phase result. Immutable after Normalize.
type DocumentIntelligence struct {
	DocumentMeta           DocumentMeta           `json:"document_meta"`
	ContentIntelligence    ContentIntelligence    `json:"content_intelligence"`
	StructureOptimization  StructureOptimization  `json:"structure_optimization"`
	FormattingIntelligence FormattingIntelligence `json:"formatting_intelligence"`
	QualityEnhancements    QualityEnhancements    `json:"quality_enhancements"`
	DesignSystem           DesignSystem           `json:"design_system"`
}

// Subsection is one titled body unit within an optimized section.
type Subsection struct {
	Subheader string `json:"subheader"`
	Content   string `json:"content"`
	Emphasis  string `json:"emphasis"`
}

type ContentStructure struct {
	ExecutiveSummary string       `json:"executive_summary"`
	KeyPoints        []string     `json:"key_points"`
	DataExtracted    []DataPoint  `json:"data_extracted"`
	Subsections      []Subsection `json:"subsections"`
}

type TextEmphasis struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

type FormattingEnhancements struct {
	TextEmphasis        []TextEmphasis `json:"text_emphasis"`
	RemoveRedundancy    []string       `json:"remove_redundancy"`
	ClarityImprovements []string       `json:"clarity_improvements"`
}

type VizPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type VisualizationData struct {
	HasVisualizableData bool       `json:"has_visualizable_data"`
	ChartType           string     `json:"chart_type"`
	ChartTitle          string     `json:"chart_title"`
	DataPoints          []VizPoint `json:"data_points"`
}

// SectionOptimization is the per-section optimization phase result.
type SectionOptimization struct {
	EnhancedHeader         string                 `json:"enhanced_header"`
	ContentStructure       ContentStructure       `json:"content_structure"`
	FormattingEnhancements FormattingEnhancements `json:"formatting_enhancements"`
	VisualizationData      VisualizationData      `json:"visualization_data"`
}

// IncludeFlag distinguishes "explicitly false" from "absent"; absent means include.
type IncludeFlag struct {
	Include *bool `json:"include"`
}

func (f IncludeFlag) Enabled() bool {
	return f.Include == nil || *f.Include
}

type TitlePageFlow struct {
	IncludeFlag
	Elements []string `json:"elements"`
}

type ExecutiveSummaryFlow struct {
	IncludeFlag
	Position string `json:"position"`
	Content  string `json:"content"`
}

type TOCFlow struct {
	IncludeFlag
	Style              string `json:"style"`
	IncludePageNumbers bool   `json:"include_page_numbers"`
	MaxDepth           int    `json:"max_depth"`
}

type MainSectionFlow struct {
	SectionIndex    int    `json:"section_index"`
	PageBreakBefore bool   `json:"page_break_before"`
	EmphasisLevel   string `json:"emphasis_level"`
}

type ConclusionsFlow struct {
	IncludeFlag
	Type    string   `json:"type"`
	Content []string `json:"content"`
}

type AppendixFlow struct {
	IncludeFlag
	Sections []string `json:"sections"`
}

type DocumentFlow struct {
	TitlePage        TitlePageFlow        `json:"title_page"`
	ExecutiveSummary ExecutiveSummaryFlow `json:"executive_summary"`
	TableOfContents  TOCFlow              `json:"table_of_contents"`
	MainSections     []MainSectionFlow    `json:"main_sections"`
	Conclusions      ConclusionsFlow      `json:"conclusions"`
	Appendix         AppendixFlow         `json:"appendix"`
}

type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type SpacingRule struct {
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

type LayoutSpecifications struct {
	Margins          Margins     `json:"margins"`
	ColumnLayout     string      `json:"column_layout"`
	ParagraphSpacing SpacingRule `json:"paragraph_spacing"`
	SectionSpacing   SpacingRule `json:"section_spacing"`
}

type ContentEmphasisRule struct {
	ContentType string `json:"content_type"`
	Format      string `json:"format"`
}

type VisualHierarchy struct {
	H1Style       string                `json:"h1_style"`
	H2Style       string                `json:"h2_style"`
	H3Style       string                `json:"h3_style"`
	EmphasisRules []ContentEmphasisRule `json:"emphasis_rules"`
}

type PageOptimization struct {
	PreventOrphans     bool  `json:"prevent_orphans"`
	KeepTablesTogether bool  `json:"keep_tables_together"`
	OptimalPageBreaks  []int `json:"optimal_page_breaks"`
	SectionContinuity  bool  `json:"section_continuity"`
}

// LayoutPlan is the layout phase result.
type LayoutPlan struct {
	DocumentFlow         DocumentFlow         `json:"document_flow"`
	LayoutSpecifications LayoutSpecifications `json:"layout_specifications"`
	VisualHierarchy      VisualHierarchy      `json:"visual_hierarchy"`
	PageOptimization     PageOptimization     `json:"page_optimization"`
}

// decodeTolerant parses oracle JSON into out. Syntax errors and non-object
// payloads fail the phase; wrong-typed optional fields are dropped and
// decoding continues, per the contract's never-raise rule.
func decodeTolerant(raw string, out any) error {
	data := []byte(cleanJSONOutput(raw))
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("oracle payload is not a JSON object: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}
	}
	return nil
}

// DecodeIntelligence parses and normalizes an analysis phase payload.
func DecodeIntelligence(raw string) (*DocumentIntelligence, error) {
	var intel DocumentIntelligence
	if err := decodeTolerant(raw, &intel); err != nil {
		return nil, err
	}
	intel.Normalize()
	if err := validateContract(intelligenceSchema, &intel); err != nil {
		return nil, err
	}
	return &intel, nil
}

// DecodeOptimization parses and normalizes an optimization phase payload.
// The original header/content are supplied so missing fields fall back to
// verbatim input instead of empty output.
func DecodeOptimization(raw, header, content string) (*SectionOptimization, error) {
	var opt SectionOptimization
	if err := decodeTolerant(raw, &opt); err != nil {
		return nil, err
	}
	opt.Normalize(header, content)
	if err := validateContract(optimizationSchema, &opt); err != nil {
		return nil, err
	}
	return &opt, nil
}

// DecodeLayoutPlan parses and normalizes a layout phase payload.
func DecodeLayoutPlan(raw string) (*LayoutPlan, error) {
	var plan LayoutPlan
	if err := decodeTolerant(raw, &plan); err != nil {
		return nil, err
	}
	plan.Normalize()
	if err := validateContract(layoutSchema, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Normalize fills every optional field with its explicit default. After it
// returns, the intelligence object is schema-complete and treated as immutable.
func (d *DocumentIntelligence) Normalize() {
	m := &d.DocumentMeta
	if strings.TrimSpace(m.Title) == "" {
		m.Title = "Professional Analysis Report"
	}
	if !knownDomains[strings.ToLower(strings.TrimSpace(m.Domain))] {
		m.Domain = "other"
	} else {
		m.Domain = strings.ToLower(strings.TrimSpace(m.Domain))
	}
	if strings.TrimSpace(m.DocumentType) == "" {
		m.DocumentType = "report"
	}
	if strings.TrimSpace(m.ComplexityLevel) == "" {
		m.ComplexityLevel = "intermediate"
	}
	if strings.TrimSpace(m.TargetAudience) == "" {
		m.TargetAudience = "general"
	}
	if strings.TrimSpace(m.EstimatedReadingTime) == "" {
		m.EstimatedReadingTime = "10 minutes"
	}

	if d.ContentIntelligence.MainThemes == nil {
		d.ContentIntelligence.MainThemes = []string{}
	}
	if d.ContentIntelligence.KeyInsights == nil {
		d.ContentIntelligence.KeyInsights = []string{}
	}
	if d.ContentIntelligence.CriticalDataPoints == nil {
		d.ContentIntelligence.CriticalDataPoints = []DataPoint{}
	}
	if d.StructureOptimization.OptimalSectionOrder == nil {
		d.StructureOptimization.OptimalSectionOrder = []int{}
	}
	if d.StructureOptimization.PageBreakRecommendations == nil {
		d.StructureOptimization.PageBreakRecommendations = []int{}
	}

	p := &d.DesignSystem.ColorPalette
	p.Primary = defaultHex(p.Primary, DefaultPrimaryColor)
	p.Secondary = defaultHex(p.Secondary, DefaultSecondaryColor)
	p.Accent = defaultHex(p.Accent, DefaultAccentColor)
	p.Neutral = defaultHex(p.Neutral, DefaultNeutralColor)

	t := &d.DesignSystem.TypographyHierarchy
	if t.H1Size <= 0 {
		t.H1Size = DefaultH1Size
	}
	if t.H2Size <= 0 {
		t.H2Size = DefaultH2Size
	}
	if t.BodySize <= 0 {
		t.BodySize = DefaultBodySize
	}
	if strings.TrimSpace(d.DesignSystem.LayoutStrategy) == "" {
		d.DesignSystem.LayoutStrategy = "single_column"
	}
	if strings.TrimSpace(d.DesignSystem.VisualWeight) == "" {
		d.DesignSystem.VisualWeight = "medium"
	}
}

// Normalize fills optimization defaults from the original section input.
func (o *SectionOptimization) Normalize(header, content string) {
	if strings.TrimSpace(o.EnhancedHeader) == "" {
		o.EnhancedHeader = header
	}
	if r := []rune(o.EnhancedHeader); len(r) > maxEnhancedHeaderLen {
		o.EnhancedHeader = strings.TrimSpace(string(r[:maxEnhancedHeaderLen]))
	}
	if o.ContentStructure.KeyPoints == nil {
		o.ContentStructure.KeyPoints = []string{}
	}
	if o.ContentStructure.DataExtracted == nil {
		o.ContentStructure.DataExtracted = []DataPoint{}
	}
	if len(o.ContentStructure.Subsections) == 0 {
		o.ContentStructure.Subsections = []Subsection{{Content: content, Emphasis: "normal"}}
	}
	if o.FormattingEnhancements.TextEmphasis == nil {
		o.FormattingEnhancements.TextEmphasis = []TextEmphasis{}
	}
	switch o.VisualizationData.ChartType {
	case "bar", "pie", "table", "line":
	default:
		o.VisualizationData.ChartType = "none"
	}
	if o.VisualizationData.DataPoints == nil {
		o.VisualizationData.DataPoints = []VizPoint{}
	}
}

// Normalize fills layout plan defaults. Absent include flags stay nil and
// read as enabled via IncludeFlag.Enabled.
func (p *LayoutPlan) Normalize() {
	mg := &p.LayoutSpecifications.Margins
	if mg.Left <= 0 {
		mg.Left = 36
	}
	if mg.Right <= 0 {
		mg.Right = 36
	}
	if mg.Top <= 0 {
		mg.Top = 50
	}
	if mg.Bottom <= 0 {
		mg.Bottom = 50
	}
	if strings.TrimSpace(p.LayoutSpecifications.ColumnLayout) == "" {
		p.LayoutSpecifications.ColumnLayout = "single"
	}
	if p.PageOptimization.OptimalPageBreaks == nil {
		p.PageOptimization.OptimalPageBreaks = []int{}
	}
	if p.DocumentFlow.Conclusions.Content == nil {
		p.DocumentFlow.Conclusions.Content = []string{}
	}
	if len(p.DocumentFlow.Appendix.Sections) == 0 {
		p.DocumentFlow.Appendix.Sections = []string{"methodology", "technical_specifications", "quality_assurance"}
	}
}

func defaultHex(value, fallback string) string {
	v := strings.TrimSpace(value)
	if len(v) != 7 || !strings.HasPrefix(v, "#") {
		return fallback
	}
	return v
}
