package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PromptBuilder constructs standardized prompts for the three oracle phases.
type PromptBuilder struct{}

const jsonInstruction = "\nRespond with a single valid JSON object and nothing else. No prose, no code fences.\n"

const contentPreviewLimit = 300

type sectionPreview struct {
	Index          int    `json:"index"`
	Header         string `json:"header"`
	ContentLength  int    `json:"content_length"`
	ContentPreview string `json:"content_preview"`
}

// BuildAnalysisPrompt prepares the document analysis request: section count
// plus a truncated preview per section.
func (pb *PromptBuilder) BuildAnalysisPrompt(sections []Section) string {
	previews := make([]sectionPreview, 0, len(sections))
	totalLength := 0
	for i, s := range sections {
		preview := s.Content
		if len(preview) > contentPreviewLimit {
			preview = preview[:contentPreviewLimit] + "..."
		}
		previews = append(previews, sectionPreview{
			Index:          i,
			Header:         s.Header,
			ContentLength:  len(s.Content),
			ContentPreview: preview,
		})
		totalLength += len(s.Content)
	}
	overview, _ := json.MarshalIndent(previews, "", "  ")

	var sb strings.Builder
	sb.WriteString("Role: Document intelligence analyst. Task: Analyze this document and provide comprehensive intelligence for professional document generation.\n\n")
	fmt.Fprintf(&sb, "Document Overview:\n- Total sections: %d\n- Total content length: %d characters\n- Content preview: %s\n", len(sections), totalLength, overview)
	sb.WriteString(`
Provide a JSON object with this shape:
{
  "document_meta": {
    "title": "Professional document title (max 60 chars)",
    "subtitle": "Descriptive subtitle (max 80 chars)",
    "domain": "medical|business|technology|finance|legal|research|marketing|other",
    "document_type": "report|analysis|study|guide|manual|proposal|review",
    "complexity_level": "basic|intermediate|advanced|expert",
    "target_audience": "executives|specialists|general|technical",
    "estimated_reading_time": "time in minutes"
  },
  "content_intelligence": {
    "main_themes": ["primary themes identified"],
    "key_insights": ["top 5 most important insights"],
    "critical_data_points": [
      {"metric": "name", "value": "extracted value", "importance": "high|medium|low", "context": "explanation"}
    ],
    "executive_summary": "2-3 sentence comprehensive summary"
  },
  "structure_optimization": {
    "optimal_section_order": [0, 1, 2],
    "section_groupings": [{"group_name": "Introduction", "sections": [0, 1]}],
    "page_break_recommendations": [1, 3],
    "flow_improvements": ["specific suggestions for better flow"]
  },
  "formatting_intelligence": {
    "header_enhancements": [{"original": "section header", "enhanced": "improved professional header", "reasoning": "why"}],
    "emphasis_recommendations": [{"text_pattern": "text to emphasize", "format": "bold|italic|underline", "reason": "why"}],
    "visualization_opportunities": [{"section_index": 0, "type": "table|chart|graph", "data": "what to visualize", "title": "chart title"}]
  },
  "quality_enhancements": {
    "readability_score": "1-10",
    "content_gaps": [],
    "redundancy_removal": [],
    "clarity_improvements": []
  },
  "design_system": {
    "color_palette": {"primary": "#hex", "secondary": "#hex", "accent": "#hex", "neutral": "#hex"},
    "typography_hierarchy": {"h1_size": 16, "h2_size": 12, "body_size": 10},
    "layout_strategy": "single_column|two_column|mixed",
    "visual_weight": "light|medium|heavy"
  }
}
`)
	sb.WriteString(jsonInstruction)
	return sb.String()
}

// BuildOptimizationPrompt prepares a per-section optimization request.
func (pb *PromptBuilder) BuildOptimizationPrompt(section Section, docCtx DocContext) string {
	content := section.Content
	if len(content) > 1000 {
		content = content[:1000] + "..."
	}

	var sb strings.Builder
	sb.WriteString("Role: Content optimizer. Task: Optimize this section for professional document presentation while maintaining accuracy.\n\n")
	fmt.Fprintf(&sb, "Original Header: %s\nContent Length: %d characters\nContent: %s\n\n", section.Header, len(section.Content), content)
	fmt.Fprintf(&sb, "Document Context:\n- Domain: %s\n- Target Audience: %s\n- Document Type: %s\n", docCtx.Domain, docCtx.TargetAudience, docCtx.DocumentType)
	sb.WriteString(`
Provide a JSON object with this shape:
{
  "enhanced_header": "Professional, concise header (max 80 chars)",
  "content_structure": {
    "executive_summary": "2-3 sentence section summary",
    "key_points": ["3-5 most important points"],
    "data_extracted": [{"metric": "name", "value": "number/percentage", "importance": "high|medium|low", "context": "brief context"}],
    "subsections": [{"subheader": "subsection title", "content": "key content", "emphasis": "normal|important|critical"}]
  },
  "formatting_enhancements": {
    "text_emphasis": [{"text": "text to emphasize", "format": "bold|italic|underline"}],
    "remove_redundancy": [],
    "clarity_improvements": []
  },
  "visualization_data": {
    "has_visualizable_data": false,
    "chart_type": "table|bar|pie|line|none",
    "chart_title": "descriptive title",
    "data_points": [{"label": "data label", "value": "numeric value"}]
  }
}
`)
	sb.WriteString(jsonInstruction)
	return sb.String()
}

// BuildLayoutPrompt prepares the layout optimization request from document
// meta and the enhanced header list.
func (pb *PromptBuilder) BuildLayoutPrompt(intel *DocumentIntelligence, headers []string) string {
	type headerEntry struct {
		Index  int    `json:"index"`
		Header string `json:"header"`
	}
	entries := make([]headerEntry, 0, len(headers))
	for i, h := range headers {
		entries = append(entries, headerEntry{Index: i, Header: h})
	}
	overview, _ := json.MarshalIndent(entries, "", "  ")

	var sb strings.Builder
	sb.WriteString("Role: Document layout designer. Task: Optimize the layout and flow for this professional document.\n\n")
	fmt.Fprintf(&sb, "Document Info:\n- Title: %s\n- Type: %s\n- Complexity: %s\n- Sections: %d\n\nSection Overview:\n%s\n",
		intel.DocumentMeta.Title, intel.DocumentMeta.DocumentType, intel.DocumentMeta.ComplexityLevel, len(headers), overview)
	sb.WriteString(`
Provide a JSON object with this shape:
{
  "document_flow": {
    "title_page": {"include": true, "elements": ["title", "subtitle", "date", "domain_badge"]},
    "executive_summary": {"include": true, "position": "after_toc", "content": "synthesized executive summary"},
    "table_of_contents": {"include": true, "style": "professional", "include_page_numbers": true, "max_depth": 2},
    "main_sections": [{"section_index": 0, "page_break_before": false, "emphasis_level": "high"}],
    "conclusions": {"include": true, "type": "recommendations", "content": ["synthesized recommendations"]},
    "appendix": {"include": true, "sections": ["methodology", "data_sources", "additional_resources"]}
  },
  "layout_specifications": {
    "margins": {"left": 36, "right": 36, "top": 50, "bottom": 50},
    "column_layout": "single",
    "paragraph_spacing": {"before": 6, "after": 8},
    "section_spacing": {"before": 20, "after": 16}
  },
  "visual_hierarchy": {
    "h1_style": "title",
    "h2_style": "section_header",
    "h3_style": "subsection_header",
    "emphasis_rules": [{"content_type": "metric", "format": "bold"}]
  },
  "page_optimization": {
    "prevent_orphans": true,
    "keep_tables_together": true,
    "optimal_page_breaks": [2, 4],
    "section_continuity": true
  }
}
`)
	sb.WriteString(jsonInstruction)
	return sb.String()
}
