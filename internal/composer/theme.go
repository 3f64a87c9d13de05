package composer

import "reportforge/internal/intelligence"

// Style names used by assembler blocks and renderer lookups.
const (
	StyleDocumentTitle    = "DocumentTitle"
	StyleSubtitle         = "Subtitle"
	StyleBadge            = "Badge"
	StyleMeta             = "Meta"
	StyleSectionHeader    = "SectionHeader"
	StyleSubsectionHeader = "SubsectionHeader"
	StyleBody             = "Body"
	StyleExecutiveSummary = "ExecutiveSummary"
	StyleKeyPoint         = "KeyPoint"
	StyleTOCEntry         = "TOCEntry"
)

// Style holds the renderer-facing attributes of one named text style.
type Style struct {
	FontSize    float64
	Bold        bool
	Italic      bool
	Color       string // hex text color
	Background  string // hex fill color, empty for none
	Align       string // "L", "C", or "J"
	SpaceBefore float64
	SpaceAfter  float64
	Indent      float64
	LineSpacing float64 // multiple of font size; 0 means renderer default
}

// Palette carries the resolved document colors for non-text drawing.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Neutral   string
	Text      string
}

// StyleSet is the immutable per-request style registry. ResolveTheme returns
// a fresh value every call; nothing here is shared or mutated afterwards, so
// concurrent generation requests cannot race on style state.
type StyleSet struct {
	Palette Palette
	styles  map[string]Style
}

// ByName returns the named style, or the body style for unknown names.
func (s StyleSet) ByName(name string) Style {
	if st, ok := s.styles[name]; ok {
		return st
	}
	return s.styles[StyleBody]
}

// ResolveTheme builds a StyleSet from a normalized design system. Any value
// present in the design system overrides the built-in default; the built-ins
// themselves are never mutated.
func ResolveTheme(design intelligence.DesignSystem) StyleSet {
	palette := Palette{
		Primary:   design.ColorPalette.Primary,
		Secondary: design.ColorPalette.Secondary,
		Accent:    design.ColorPalette.Accent,
		Neutral:   design.ColorPalette.Neutral,
		Text:      intelligence.DefaultTextColor,
	}
	typ := design.TypographyHierarchy

	styles := map[string]Style{
		StyleDocumentTitle: {
			FontSize: 24, Bold: true, Color: palette.Primary, Align: "C",
			SpaceBefore: 50, SpaceAfter: 20,
		},
		StyleSubtitle: {
			FontSize: 14, Color: palette.Secondary, Align: "C", SpaceAfter: 30,
		},
		StyleBadge: {
			FontSize: 12, Color: palette.Accent, Align: "C", SpaceAfter: 50,
		},
		StyleMeta: {
			FontSize: 10, Color: palette.Text, Align: "C", SpaceAfter: 100,
		},
		StyleSectionHeader: {
			FontSize: typ.H1Size, Bold: true, Color: palette.Primary,
			Background: palette.Neutral, Align: "L",
			SpaceBefore: 20, SpaceAfter: 12,
		},
		StyleSubsectionHeader: {
			FontSize: typ.H2Size, Bold: true, Color: palette.Secondary, Align: "L",
			SpaceBefore: 12, SpaceAfter: 8, Indent: 10,
		},
		StyleBody: {
			FontSize: typ.BodySize, Color: palette.Text, Align: "J",
			SpaceBefore: 3, SpaceAfter: 6, LineSpacing: 1.4,
		},
		StyleExecutiveSummary: {
			FontSize: 11, Color: palette.Text, Background: "#FAFBFC", Align: "J",
			SpaceBefore: 8, SpaceAfter: 10, Indent: 15, LineSpacing: 1.45,
		},
		StyleKeyPoint: {
			FontSize: 10, Bold: true, Color: palette.Text, Align: "L",
			SpaceBefore: 3, SpaceAfter: 5, Indent: 20,
		},
		StyleTOCEntry: {
			FontSize: 11, Color: palette.Text, Align: "L", SpaceAfter: 3,
		},
	}

	return StyleSet{Palette: palette, styles: styles}
}
