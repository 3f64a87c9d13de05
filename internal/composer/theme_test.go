package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reportforge/internal/intelligence"
)

func normalizedDesign() intelligence.DesignSystem {
	var intel intelligence.DocumentIntelligence
	intel.Normalize()
	return intel.DesignSystem
}

func TestResolveTheme_Defaults(t *testing.T) {
	styles := ResolveTheme(normalizedDesign())

	assert.Equal(t, intelligence.DefaultPrimaryColor, styles.Palette.Primary)
	assert.Equal(t, intelligence.DefaultTextColor, styles.Palette.Text)

	title := styles.ByName(StyleDocumentTitle)
	assert.Equal(t, 24.0, title.FontSize)
	assert.True(t, title.Bold)
	assert.Equal(t, intelligence.DefaultPrimaryColor, title.Color)

	header := styles.ByName(StyleSectionHeader)
	assert.Equal(t, float64(intelligence.DefaultH1Size), header.FontSize)
	assert.Equal(t, intelligence.DefaultNeutralColor, header.Background)

	body := styles.ByName(StyleBody)
	assert.Equal(t, float64(intelligence.DefaultBodySize), body.FontSize)
	assert.Equal(t, "J", body.Align)
}

func TestResolveTheme_AppliesDesignOverrides(t *testing.T) {
	design := normalizedDesign()
	design.ColorPalette.Primary = "#112233"
	design.TypographyHierarchy.H1Size = 20

	styles := ResolveTheme(design)

	assert.Equal(t, "#112233", styles.Palette.Primary)
	assert.Equal(t, "#112233", styles.ByName(StyleDocumentTitle).Color)
	assert.Equal(t, 20.0, styles.ByName(StyleSectionHeader).FontSize)
}

func TestResolveTheme_FreshPerCall(t *testing.T) {
	first := ResolveTheme(normalizedDesign())

	design := normalizedDesign()
	design.ColorPalette.Primary = "#FF0000"
	second := ResolveTheme(design)

	assert.NotEqual(t, first.ByName(StyleDocumentTitle).Color, second.ByName(StyleDocumentTitle).Color)
	assert.Equal(t, intelligence.DefaultPrimaryColor, first.ByName(StyleDocumentTitle).Color)
}

func TestStyleSet_UnknownNameFallsBackToBody(t *testing.T) {
	styles := ResolveTheme(normalizedDesign())
	assert.Equal(t, styles.ByName(StyleBody), styles.ByName("NoSuchStyle"))
}
