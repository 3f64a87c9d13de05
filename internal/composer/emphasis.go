package composer

import (
	"regexp"
	"strings"

	"reportforge/internal/intelligence"
)

var percentToken = regexp.MustCompile(`(\d+(?:\.\d+)?%)`)

// domainTerms maps a document domain to the one term that is always
// italicized in body text for that domain.
var domainTerms = map[string]string{
	"medical":    "TR Band",
	"business":   "KPI",
	"technology": "API",
	"finance":    "ROI",
	"legal":      "compliance",
	"research":   "p-value",
	"marketing":  "CTR",
}

// ApplyEmphasis applies explicit emphasis instructions first, then the two
// fixed automatic rules: percentage tokens are bolded and the domain term is
// italicized. An instruction whose target text does not occur in the content
// is a no-op. Output uses inline <b>/<i>/<u> markup consumed by renderers.
func ApplyEmphasis(content string, instructions []intelligence.TextEmphasis, domain string) string {
	enhanced := content

	for _, instr := range instructions {
		if instr.Text == "" || !strings.Contains(enhanced, instr.Text) {
			continue
		}
		switch instr.Format {
		case "bold":
			enhanced = strings.ReplaceAll(enhanced, instr.Text, "<b>"+instr.Text+"</b>")
		case "italic":
			enhanced = strings.ReplaceAll(enhanced, instr.Text, "<i>"+instr.Text+"</i>")
		case "underline":
			enhanced = strings.ReplaceAll(enhanced, instr.Text, "<u>"+instr.Text+"</u>")
		}
	}

	enhanced = percentToken.ReplaceAllString(enhanced, "<b>$1</b>")
	if term := domainTerms[domain]; term != "" {
		re, err := regexp.Compile(`\b(` + regexp.QuoteMeta(term) + `)\b`)
		if err == nil {
			enhanced = re.ReplaceAllString(enhanced, "<i>$1</i>")
		}
	}
	return enhanced
}
