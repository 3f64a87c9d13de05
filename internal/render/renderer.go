// Package render turns assembled documents into byte artifacts. The pipeline
// depends only on the Renderer interface; the byte format is owned here.
package render

import (
	"strconv"
	"strings"

	"reportforge/internal/composer"
)

// Renderer produces the final document bytes from an assembled block sequence.
type Renderer interface {
	Render(doc *composer.Document) ([]byte, error)
}

var _ Renderer = (*PDFRenderer)(nil)
var _ Renderer = (*TextRenderer)(nil)

// hexToRGB parses "#RRGGBB" into components, black for malformed input.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseInt(hex[0:2], 16, 32)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 32)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}

type markupRun struct {
	text      string
	bold      bool
	italic    bool
	underline bool
}

// parseMarkup splits inline <b>/<i>/<u> markup into styled runs. Unknown or
// unbalanced tags degrade to literal text runs rather than erroring.
func parseMarkup(text string) []markupRun {
	var runs []markupRun
	var cur markupRun
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			cur.text = buf.String()
			runs = append(runs, cur)
			buf.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] == '<' {
			if tag, open, width := matchTag(text[i:]); width > 0 {
				flush()
				switch tag {
				case 'b':
					cur.bold = open
				case 'i':
					cur.italic = open
				case 'u':
					cur.underline = open
				}
				i += width
				continue
			}
		}
		buf.WriteByte(text[i])
		i++
	}
	flush()
	return runs
}

func matchTag(s string) (tag byte, open bool, width int) {
	if strings.HasPrefix(s, "<b>") || strings.HasPrefix(s, "<i>") || strings.HasPrefix(s, "<u>") {
		return s[1], true, 3
	}
	if strings.HasPrefix(s, "</b>") || strings.HasPrefix(s, "</i>") || strings.HasPrefix(s, "</u>") {
		return s[2], false, 4
	}
	return 0, false, 0
}

// stripMarkup removes inline emphasis tags for plain-text contexts.
func stripMarkup(text string) string {
	replacer := strings.NewReplacer(
		"<b>", "", "</b>", "",
		"<i>", "", "</i>", "",
		"<u>", "", "</u>", "",
	)
	return replacer.Replace(text)
}
