package composer

import (
	"regexp"
	"strings"
)

// DefaultChunkLimit is the soft maximum length of one body paragraph.
const DefaultChunkLimit = 1000

var blankLineSplit = regexp.MustCompile(`\n\s*\n`)

// ChunkContent splits content into readable paragraph units no longer than
// limit, except when a single sentence alone exceeds it. Paragraph boundaries
// (blank lines) are honored first; oversized paragraphs are repacked at
// sentence boundaries. Empty units are dropped.
func ChunkContent(content string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}

	var chunks []string
	for _, para := range blankLineSplit.Split(content, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= limit {
			chunks = append(chunks, para)
			continue
		}
		chunks = append(chunks, packSentences(para, limit)...)
	}
	return chunks
}

// packSentences greedily accumulates sentences into buffers under limit. A
// sentence longer than the limit becomes its own chunk, unsplit.
func packSentences(text string, limit int) []string {
	sentences := strings.SplitAfter(text, ". ")

	var out []string
	var buf strings.Builder
	for _, sentence := range sentences {
		if sentence == "" {
			continue
		}
		if buf.Len() > 0 && buf.Len()+len(sentence) > limit {
			out = append(out, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
		buf.WriteString(sentence)
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		out = append(out, s)
	}
	return out
}
