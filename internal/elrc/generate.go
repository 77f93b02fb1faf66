package elrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

// GenerateTTML renders parsed ELRC lyrics as a TTML document. Spans are
// emitted back to back with no whitespace between them, so converting the
// result does not invent word breaks.
func GenerateTTML(meta Metadata, lines []Line) []byte {
	var lastEnd float64
	var firstBegin float64
	for _, line := range lines {
		if len(line.Words) == 0 {
			continue
		}
		if firstBegin == 0 || line.Words[0].Begin < firstBegin {
			firstBegin = line.Words[0].Begin
		}
		if end := line.Words[len(line.Words)-1].End; end > lastEnd {
			lastEnd = end
		}
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString(`<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttm="http://www.w3.org/ns/ttml#metadata" xmlns:amll="http://www.example.com/ns/amll" xmlns:itunes="http://music.apple.com/lyric-ttml-internal">` + "\n")
	sb.WriteString("  <head>\n")
	sb.WriteString("    <metadata>\n")
	sb.WriteString(`      <ttm:agent type="person" xml:id="v1"/>` + "\n")
	sb.WriteString(`      <ttm:agent type="person" xml:id="v2"/>` + "\n")
	sb.WriteString("    </metadata>\n")
	sb.WriteString("  </head>\n")
	sb.WriteString(fmt.Sprintf("  <body dur=%q>\n", ttml.FormatClock(lastEnd)))
	sb.WriteString(fmt.Sprintf("    <div begin=%q end=%q>\n",
		ttml.FormatClock(firstBegin), ttml.FormatClock(lastEnd)))

	key := 0
	for _, line := range lines {
		if len(line.Words) == 0 {
			continue
		}
		key++

		begin := line.Words[0].Begin
		end := line.Words[len(line.Words)-1].End
		sb.WriteString(fmt.Sprintf("      <p begin=%q end=%q",
			ttml.FormatClock(begin), ttml.FormatClock(end)))
		if line.Agent != "" {
			sb.WriteString(fmt.Sprintf(" ttm:agent=%q", line.Agent))
		}
		if line.Role != "" {
			sb.WriteString(fmt.Sprintf(" ttm:role=%q", line.Role))
		}
		sb.WriteString(fmt.Sprintf(" itunes:key=\"L%d\">", key))

		for _, word := range line.Words {
			sb.WriteString(fmt.Sprintf("<span begin=%q end=%q>%s</span>",
				ttml.FormatClock(word.Begin),
				ttml.FormatClock(word.End),
				escapeText(word.Text)))
		}
		sb.WriteString("</p>\n")
	}

	sb.WriteString("    </div>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</tt>\n")
	return []byte(sb.String())
}

// WriteTTML generates and writes the TTML document to path.
func WriteTTML(meta Metadata, lines []Line, path string) error {
	if err := os.WriteFile(path, GenerateTTML(meta, lines), 0644); err != nil {
		return fmt.Errorf("failed to write TTML file: %w", err)
	}
	return nil
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
