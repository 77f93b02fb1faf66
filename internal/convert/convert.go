// Package convert projects a parsed TTML document into its JSON
// representation. The projection is structural: timings are parsed to
// seconds, x-roman attributes become roman fields, ttm:role values become
// role fields, and no text is altered or regenerated.
//
// The JSON schema is:
//
//	{
//	  "metadata": {"agents": [{"id","type"}], "artist", "title", "sourceFile"},
//	  "duration": seconds or null,
//	  "lines": [{
//	    "begin", "end", "text", "roman"?, "agent"?, "key"?,
//	    "words": [{"text","begin","end","role"?,"roman"?,"spaceAfter"?}],
//	    "backgroundVocal": {"text","roman"?,"words":[...]}?,
//	    "translation"?
//	  }],
//	  "totalLines": n
//	}
package convert

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"

	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

// Song is the converted document.
type Song struct {
	Metadata   Metadata `json:"metadata"`
	Duration   *float64 `json:"duration"`
	Lines      []Line   `json:"lines"`
	TotalLines int      `json:"totalLines"`
}

// Metadata carries document and filename-derived information.
type Metadata struct {
	Agents     []Agent `json:"agents,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	Title      string  `json:"title,omitempty"`
	SourceFile string  `json:"sourceFile,omitempty"`
}

// Agent is a ttm:agent declaration from the document head.
type Agent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Line is a converted p element.
type Line struct {
	Begin       float64     `json:"begin"`
	End         float64     `json:"end"`
	Text        string      `json:"text"`
	Roman       string      `json:"roman,omitempty"`
	Agent       string      `json:"agent,omitempty"`
	Key         string      `json:"key,omitempty"`
	Words       []Word      `json:"words"`
	Background  *Background `json:"backgroundVocal,omitempty"`
	Translation string      `json:"translation,omitempty"`
}

// Word is a converted span element.
type Word struct {
	Text       string  `json:"text"`
	Begin      float64 `json:"begin"`
	End        float64 `json:"end"`
	Role       string  `json:"role,omitempty"`
	Roman      string  `json:"roman,omitempty"`
	SpaceAfter bool    `json:"spaceAfter,omitempty"`

	leadingSpace bool
}

// Background groups the nested background-vocal spans of a line.
type Background struct {
	Text  string `json:"text"`
	Roman string `json:"roman,omitempty"`
	Words []Word `json:"words"`
}

// File parses and converts a TTML file.
func File(path string) (*Song, error) {
	doc, err := ttml.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Document(doc, filepath.Base(path))
}

// Document converts a parsed TTML document. sourceFile, when non-empty, is
// used for the sourceFile metadata field and for deriving artist/title from
// an "Artist - Title" filename.
func Document(doc *ttml.Document, sourceFile string) (*Song, error) {
	song := &Song{Lines: []Line{}}

	if head := doc.Head(); head != nil {
		if meta := firstChild(head, "metadata"); meta != nil {
			for _, agent := range ttml.ChildElements(meta, "agent") {
				song.Metadata.Agents = append(song.Metadata.Agents, Agent{
					ID:   ttml.Attr(agent, "xml:id"),
					Type: ttml.Attr(agent, "type"),
				})
			}
		}
	}

	if body := doc.Body(); body != nil {
		if dur := ttml.Attr(body, ttml.AttrDur); dur != "" {
			d, err := ttml.ParseClock(dur)
			if err != nil {
				return nil, fmt.Errorf("body dur: %w", err)
			}
			song.Duration = &d
		}
	}

	for i, p := range doc.Paragraphs() {
		line, err := convertParagraph(p)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		song.Lines = append(song.Lines, line)
	}
	song.TotalLines = len(song.Lines)

	if sourceFile != "" {
		song.Metadata.SourceFile = sourceFile
		stem := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
		if artist, title, ok := strings.Cut(stem, " - "); ok {
			song.Metadata.Artist = artist
			song.Metadata.Title = title
		} else {
			song.Metadata.Title = stem
		}
	}

	return song, nil
}

// JSON renders the song with stable field order and two-space indentation,
// so converting the same document twice yields identical bytes.
func (s *Song) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func convertParagraph(p *xmlquery.Node) (Line, error) {
	begin, err := ttml.ParseClock(ttml.Attr(p, ttml.AttrBegin))
	if err != nil {
		return Line{}, err
	}
	end, err := ttml.ParseClock(ttml.Attr(p, ttml.AttrEnd))
	if err != nil {
		return Line{}, err
	}

	line := Line{
		Begin: begin,
		End:   end,
		Roman: ttml.Attr(p, ttml.AttrRoman),
		Agent: ttml.Attr(p, ttml.AttrAgent),
		Key:   ttml.Attr(p, ttml.AttrKey),
		Words: []Word{},
	}

	var bgWords []Word
	var bgRoman string
	var translations []string

	if err := collectSpans(p, "", &line.Words, &bgWords, &bgRoman, &translations); err != nil {
		return Line{}, err
	}

	var mainWords []Word
	for _, w := range line.Words {
		if w.Role == "" {
			mainWords = append(mainWords, w)
		}
	}
	line.Text = joinWords(mainWords)

	if len(bgWords) > 0 {
		var bgMain []Word
		for _, w := range bgWords {
			if w.Role == "" {
				bgMain = append(bgMain, w)
			}
		}
		line.Background = &Background{
			Text:  joinWords(bgMain),
			Roman: bgRoman,
			Words: bgWords,
		}
	}
	if len(translations) > 0 {
		line.Translation = strings.Join(translations, " ")
	}

	return line, nil
}

// collectSpans walks the direct span children of parent in document order,
// reproducing the source's spacing: a word is separated from its
// predecessor when the predecessor's tail was whitespace or either span's
// text carried boundary whitespace.
func collectSpans(parent *xmlquery.Node, role string, words, bgWords *[]Word, bgRoman *string, translations *[]string) error {
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode || child.Data != "span" {
			continue
		}

		switch ttml.Role(child) {
		case ttml.RoleBackground:
			// background vocal wrapper: nested spans form their own track
			*bgRoman = ttml.Attr(child, ttml.AttrRoman)
			if err := collectSpans(child, ttml.RoleBackground, bgWords, bgWords, bgRoman, translations); err != nil {
				return err
			}
			continue
		case ttml.RoleTranslation:
			w, err := convertSpan(child, ttml.RoleTranslation)
			if err != nil {
				return err
			}
			if w.Text != "" {
				*translations = append(*translations, w.Text)
				*words = append(*words, w)
			}
			continue
		}

		raw := ttml.Text(child)
		list := words
		if role == ttml.RoleBackground {
			list = bgWords
		}
		if len(*list) > 0 && leadingSpace(raw) {
			(*list)[len(*list)-1].SpaceAfter = true
		}

		w, err := convertSpan(child, "")
		if err != nil {
			return err
		}
		w.SpaceAfter = w.SpaceAfter || tailIsSpace(child)
		if w.Text != "" {
			*list = append(*list, w)
		}
	}
	return nil
}

func convertSpan(span *xmlquery.Node, role string) (Word, error) {
	begin, err := ttml.ParseClock(ttml.Attr(span, ttml.AttrBegin))
	if err != nil {
		return Word{}, err
	}
	end, err := ttml.ParseClock(ttml.Attr(span, ttml.AttrEnd))
	if err != nil {
		return Word{}, err
	}

	raw := ttml.Text(span)
	return Word{
		Text:         strings.TrimSpace(raw),
		Begin:        begin,
		End:          end,
		Role:         role,
		Roman:        ttml.Attr(span, ttml.AttrRoman),
		SpaceAfter:   trailingSpace(raw),
		leadingSpace: leadingSpace(raw),
	}, nil
}

func joinWords(words []Word) string {
	var sb strings.Builder
	for i, w := range words {
		if i > 0 && (words[i-1].SpaceAfter || w.leadingSpace) {
			sb.WriteString(" ")
		}
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// tailIsSpace reports whether the text node immediately after the span is
// whitespace only. Markup linebreaks between spans count as word breaks.
func tailIsSpace(span *xmlquery.Node) bool {
	next := span.NextSibling
	if next == nil || next.Type != xmlquery.TextNode {
		return false
	}
	return next.Data != "" && strings.TrimSpace(next.Data) == ""
}

func leadingSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func trailingSpace(s string) bool {
	runes := []rune(s)
	return len(runes) > 0 && unicode.IsSpace(runes[len(runes)-1])
}

func firstChild(n *xmlquery.Node, name string) *xmlquery.Node {
	elems := ttml.ChildElements(n, name)
	if len(elems) == 0 {
		return nil
	}
	return elems[0]
}
