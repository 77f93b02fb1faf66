// Package elrc parses enhanced-LRC lyric files (word-level timestamps) and
// generates the equivalent TTML document.
package elrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

// Metadata holds the tag values an ELRC file may carry.
type Metadata struct {
	Artist string
	Title  string
	By     string
	Offset string
}

// Word is a single timed word.
type Word struct {
	Text  string
	Begin float64
	End   float64
}

// Line is one lyric line with its voice assignment.
type Line struct {
	Begin float64
	Agent string // v1/v2, empty for background lines
	Role  string // x-bg for background vocals
	Words []Word
}

var (
	metaRe = regexp.MustCompile(`^\[(ar|ti|offset|by):(.*)\]`)
	lineRe = regexp.MustCompile(`^\[(\d{2}:\d{2}\.\d{3})\](v1:|v2:|bg:)?(.*)`)
	bgRe   = regexp.MustCompile(`^\[bg:(.*)\]`)
	wordRe = regexp.MustCompile(`<(\d{2}:\d{2}\.\d{3})>([^<]*)`)
)

// ParseFile reads and parses an ELRC file.
func ParseFile(path string) (Metadata, []Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("failed to open ELRC file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads ELRC content: metadata tags, line timestamps with optional
// voice prefixes, and word-level timestamps. Word end times are derived
// from the next word, then fixed up against the next main line's start.
func Parse(r io.Reader) (Metadata, []Line, error) {
	var meta Metadata
	var lines []Line

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())

		if m := metaRe.FindStringSubmatch(raw); m != nil {
			value := strings.TrimSpace(m[2])
			switch m[1] {
			case "ar":
				meta.Artist = value
			case "ti":
				meta.Title = value
			case "by":
				meta.By = value
			case "offset":
				meta.Offset = value
			}
			continue
		}

		line, ok, err := parseLine(raw)
		if err != nil {
			return Metadata{}, nil, err
		}
		if ok {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Metadata{}, nil, fmt.Errorf("failed to read ELRC file: %w", err)
	}

	fixupEndTimes(lines)
	return meta, lines, nil
}

func parseLine(raw string) (Line, bool, error) {
	var line Line
	var content string

	switch {
	case lineRe.MatchString(raw):
		m := lineRe.FindStringSubmatch(raw)
		begin, err := ttml.ParseClock(m[1])
		if err != nil {
			return Line{}, false, err
		}
		line.Begin = begin
		line.Agent = "v1"
		switch m[2] {
		case "v2:":
			line.Agent = "v2"
		case "bg:":
			line.Agent = ""
			line.Role = ttml.RoleBackground
		}
		content = m[3]
	case bgRe.MatchString(raw):
		// background line without its own timestamp: starts at its
		// first word
		line.Role = ttml.RoleBackground
		content = bgRe.FindStringSubmatch(raw)[1]
	default:
		return Line{}, false, nil
	}

	for _, m := range wordRe.FindAllStringSubmatch(content, -1) {
		begin, err := ttml.ParseClock(m[1])
		if err != nil {
			return Line{}, false, err
		}
		line.Words = append(line.Words, Word{Text: m[2], Begin: begin})
	}
	if len(line.Words) > 0 && line.Begin == 0 {
		line.Begin = line.Words[0].Begin
	}

	return line, true, nil
}

// fixupEndTimes closes every word against the next word, and the last word
// of a line against the next main line's start, falling back to a flat
// three seconds when nothing follows.
func fixupEndTimes(lines []Line) {
	for i := range lines {
		words := lines[i].Words
		if len(words) == 0 {
			continue
		}
		for j := 0; j < len(words)-1; j++ {
			words[j].End = words[j+1].Begin
		}

		last := &words[len(words)-1]
		last.End = last.Begin + 3
		for k := i + 1; k < len(lines); k++ {
			if lines[k].Role == ttml.RoleBackground {
				continue
			}
			if lines[k].Begin > last.Begin {
				last.End = lines[k].Begin
			}
			break
		}
	}
}

// OutputName derives the "Artist - Title.ttml" filename, with characters
// illegal on common filesystems removed.
func OutputName(meta Metadata) string {
	artist := meta.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	title := meta.Title
	if title == "" {
		title = "Unknown Title"
	}
	return cleanFilename(artist+" - "+title) + ".ttml"
}

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

func cleanFilename(name string) string {
	return illegalFilenameChars.ReplaceAllString(name, "")
}
