package ttml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTTML = `<?xml version="1.0" encoding="utf-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttm="http://www.w3.org/ns/ttml#metadata" xmlns:itunes="http://music.apple.com/lyric-ttml-internal">
  <head>
    <metadata>
      <ttm:agent type="person" xml:id="v1"/>
    </metadata>
  </head>
  <body dur="00:10.000">
    <div begin="00:01.000" end="00:10.000">
      <p begin="00:01.000" end="00:04.000" ttm:agent="v1" itunes:key="L1"><span begin="00:01.000" end="00:02.500">Hello</span> <span begin="00:02.500" end="00:04.000">world</span></p>
      <p begin="00:05.000" end="00:10.000" ttm:agent="v1" itunes:key="L2"><span begin="00:05.000" end="00:10.000">again</span></p>
    </div>
  </body>
</tt>
`

func TestParseDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Root() == nil || doc.Root().Data != "tt" {
		t.Fatal("expected tt root element")
	}
	if doc.Body() == nil {
		t.Fatal("expected body element")
	}
	if doc.Head() == nil {
		t.Fatal("expected head element")
	}

	paragraphs := doc.Paragraphs()
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paragraphs))
	}

	p := paragraphs[0]
	if got := Attr(p, AttrBegin); got != "00:01.000" {
		t.Errorf("begin = %q, want %q", got, "00:01.000")
	}
	if got := Attr(p, AttrAgent); got != "v1" {
		t.Errorf("ttm:agent = %q, want %q", got, "v1")
	}
	if got := Attr(p, AttrKey); got != "L1" {
		t.Errorf("itunes:key = %q, want %q", got, "L1")
	}

	spans := ChildElements(p, "span")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if got := Text(spans[0]); got != "Hello" {
		t.Errorf("span text = %q, want %q", got, "Hello")
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		`<tt><p>unclosed</tt>`,
		``,
		`no markup at all`,
	}
	for _, input := range inputs {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestParseFileReportsPath(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.ttml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path == "" {
		t.Error("ParseError should carry the file path")
	}
}

func TestSetAttrAndSerialize(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	p := doc.Paragraphs()[0]
	SetAttr(p, AttrRoman, "annyeong")
	if got := Attr(p, AttrRoman); got != "annyeong" {
		t.Fatalf("x-roman = %q after SetAttr", got)
	}

	// replacing keeps a single attribute
	SetAttr(p, AttrRoman, "dasi")
	if got := Attr(p, AttrRoman); got != "dasi" {
		t.Fatalf("x-roman = %q after second SetAttr", got)
	}

	out := string(doc.Serialize())
	if !strings.Contains(out, `x-roman="dasi"`) {
		t.Errorf("serialized document missing x-roman attribute:\n%s", out)
	}
	if strings.Contains(out, "annyeong") {
		t.Error("serialized document still contains replaced value")
	}
	if !strings.Contains(out, "Hello") {
		t.Error("serialized document lost span text")
	}

	RemoveAttr(p, AttrRoman)
	if HasAttr(p, AttrRoman) {
		t.Error("x-roman still present after RemoveAttr")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.ttml")
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	again, err := ParseFile(path)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(again.Paragraphs()) != 2 {
		t.Errorf("round trip lost paragraphs")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"00:00.000", 0, false},
		{"01:23.456", 83.456, false},
		{"00:05.500", 5.5, false},
		{"1:02:03.500", 3723.5, false},
		{"12.25", 12.25, false},
		{"abc", 0, true},
		{"1:2:3:4", 0, true},
		{"xx:10.000", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.000"},
		{5.5, "00:05.500"},
		{83.456, "01:23.456"},
		{3723.5, "62:03.500"},
		{-1, "00:00.000"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"100ms", 0.1, false},
		{"-50ms", -0.05, false},
		{"1.5", 1.5, false},
		{"-0.25", -0.25, false},
		{" 2 ", 2, false},
		{"fastms", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOffset(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOffset(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOffset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOffsetShiftsAllTimes(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := doc.Offset(0.5); err != nil {
		t.Fatalf("Offset failed: %v", err)
	}

	p := doc.Paragraphs()[0]
	if got := Attr(p, AttrBegin); got != "00:01.500" {
		t.Errorf("paragraph begin = %q, want %q", got, "00:01.500")
	}
	span := ChildElements(p, "span")[0]
	if got := Attr(span, AttrEnd); got != "00:03.000" {
		t.Errorf("span end = %q, want %q", got, "00:03.000")
	}
	// dur follows the latest end time
	if got := Attr(doc.Body(), AttrDur); got != "00:10.500" {
		t.Errorf("body dur = %q, want %q", got, "00:10.500")
	}
}

func TestOffsetClampsAtZero(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := doc.Offset(-2); err != nil {
		t.Fatalf("Offset failed: %v", err)
	}

	p := doc.Paragraphs()[0]
	if got := Attr(p, AttrBegin); got != "00:00.000" {
		t.Errorf("paragraph begin = %q, want %q (clamped)", got, "00:00.000")
	}
	if got := Attr(p, AttrEnd); got != "00:02.000" {
		t.Errorf("paragraph end = %q, want %q", got, "00:02.000")
	}
}

func TestTextExcludesNestedElements(t *testing.T) {
	input := `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>` +
		`<p begin="00:01.000" end="00:02.000">direct<span>nested</span></p>` +
		`</div></body></tt>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	p := doc.Paragraphs()[0]
	if got := Text(p); got != "direct" {
		t.Errorf("Text = %q, want %q", got, "direct")
	}
}

func TestWriteFileFailsOnBadPath(t *testing.T) {
	doc, err := Parse([]byte(sampleTTML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	bad := filepath.Join(t.TempDir(), "missing-dir", "out.ttml")
	if err := doc.WriteFile(bad); err == nil {
		t.Error("WriteFile should fail when the directory does not exist")
		os.Remove(bad)
	}
}
