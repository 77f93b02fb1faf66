package lint

import (
	"strings"
	"testing"
)

const messyTTML = `<?xml version="1.0" encoding="utf-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttm="http://www.w3.org/ns/ttml#metadata" xmlns:itunes="http://music.apple.com/lyric-ttml-internal">
<head>
   <metadata>
	<ttm:agent xml:id="v1" type="person"/>
   </metadata>
</head>
  <body dur="00:10.000">
      <div>
   <p end="00:02.000" itunes:key="L1" begin="00:01.000" ttm:agent="v1">
      <span end="00:01.500" begin="00:01.000">hi</span>
      <span end="00:02.000" begin="00:01.500">there</span>
   </p>
      </div>
  </body>
</tt>`

func TestFormatCanonicalizes(t *testing.T) {
	formatted, err := Format([]byte(messyTTML))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := string(formatted)

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`+"\n") {
		t.Error("output missing XML declaration")
	}

	// known attributes in fixed order
	if !strings.Contains(out, `<p begin="00:01.000" end="00:02.000" ttm:agent="v1" itunes:key="L1">`) {
		t.Errorf("p attributes not reordered:\n%s", out)
	}
	if !strings.Contains(out, `<ttm:agent type="person" xml:id="v1"/>`) {
		t.Errorf("agent attributes not reordered:\n%s", out)
	}

	// p content inline, span-separating whitespace collapsed to one space
	if !strings.Contains(out,
		`<span begin="00:01.000" end="00:01.500">hi</span> <span begin="00:01.500" end="00:02.000">there</span></p>`) {
		t.Errorf("p content not rendered inline:\n%s", out)
	}

	// structural elements use two-space indentation
	if !strings.Contains(out, "  <body dur=\"00:10.000\">\n    <div>\n      <p ") {
		t.Errorf("structural indentation wrong:\n%s", out)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	once, err := Format([]byte(messyTTML))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	twice, err := Format(once)
	if err != nil {
		t.Fatalf("second Format failed: %v", err)
	}
	if string(once) != string(twice) {
		t.Errorf("Format not idempotent:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestFormatSpansWithNoSeparatorStayJoined(t *testing.T) {
	input := `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>` +
		`<p begin="00:01.000" end="00:02.000"><span begin="00:01.000" end="00:01.500">fan</span><span begin="00:01.500" end="00:02.000">ta</span></p>` +
		`</div></body></tt>`

	formatted, err := Format([]byte(input))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(formatted), `</span><span begin="00:01.500"`) {
		t.Errorf("adjacent spans must stay back to back:\n%s", formatted)
	}
}

func TestFormatUnknownAttributesSortLast(t *testing.T) {
	input := `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>` +
		`<p zeta="z" begin="00:01.000" alpha="a" end="00:02.000">hi</p>` +
		`</div></body></tt>`

	formatted, err := Format([]byte(input))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(formatted), `<p begin="00:01.000" end="00:02.000" alpha="a" zeta="z">`) {
		t.Errorf("unknown attributes not sorted alphabetically after known ones:\n%s", formatted)
	}
}

func TestFormatRejectsMalformedInput(t *testing.T) {
	if _, err := Format([]byte("<tt><body>")); err == nil {
		t.Error("expected error for malformed markup")
	}
}

func TestCheckAcceptsFormattedInput(t *testing.T) {
	formatted, err := Format([]byte(messyTTML))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	ok, _, err := Check(formatted)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !ok {
		t.Error("Check rejected canonically formatted input")
	}
}

func TestCheckReportsFirstDifferingLine(t *testing.T) {
	ok, line, err := Check([]byte(messyTTML))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if ok {
		t.Fatal("Check accepted unformatted input")
	}
	if line < 1 {
		t.Errorf("differing line = %d, want >= 1", line)
	}
}
