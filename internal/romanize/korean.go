package romanize

import (
	"strings"

	hangul "github.com/suapapa/go_hangul"
)

// Revised Romanization letter tables, indexed by jamo position within a
// syllable. Letter-level transcription; sound-change rules are not applied.
var (
	rrLeads = [19]string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp", "s",
		"ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	rrMedials = [21]string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa",
		"wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i",
	}
	rrTails = [28]string{
		"", "g", "kk", "gs", "n", "nj", "nh", "d", "l", "lg",
		"lm", "lb", "ls", "lt", "lp", "lh", "m", "b", "bs", "s",
		"ss", "ng", "j", "ch", "k", "t", "p", "h",
	}
)

type koreanBackend struct{}

func newKoreanBackend() (Backend, error) {
	return &koreanBackend{}, nil
}

func (k *koreanBackend) Name() string { return "hangul-rr" }

func (k *koreanBackend) Romanize(text string) (string, error) {
	if !containsHangul(text) {
		return "", nil
	}

	var sb strings.Builder
	for _, r := range text {
		if !hangul.IsHangul(r) {
			sb.WriteRune(r)
			continue
		}
		lead, medial, tail := hangul.Split(r)
		sb.WriteString(romanizeJamo(lead, medial, tail, r))
	}
	return strings.TrimSpace(sb.String()), nil
}

func romanizeJamo(lead, medial, tail, syllable rune) string {
	li := int(lead) - 0x1100
	mi := int(medial) - 0x1161
	if li < 0 || li >= len(rrLeads) || mi < 0 || mi >= len(rrMedials) {
		// lone jamo or something Split could not decompose
		return string(syllable)
	}
	out := rrLeads[li] + rrMedials[mi]
	if tail != 0 {
		ti := int(tail) - 0x11A7
		if ti > 0 && ti < len(rrTails) {
			out += rrTails[ti]
		}
	}
	return out
}

func containsHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}
