package romanize

import (
	"strings"
	"unicode"
)

// Perso-Arabic letter map covering the Urdu alphabet. Short-vowel
// diacritics are dropped, matching common informal Urdu romanization.
var urduLetters = map[rune]string{
	'ا': "a", 'آ': "aa", 'ب': "b", 'پ': "p", 'ت': "t", 'ٹ': "t",
	'ث': "s", 'ج': "j", 'چ': "ch", 'ح': "h", 'خ': "kh", 'د': "d",
	'ڈ': "d", 'ذ': "z", 'ر': "r", 'ڑ': "r", 'ز': "z", 'ژ': "zh",
	'س': "s", 'ش': "sh", 'ص': "s", 'ض': "z", 'ط': "t", 'ظ': "z",
	'ع': "'", 'غ': "gh", 'ف': "f", 'ق': "q", 'ک': "k", 'ك': "k",
	'گ': "g", 'ل': "l", 'م': "m", 'ن': "n", 'ں': "n", 'و': "o",
	'ہ': "h", 'ھ': "h", 'ه': "h", 'ء': "'", 'ی': "y", 'ي': "y",
	'ے': "e", 'ئ': "y", 'ۂ': "h", 'ة': "t",
}

type urduBackend struct{}

func newUrduBackend() (Backend, error) {
	return &urduBackend{}, nil
}

func (u *urduBackend) Name() string { return "urdu-latin" }

func (u *urduBackend) Romanize(text string) (string, error) {
	if !containsArabicScript(text) {
		return "", nil
	}

	var sb strings.Builder
	for _, r := range text {
		switch {
		case isArabicDiacritic(r):
			// skip
		case urduLetters[r] != "":
			sb.WriteString(urduLetters[r])
		default:
			sb.WriteRune(r)
		}
	}
	return collapseSpaces(sb.String()), nil
}

func containsArabicScript(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Arabic) {
			return true
		}
	}
	return false
}

func isArabicDiacritic(r rune) bool {
	return r >= 0x064B && r <= 0x065F || r == 0x0670
}
