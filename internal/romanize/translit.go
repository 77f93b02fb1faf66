package romanize

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// generic transliteration over unidecode's character tables; serves Hindi
// and Arabic, and acts as the Urdu fallback
type transliterator struct{}

func newTransliterator() (Backend, error) {
	return &transliterator{}, nil
}

func (t *transliterator) Name() string { return "unidecode" }

func (t *transliterator) Romanize(text string) (string, error) {
	if isASCII(text) {
		return "", nil
	}
	return collapseSpaces(unidecode.Unidecode(text)), nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
