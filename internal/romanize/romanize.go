// Package romanize annotates TTML documents with Latin-script readings.
//
// A language code selects a backend from a catalog of ordered candidates;
// the first candidate whose capability is available wins. The annotator
// then walks the document tree and writes x-roman attributes onto every
// qualifying node, skipping translation spans.
package romanize

import (
	"sort"
	"strings"
)

// Language is a three-letter language code selecting a backend.
type Language string

const (
	LangKorean   Language = "kor"
	LangJapanese Language = "jpn"
	LangChinese  Language = "zho"
	LangHindi    Language = "hin"
	LangUrdu     Language = "urd"
	LangArabic   Language = "ara"

	// legacy bibliographic code for Chinese
	langChineseB Language = "chi"
)

// Backend renders non-Latin text into a Latin-script approximation. It
// returns "" for text containing none of its target script.
type Backend interface {
	Name() string
	Romanize(text string) (string, error)
}

// candidate constructs a backend, failing when its capability is
// unavailable.
type candidate func() (Backend, error)

var catalog = map[Language][]candidate{
	LangKorean:   {newKoreanBackend},
	LangJapanese: {newJapaneseBackend},
	LangChinese:  {newChineseBackend},
	LangHindi:    {newTransliterator},
	LangArabic:   {newTransliterator},
	// dedicated letter mapping first, generic transliteration as fallback
	LangUrdu: {newUrduBackend, newTransliterator},
}

// Resolve returns the backend for a language code. Unknown codes and
// languages with no available candidate are configuration errors.
func Resolve(code string) (Backend, error) {
	lang := normalize(code)
	candidates, ok := catalog[lang]
	if !ok {
		return nil, &ConfigurationError{
			Lang:   code,
			Reason: "unsupported language code (supported: " + strings.Join(Supported(), ", ") + ")",
		}
	}

	var firstErr error
	for _, build := range candidates {
		backend, err := build()
		if err == nil {
			return backend, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, &ConfigurationError{
		Lang:   code,
		Reason: "no romanization backend available",
		Err:    firstErr,
	}
}

// Supported returns the recognized language codes, sorted.
func Supported() []string {
	codes := make([]string, 0, len(catalog)+1)
	for lang := range catalog {
		codes = append(codes, string(lang))
	}
	codes = append(codes, string(langChineseB))
	sort.Strings(codes)
	return codes
}

func normalize(code string) Language {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if lang == langChineseB {
		return LangChinese
	}
	return lang
}
