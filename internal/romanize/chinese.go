package romanize

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// chineseBackend renders Han text as toneless pinyin syllables.
type chineseBackend struct {
	args pinyin.Args
}

func newChineseBackend() (Backend, error) {
	args := pinyin.NewArgs()
	// pass non-Han runes through instead of dropping them
	args.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}
	return &chineseBackend{args: args}, nil
}

func (c *chineseBackend) Name() string { return "pinyin" }

func (c *chineseBackend) Romanize(text string) (string, error) {
	if !containsHan(text) {
		return "", nil
	}

	var parts []string
	for _, readings := range pinyin.Pinyin(text, c.args) {
		if len(readings) == 0 {
			continue
		}
		if s := strings.TrimSpace(readings[0]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han) {
			return true
		}
	}
	return false
}
