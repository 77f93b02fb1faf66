package romanize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gojp/kana"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// japaneseBackend tokenizes with the kagome IPA dictionary to obtain kana
// readings for kanji, then renders Hepburn romaji.
type japaneseBackend struct {
	tok *tokenizer.Tokenizer
}

func newJapaneseBackend() (Backend, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome IPA dictionary unavailable: %w", err)
	}
	return &japaneseBackend{tok: tok}, nil
}

func (j *japaneseBackend) Name() string { return "kagome-hepburn" }

func (j *japaneseBackend) Romanize(text string) (string, error) {
	if !containsJapanese(text) {
		return "", nil
	}

	var parts []string
	for _, token := range j.tok.Tokenize(text) {
		reading, ok := token.Reading()
		if !ok || reading == "" || reading == "*" {
			reading = token.Surface
		}
		romaji := strings.ToLower(strings.TrimSpace(kana.KanaToRomaji(reading)))
		if romaji != "" {
			parts = append(parts, romaji)
		}
	}
	return strings.Join(parts, " "), nil
}

func containsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
