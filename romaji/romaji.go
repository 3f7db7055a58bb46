package romaji

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnmappable reports a rune with no Latin transliteration.
var ErrUnmappable = errors.New("romaji: unmappable rune")

type kind int

const (
	kindText   kind = iota
	kindSokuon      // ッ, geminates the following consonant
	kindMoraicN     // ン, may need an apostrophe before vowels and y
	kindLong        // ー, repeats the preceding vowel
)

type syllable struct {
	text string
	kind kind
}

// Convert transliterates katakana or hiragana text. ASCII runes pass
// through unchanged so mixed readings such as "3ジ" survive. Runes
// outside kana, Japanese punctuation, and ASCII yield ErrUnmappable.
func Convert(kana string) (string, error) {
	syls, err := parse(kana)
	if err != nil {
		return "", err
	}
	return join(syls), nil
}

func parse(kana string) ([]syllable, error) {
	runes := []rune(kana)
	for i, r := range runes {
		runes[i] = toKatakana(r)
	}

	syls := make([]syllable, 0, len(runes))
	for i := 0; i < len(runes); {
		r := runes[i]
		if i+1 < len(runes) {
			if s, ok := digraphs[string(runes[i:i+2])]; ok {
				syls = append(syls, syllable{text: s})
				i += 2
				continue
			}
		}
		switch {
		case r == 'ッ':
			syls = append(syls, syllable{kind: kindSokuon})
		case r == 'ン':
			syls = append(syls, syllable{kind: kindMoraicN})
		case r == 'ー':
			syls = append(syls, syllable{kind: kindLong})
		default:
			s, ok := monographs[r]
			if !ok {
				if r < 0x80 {
					s = string(r)
				} else {
					return nil, fmt.Errorf("%w: %q", ErrUnmappable, r)
				}
			}
			syls = append(syls, syllable{text: s})
		}
		i++
	}
	return syls, nil
}

func join(syls []syllable) string {
	var b strings.Builder
	for i, s := range syls {
		switch s.kind {
		case kindSokuon:
			next := nextText(syls, i+1)
			if next == "" || isVowel(next[0]) {
				continue
			}
			// Hepburn writes っち as tchi, not cchi.
			if strings.HasPrefix(next, "ch") {
				b.WriteByte('t')
			} else {
				b.WriteByte(next[0])
			}
		case kindMoraicN:
			b.WriteByte('n')
			next := nextText(syls, i+1)
			if next != "" && (isVowel(next[0]) || next[0] == 'y') {
				b.WriteByte('\'')
			}
		case kindLong:
			if v := lastVowel(b.String()); v != 0 {
				b.WriteByte(v)
			}
		default:
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// nextText returns the first plain syllable at or after i, so sokuon
// and moraic n rules see through an intervening marker.
func nextText(syls []syllable, i int) string {
	for ; i < len(syls); i++ {
		if syls[i].kind == kindText {
			return syls[i].text
		}
	}
	return ""
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

func lastVowel(s string) byte {
	for i := len(s) - 1; i >= 0; i-- {
		if isVowel(s[i]) {
			return s[i]
		}
	}
	return 0
}

// toKatakana shifts hiragana into the katakana block so a single table
// covers both scripts.
func toKatakana(r rune) rune {
	if r >= 'ぁ' && r <= 'ゖ' {
		return r + ('ァ' - 'ぁ')
	}
	return r
}
