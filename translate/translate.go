package translate

import (
	"context"
	"strings"
)

// Language is a supported translation language.
type Language string

const (
	// English is the "en" language code.
	English Language = "en"
	// Japanese is the "ja" language code.
	Japanese Language = "ja"
)

// ParseLanguage maps a wire code onto a supported language. Matching is
// case-insensitive.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case Japanese:
		return Japanese, true
	default:
		return "", false
	}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == English || l == Japanese
}

// Request is one translation call.
type Request struct {
	Text   string
	Source Language
	Target Language
}

// Result is a completed translation.
type Result struct {
	Text string
}

// Provider performs translations.
//
// Contract:
//   - Translate returns the translated text or a taxonomy error; it
//     never returns a partial result alongside an error.
//   - Implementations honor ctx for cancellation and deadlines.
//   - Input is assumed validated; providers do not re-check text length
//     or language pairs.
type Provider interface {
	Translate(ctx context.Context, req Request) (Result, error)
}
