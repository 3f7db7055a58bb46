package analyze

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// kagomeEngine wraps a kagome tokenizer over the IPA dictionary.
type kagomeEngine struct {
	tok *tokenizer.Tokenizer
}

var _ Engine = (*kagomeEngine)(nil)

// KagomeBuilder is the production BuildFunc. Parsing the embedded IPA
// dictionary is the expensive step the Loader exists for.
func KagomeBuilder() (Engine, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("analyze: building tokenizer: %w", err)
	}
	return &kagomeEngine{tok: tok}, nil
}

func (e *kagomeEngine) Tokenize(text string) []Token {
	raw := e.tok.Tokenize(text)
	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.Class == tokenizer.DUMMY {
			continue
		}
		tokens = append(tokens, tokenFromFeatures(t.Surface, t.Features()))
	}
	return tokens
}
