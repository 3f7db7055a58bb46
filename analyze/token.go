package analyze

// Token is one analyzed morpheme.
type Token struct {
	// Surface is the token text exactly as it appears in the input.
	Surface string `json:"surface"`
	// Reading is the kana reading, omitted when the dictionary has none.
	Reading string `json:"reading,omitempty"`
	// BasicForm is the dictionary form of inflected words, omitted when
	// it matches nothing in the dictionary.
	BasicForm string `json:"basicForm,omitempty"`
	// Pos is the coarse part of speech.
	Pos string `json:"pos"`
	// PosDetail is the first part-of-speech subdivision, empty when the
	// dictionary does not subdivide.
	PosDetail string `json:"posDetail"`
	// Pronunciation is the spoken-form kana used for romanization. It
	// differs from Reading where orthography and speech diverge, は
	// read as ワ being the common case. Not part of the API response.
	Pronunciation string `json:"-"`
}

// IPA dictionary feature indexes.
const (
	featPos = iota
	featPosDetail
	_ // second subdivision
	_ // third subdivision
	_ // inflection type
	_ // inflection form
	featBasicForm
	featReading
	featPronunciation
)

// tokenFromFeatures maps an IPA feature row onto a Token. The
// dictionary marks absent features with "*"; those fields stay empty.
// Unknown words carry a truncated row, so every index is bounds-checked.
func tokenFromFeatures(surface string, features []string) Token {
	tok := Token{Surface: surface}
	if f := feature(features, featPos); f != "" {
		tok.Pos = f
	}
	if f := feature(features, featPosDetail); f != "" {
		tok.PosDetail = f
	}
	if f := feature(features, featBasicForm); f != "" {
		tok.BasicForm = f
	}
	if f := feature(features, featReading); f != "" {
		tok.Reading = f
	}
	if f := feature(features, featPronunciation); f != "" {
		tok.Pronunciation = f
	}
	return tok
}

func feature(features []string, i int) string {
	if i >= len(features) || features[i] == "*" {
		return ""
	}
	return features[i]
}
