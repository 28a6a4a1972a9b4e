package corpus

import "phonocover/internal/textutil"

// Sentence is one candidate sentence. Tokens are the normalized word tokens
// shared by the coverage index and the frequency analyzer.
type Sentence struct {
	ID     int      `json:"id"`
	Text   string   `json:"text"`
	Tokens []string `json:"-"`
}

// NewSentences assigns ids by position and tokenizes each text.
func NewSentences(texts []string) []Sentence {
	out := make([]Sentence, len(texts))
	for i, text := range texts {
		out[i] = Sentence{ID: i, Text: text, Tokens: textutil.Tokenize(text)}
	}
	return out
}

// Texts returns the sentence texts in id order.
func Texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

// ByID indexes sentences by id.
func ByID(sentences []Sentence) map[int]Sentence {
	out := make(map[int]Sentence, len(sentences))
	for _, s := range sentences {
		out[s.ID] = s
	}
	return out
}
