// Package frequency counts word and phoneme occurrences in a set of sentences
// and measures how well the set covers the target vocabulary and the phoneme
// inventory.
package frequency

import (
	"sort"

	"phonocover/internal/corpus"
	"phonocover/internal/phoneme"
	"phonocover/internal/pronounce"
	"phonocover/internal/textutil"
)

// Analyzer resolves tokens against a shared Resolver. It holds no mutable
// state of its own and may be used from several goroutines.
type Analyzer struct {
	Resolver   *pronounce.Resolver
	Vocabulary *corpus.Vocabulary
}

// NewAnalyzer returns an Analyzer for the given resolver and target vocabulary.
func NewAnalyzer(resolver *pronounce.Resolver, vocab *corpus.Vocabulary) *Analyzer {
	return &Analyzer{Resolver: resolver, Vocabulary: vocab}
}

// Unresolved is a token the dictionary could not pronounce.
type Unresolved struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// WordCount pairs a word with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// PhonemeCount pairs a phoneme with its occurrence count.
type PhonemeCount struct {
	Phoneme phoneme.Phoneme `json:"phoneme"`
	Count   int             `json:"count"`
}

// Report is the result of analyzing one sentence subset.
type Report struct {
	Sentences        int                     `json:"sentences"`
	Tokens           int                     `json:"tokens"`
	Phonemes         int                     `json:"phonemes"`
	WordFrequency    map[string]int          `json:"word_frequency"`
	PhonemeFrequency map[phoneme.Phoneme]int `json:"phoneme_frequency"`
	// VocabularyCoverage is the fraction of target words that occur at
	// least once. Zero for an empty vocabulary.
	VocabularyCoverage float64 `json:"vocabulary_coverage"`
	// PhonemeCoverage is the fraction of the 39 phonemes that occur at
	// least once.
	PhonemeCoverage float64 `json:"phoneme_coverage"`
	// Unresolved lists distinct unresolved tokens in first-seen order.
	Unresolved []Unresolved `json:"unresolved"`
}

// Analyze tokenizes every sentence, counts each token occurrence, and adds
// the phonemes of every resolvable token. Sentences loaded without tokens
// are tokenized from their text.
func (a *Analyzer) Analyze(sentences []corpus.Sentence) Report {
	r := Report{
		Sentences:        len(sentences),
		WordFrequency:    make(map[string]int),
		PhonemeFrequency: make(map[phoneme.Phoneme]int),
		Unresolved:       []Unresolved{},
	}
	missIndex := make(map[string]int)

	for _, s := range sentences {
		tokens := s.Tokens
		if tokens == nil {
			tokens = textutil.Tokenize(s.Text)
		}
		for _, tok := range tokens {
			r.Tokens++
			r.WordFrequency[tok]++
			phones, ok := a.resolve(tok)
			if !ok {
				if i, seen := missIndex[tok]; seen {
					r.Unresolved[i].Count++
				} else {
					missIndex[tok] = len(r.Unresolved)
					r.Unresolved = append(r.Unresolved, Unresolved{Token: tok, Count: 1})
				}
				continue
			}
			for _, p := range phones {
				r.PhonemeFrequency[p]++
				r.Phonemes++
			}
		}
	}

	if words := a.Vocabulary.Words(); len(words) > 0 {
		hit := 0
		for _, w := range words {
			if r.WordFrequency[w] > 0 {
				hit++
			}
		}
		r.VocabularyCoverage = float64(hit) / float64(len(words))
	}
	r.PhonemeCoverage = float64(len(r.PhonemeFrequency)) / float64(phoneme.Size)
	return r
}

func (a *Analyzer) resolve(tok string) ([]phoneme.Phoneme, bool) {
	if a.Resolver == nil {
		return nil, false
	}
	return a.Resolver.Resolve(tok)
}

// TopWords returns the n most frequent words, ties broken alphabetically.
// n <= 0 returns every word.
func (r Report) TopWords(n int) []WordCount {
	out := make([]WordCount, 0, len(r.WordFrequency))
	for w, c := range r.WordFrequency {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PhonemesByFrequency returns all 39 phonemes, most frequent first, ties in
// inventory order. Absent phonemes are included with a zero count.
func (r Report) PhonemesByFrequency() []PhonemeCount {
	inv := phoneme.Inventory()
	out := make([]PhonemeCount, len(inv))
	for i, p := range inv {
		out[i] = PhonemeCount{Phoneme: p, Count: r.PhonemeFrequency[p]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// MissingPhonemes returns the phonemes that never occur, in inventory order.
func (r Report) MissingPhonemes() []phoneme.Phoneme {
	var out []phoneme.Phoneme
	for _, p := range phoneme.Inventory() {
		if r.PhonemeFrequency[p] == 0 {
			out = append(out, p)
		}
	}
	return out
}

// Share returns the fraction of all counted phonemes that are p.
func (r Report) Share(p phoneme.Phoneme) float64 {
	if r.Phonemes == 0 {
		return 0
	}
	return float64(r.PhonemeFrequency[p]) / float64(r.Phonemes)
}
