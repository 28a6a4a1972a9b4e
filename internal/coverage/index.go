// Package coverage builds the word-to-sentence index the greedy selector
// scores against.
package coverage

import (
	"log/slog"
	"sort"

	"phonocover/internal/corpus"
	"phonocover/internal/logging"
)

// Index maps each target word to the ids of the sentences containing it and
// carries each word's rarity. It is read-only after Build.
type Index struct {
	// Buckets holds ascending sentence ids per target word. Every target
	// word has an entry, possibly empty.
	Buckets map[string][]int
	// Rarity is 1/max(1, len(bucket)).
	Rarity map[string]float64
	// ZeroCoverage lists target words no sentence contains, in vocabulary order.
	ZeroCoverage []string

	words         []string
	sentenceWords map[int][]string
	candidates    []int
	skipped       int
	sentences     int
}

// Build indexes sentences against vocab. Sentences without tokens, and
// repeats of an id already indexed, are skipped and counted. Zero-coverage words are logged and listed but never
// stop indexing.
func Build(sentences []corpus.Sentence, vocab *corpus.Vocabulary, logger *slog.Logger) *Index {
	logger = logging.NewComponentLogger(logger, "coverage")
	words := vocab.Words()

	ix := &Index{
		Buckets:       make(map[string][]int, len(words)),
		Rarity:        make(map[string]float64, len(words)),
		words:         words,
		sentenceWords: make(map[int][]string),
	}
	for _, w := range words {
		ix.Buckets[w] = []int{}
	}

	seen := make(map[int]struct{}, len(sentences))
	for _, s := range sentences {
		if _, dup := seen[s.ID]; dup {
			ix.skipped++
			logger.Debug("skipping duplicate sentence id", logging.Int("sentence_id", s.ID))
			continue
		}
		seen[s.ID] = struct{}{}
		if len(s.Tokens) == 0 {
			ix.skipped++
			logger.Debug("skipping sentence without tokens", logging.Int("sentence_id", s.ID))
			continue
		}
		ix.sentences++

		present := make(map[string]struct{}, len(s.Tokens))
		for _, tok := range s.Tokens {
			if vocab.Contains(tok) {
				present[tok] = struct{}{}
			}
		}
		if len(present) == 0 {
			continue
		}
		hits := make([]string, 0, len(present))
		for w := range present {
			ix.Buckets[w] = append(ix.Buckets[w], s.ID)
			hits = append(hits, w)
		}
		sort.Slice(hits, func(i, j int) bool {
			return vocab.Position(hits[i]) < vocab.Position(hits[j])
		})
		ix.sentenceWords[s.ID] = hits
		ix.candidates = append(ix.candidates, s.ID)
	}

	sort.Ints(ix.candidates)
	for _, w := range words {
		bucket := ix.Buckets[w]
		sort.Ints(bucket)
		ix.Rarity[w] = 1 / float64(max(1, len(bucket)))
		if len(bucket) == 0 {
			ix.ZeroCoverage = append(ix.ZeroCoverage, w)
			logging.WarnWithContext(logger, "target word has zero coverage", "coverage_zero_word",
				logging.String("word", w),
				logging.String(logging.FieldErrorHint, "add sentences containing the word or drop it from the vocabulary"),
				logging.String(logging.FieldImpact, "word will be reported as under-covered"))
		}
	}

	logger.Debug("coverage index built",
		logging.Int("target_words", len(words)),
		logging.Int("indexed_sentences", ix.sentences),
		logging.Int("candidate_sentences", len(ix.candidates)),
		logging.Int("zero_coverage", len(ix.ZeroCoverage)),
		logging.Int("skipped", ix.skipped))
	return ix
}

// Words returns the target words in vocabulary order.
func (ix *Index) Words() []string {
	return append([]string(nil), ix.words...)
}

// SentenceWords returns the distinct target words of a sentence in
// vocabulary order. The slice must not be modified.
func (ix *Index) SentenceWords(id int) []string {
	return ix.sentenceWords[id]
}

// Candidates returns the ascending ids of sentences containing at least one
// target word. The slice must not be modified.
func (ix *Index) Candidates() []int {
	return ix.candidates
}

// Count returns how many sentences contain word.
func (ix *Index) Count(word string) int {
	return len(ix.Buckets[word])
}

// Skipped returns the number of sentences dropped for having no tokens or a
// repeated id.
func (ix *Index) Skipped() int {
	return ix.skipped
}

// Sentences returns the number of indexed sentences.
func (ix *Index) Sentences() int {
	return ix.sentences
}
