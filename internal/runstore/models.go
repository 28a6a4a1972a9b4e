package runstore

import (
	"time"

	"phonocover/internal/corpus"
	"phonocover/internal/selector"
	"phonocover/internal/textutil"
)

// WordCoverage is the final coverage of one target word.
type WordCoverage struct {
	Word      string `json:"word"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
}

// Run is one persisted selection.
type Run struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	Status         selector.Status `json:"status"`
	CorpusPath     string          `json:"corpus_path,omitempty"`
	VocabularyPath string          `json:"vocabulary_path,omitempty"`
	MaxSentences   int             `json:"max_sentences"`
	MinCoverage    int             `json:"min_coverage"`
	Iteration      int             `json:"iteration"`
	Elapsed        time.Duration   `json:"elapsed"`
	// Selected holds sentence ids in selection order; Texts is parallel to it.
	Selected []int           `json:"selected"`
	Texts    []string        `json:"texts"`
	Coverage []WordCoverage  `json:"coverage"`
	Trace    []selector.Step `json:"trace,omitempty"`
}

// Summary is a run row without its selections.
type Summary struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Status       selector.Status `json:"status"`
	CorpusPath   string          `json:"corpus_path,omitempty"`
	Selected     int             `json:"selected"`
	UnderCovered int             `json:"under_covered"`
}

// NewRun captures a selector result. Words are recorded in vocabulary
// order with the threshold each one was measured against.
func NewRun(result *selector.Result, sentences []corpus.Sentence, vocab *corpus.Vocabulary, opts selector.Options) *Run {
	byID := corpus.ByID(sentences)
	run := &Run{
		Status:       result.Status,
		MaxSentences: opts.MaxSentences,
		MinCoverage:  opts.MinCoverage,
		Iteration:    result.Iteration,
		Elapsed:      result.Elapsed,
		Selected:     append([]int{}, result.Selected...),
		Texts:        make([]string, len(result.Selected)),
		Trace:        append([]selector.Step(nil), result.Trace...),
	}
	for i, id := range result.Selected {
		run.Texts[i] = byID[id].Text
	}
	for _, w := range vocab.Words() {
		run.Coverage = append(run.Coverage, WordCoverage{
			Word:      w,
			Count:     result.CoverageCount[w],
			Threshold: vocab.Threshold(w, opts.MinCoverage),
		})
	}
	return run
}

// State rebuilds the selection state.
func (r *Run) State() selector.State {
	counts := make(map[string]int, len(r.Coverage))
	for _, c := range r.Coverage {
		counts[c.Word] = c.Count
	}
	return selector.State{
		Selected:      append([]int{}, r.Selected...),
		CoverageCount: counts,
		Iteration:     r.Iteration,
	}
}

// UnderCovered lists words below threshold in vocabulary order.
func (r *Run) UnderCovered() []selector.Shortfall {
	out := []selector.Shortfall{}
	for _, c := range r.Coverage {
		if c.Count < c.Threshold {
			out = append(out, selector.Shortfall{Word: c.Word, Count: c.Count, Threshold: c.Threshold})
		}
	}
	return out
}

// Vocabulary rebuilds the target vocabulary with the recorded thresholds.
func (r *Run) Vocabulary() *corpus.Vocabulary {
	items := make([]corpus.VocabItem, len(r.Coverage))
	for i, c := range r.Coverage {
		items[i] = corpus.VocabItem{Word: c.Word, MinCoverage: c.Threshold}
	}
	return corpus.NewVocabulary(items...)
}

// Sentences returns the selected sentences with their original ids, tokenized
// so they can be re-indexed.
func (r *Run) Sentences() []corpus.Sentence {
	out := make([]corpus.Sentence, len(r.Selected))
	for i, id := range r.Selected {
		text := ""
		if i < len(r.Texts) {
			text = r.Texts[i]
		}
		out[i] = corpus.Sentence{ID: id, Text: text, Tokens: textutil.Tokenize(text)}
	}
	return out
}
