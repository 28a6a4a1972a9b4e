package corpus

import "phonocover/internal/textutil"

// DefaultMinCoverage is the per-word threshold used when neither the item nor
// the caller sets one.
const DefaultMinCoverage = 2

// VocabItem is one target word. A zero MinCoverage defers to the caller's
// default threshold.
type VocabItem struct {
	Word        string `json:"word"`
	MinCoverage int    `json:"min_coverage,omitempty"`
}

// Vocabulary is an ordered set of target words, unique after normalization.
type Vocabulary struct {
	items []VocabItem
	index map[string]int
}

// NewVocabulary normalizes and de-duplicates items, keeping the first
// occurrence of each word. Empty words are dropped.
func NewVocabulary(items ...VocabItem) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int, len(items))}
	for _, item := range items {
		v.add(item)
	}
	return v
}

// NewVocabularyFromWords builds a vocabulary with inherited thresholds.
func NewVocabularyFromWords(words ...string) *Vocabulary {
	items := make([]VocabItem, len(words))
	for i, w := range words {
		items[i] = VocabItem{Word: w}
	}
	return NewVocabulary(items...)
}

func (v *Vocabulary) add(item VocabItem) bool {
	item.Word = textutil.NormalizeWord(item.Word)
	if item.Word == "" {
		return false
	}
	if _, dup := v.index[item.Word]; dup {
		return false
	}
	if item.MinCoverage < 0 {
		item.MinCoverage = 0
	}
	v.index[item.Word] = len(v.items)
	v.items = append(v.items, item)
	return true
}

// Len returns the number of target words.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Items returns a copy of the items in vocabulary order.
func (v *Vocabulary) Items() []VocabItem {
	if v == nil {
		return nil
	}
	return append([]VocabItem(nil), v.items...)
}

// Words returns the target words in vocabulary order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.items))
	for i, item := range v.items {
		out[i] = item.Word
	}
	return out
}

// Contains reports whether the normalized word is a target.
func (v *Vocabulary) Contains(word string) bool {
	if v == nil {
		return false
	}
	_, ok := v.index[word]
	return ok
}

// Position returns the vocabulary order of word, or -1.
func (v *Vocabulary) Position(word string) int {
	if v == nil {
		return -1
	}
	if i, ok := v.index[word]; ok {
		return i
	}
	return -1
}

// Threshold returns the minimum coverage for word, falling back to def and
// then DefaultMinCoverage.
func (v *Vocabulary) Threshold(word string, def int) int {
	if v != nil {
		if i, ok := v.index[word]; ok && v.items[i].MinCoverage > 0 {
			return v.items[i].MinCoverage
		}
	}
	if def > 0 {
		return def
	}
	return DefaultMinCoverage
}
