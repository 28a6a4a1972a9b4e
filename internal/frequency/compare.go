package frequency

import "phonocover/internal/corpus"

// Comparison holds reports for a selection, the sentences it left out, and
// the whole set.
type Comparison struct {
	Selected Report `json:"selected"`
	Excluded Report `json:"excluded"`
	Combined Report `json:"combined"`
}

// Compare splits all by selectedIDs and analyzes each part. Selected
// sentences are analyzed in selection order; ids not present in all are
// ignored.
func (a *Analyzer) Compare(all []corpus.Sentence, selectedIDs []int) Comparison {
	byID := corpus.ByID(all)
	picked := make(map[int]struct{}, len(selectedIDs))
	selected := make([]corpus.Sentence, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		s, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := picked[id]; dup {
			continue
		}
		picked[id] = struct{}{}
		selected = append(selected, s)
	}
	excluded := make([]corpus.Sentence, 0, len(all)-len(selected))
	for _, s := range all {
		if _, ok := picked[s.ID]; !ok {
			excluded = append(excluded, s)
		}
	}
	return Comparison{
		Selected: a.Analyze(selected),
		Excluded: a.Analyze(excluded),
		Combined: a.Analyze(all),
	}
}
