package selector

import (
	"fmt"
	"sort"
	"strings"

	"phonocover/internal/coverage"
)

// Recount derives coverage counts for every target word directly from the
// selected ids.
func Recount(selected []int, index *coverage.Index) map[string]int {
	counts := make(map[string]int)
	for _, w := range index.Words() {
		counts[w] = 0
	}
	for _, id := range selected {
		for _, w := range index.SentenceWords(id) {
			counts[w]++
		}
	}
	return counts
}

// Verify checks a selection state against the index: ids are distinct and
// every reported coverage count equals the recomputed one. A mismatch wraps
// ErrDrift.
func Verify(state State, index *coverage.Index) error {
	seen := make(map[int]struct{}, len(state.Selected))
	for _, id := range state.Selected {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: sentence %d selected twice", ErrDrift, id)
		}
		seen[id] = struct{}{}
	}

	want := Recount(state.Selected, index)
	var diffs []string
	for w, n := range want {
		if got := state.CoverageCount[w]; got != n {
			diffs = append(diffs, fmt.Sprintf("%s: reported %d, actual %d", w, got, n))
		}
	}
	for w, got := range state.CoverageCount {
		if _, known := want[w]; !known && got != 0 {
			diffs = append(diffs, fmt.Sprintf("%s: reported %d for a non-target word", w, got))
		}
	}
	if len(diffs) > 0 {
		sort.Strings(diffs)
		return fmt.Errorf("%w: %s", ErrDrift, strings.Join(diffs, "; "))
	}
	return nil
}
