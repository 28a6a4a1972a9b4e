package selector

import (
	"golang.org/x/sync/errgroup"

	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
)

// minParallelCandidates keeps small passes on the calling goroutine.
const minParallelCandidates = 256

type candidate struct {
	id    int
	score float64
}

// better applies the selection order: strictly higher score, then lower id.
func (c candidate) better(other candidate) bool {
	if c.score != other.score {
		return c.score > other.score
	}
	return c.id < other.id
}

type scorer struct {
	index      *coverage.Index
	thresholds map[string]int
	rarity     map[string]float64
	pending    []int
	workers    int
}

func newScorer(index *coverage.Index, vocab *corpus.Vocabulary, def, workers int) *scorer {
	words := index.Words()
	thresholds := make(map[string]int, len(words))
	for _, w := range words {
		thresholds[w] = vocab.Threshold(w, def)
	}
	return &scorer{
		index:      index,
		thresholds: thresholds,
		rarity:     index.Rarity,
		pending:    append([]int(nil), index.Candidates()...),
		workers:    workers,
	}
}

// score is a pure function of the sentence and the current counts. Words are
// summed in vocabulary order so floating-point results do not depend on
// which goroutine computes them.
func (s *scorer) score(id int, counts map[string]int) float64 {
	var total float64
	for _, w := range s.index.SentenceWords(id) {
		if counts[w] < s.thresholds[w] {
			total += deficientBase + rarityWeight*s.rarity[w]
		} else {
			total += satisfiedWeight
		}
	}
	return total
}

// best returns the highest scoring unselected candidate.
func (s *scorer) best(counts map[string]int) (candidate, bool) {
	if len(s.pending) == 0 {
		return candidate{}, false
	}
	if s.workers <= 1 || len(s.pending) < minParallelCandidates {
		return s.bestOf(s.pending, counts), true
	}

	workers := min(s.workers, len(s.pending))
	chunk := (len(s.pending) + workers - 1) / workers
	results := make([]candidate, workers)
	var g errgroup.Group
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(s.pending))
		if lo >= hi {
			results[w] = candidate{id: -1, score: -1}
			continue
		}
		ids := s.pending[lo:hi]
		g.Go(func() error {
			results[w] = s.bestOf(ids, counts)
			return nil
		})
	}
	_ = g.Wait()

	winner := results[0]
	for _, c := range results[1:] {
		if c.id >= 0 && c.better(winner) {
			winner = c
		}
	}
	return winner, true
}

func (s *scorer) bestOf(ids []int, counts map[string]int) candidate {
	winner := candidate{id: ids[0], score: s.score(ids[0], counts)}
	for _, id := range ids[1:] {
		c := candidate{id: id, score: s.score(id, counts)}
		if c.better(winner) {
			winner = c
		}
	}
	return winner
}

// commit removes id from the pending candidates, bumps the coverage of its target words, and
// returns how many of them were still deficient.
func (s *scorer) commit(id int, counts map[string]int) int {
	raised := 0
	for _, w := range s.index.SentenceWords(id) {
		if counts[w] < s.thresholds[w] {
			raised++
		}
		counts[w]++
	}
	for i, pid := range s.pending {
		if pid == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	return raised
}

func (s *scorer) deficient(counts map[string]int) int {
	n := 0
	for w, threshold := range s.thresholds {
		if counts[w] < threshold {
			n++
		}
	}
	return n
}
