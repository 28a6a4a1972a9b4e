package frequency_test

import (
	"reflect"
	"testing"

	"phonocover/internal/corpus"
	"phonocover/internal/frequency"
	"phonocover/internal/phoneme"
	"phonocover/internal/testsupport"
)

func newAnalyzer(t *testing.T, words ...string) *frequency.Analyzer {
	t.Helper()
	return frequency.NewAnalyzer(testsupport.NewResolver(t), corpus.NewVocabularyFromWords(words...))
}

func TestAnalyzeCountsWordsAndPhonemes(t *testing.T) {
	a := newAnalyzer(t, "cat", "dog")
	sentences := corpus.NewSentences([]string{"The cat sat.", "A dog ran on the mat", "zorp cat"})

	r := a.Analyze(sentences)

	if r.Sentences != 3 || r.Tokens != 11 || r.Phonemes != 25 {
		t.Fatalf("unexpected totals: sentences=%d tokens=%d phonemes=%d", r.Sentences, r.Tokens, r.Phonemes)
	}
	if r.WordFrequency["cat"] != 2 || r.WordFrequency["the"] != 2 || r.WordFrequency["zorp"] != 1 {
		t.Fatalf("unexpected word frequency: %v", r.WordFrequency)
	}
	wantPhones := map[phoneme.Phoneme]int{"AE": 5, "AH": 3, "T": 4, "DH": 2}
	for p, n := range wantPhones {
		if r.PhonemeFrequency[p] != n {
			t.Fatalf("phoneme %s: expected %d, got %d", p, n, r.PhonemeFrequency[p])
		}
	}
	if r.VocabularyCoverage != 1 {
		t.Fatalf("expected full vocabulary coverage, got %v", r.VocabularyCoverage)
	}
	if r.PhonemeCoverage != 13.0/39.0 {
		t.Fatalf("expected 13/39 phoneme coverage, got %v", r.PhonemeCoverage)
	}
	want := []frequency.Unresolved{{Token: "zorp", Count: 1}}
	if !reflect.DeepEqual(r.Unresolved, want) {
		t.Fatalf("expected %v, got %v", want, r.Unresolved)
	}
}

func TestAnalyzeUnresolvedFirstSeenOrder(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(corpus.NewSentences([]string{"blorp cat quux", "quux blorp quux"}))

	want := []frequency.Unresolved{{Token: "blorp", Count: 2}, {Token: "quux", Count: 3}}
	if !reflect.DeepEqual(r.Unresolved, want) {
		t.Fatalf("expected %v, got %v", want, r.Unresolved)
	}
	if r.VocabularyCoverage != 0 {
		t.Fatalf("empty vocabulary should report zero coverage, got %v", r.VocabularyCoverage)
	}
}

func TestAnalyzeContractions(t *testing.T) {
	a := newAnalyzer(t, "don't")
	r := a.Analyze(corpus.NewSentences([]string{"I don't"}))

	if len(r.Unresolved) != 0 {
		t.Fatalf("expected every token resolved, got %v", r.Unresolved)
	}
	// I + do + not
	if r.Phonemes != 1+2+3 {
		t.Fatalf("expected 6 phonemes, got %d", r.Phonemes)
	}
	if r.VocabularyCoverage != 1 {
		t.Fatalf("expected vocabulary coverage 1, got %v", r.VocabularyCoverage)
	}
}

func TestAnalyzeEmptySubset(t *testing.T) {
	a := newAnalyzer(t, "cat")
	r := a.Analyze(nil)
	if r.Tokens != 0 || r.PhonemeCoverage != 0 || r.VocabularyCoverage != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if got := r.MissingPhonemes(); len(got) != phoneme.Size {
		t.Fatalf("expected all %d phonemes missing, got %d", phoneme.Size, len(got))
	}
}

func TestReportHelpers(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(corpus.NewSentences([]string{"cat cat dog", "dog cat boy"}))

	top := r.TopWords(2)
	want := []frequency.WordCount{{Word: "cat", Count: 3}, {Word: "dog", Count: 2}}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("expected %v, got %v", want, top)
	}
	if all := r.TopWords(0); len(all) != 3 {
		t.Fatalf("expected 3 words, got %v", all)
	}

	ranked := r.PhonemesByFrequency()
	if len(ranked) != phoneme.Size {
		t.Fatalf("expected %d phonemes, got %d", phoneme.Size, len(ranked))
	}
	if ranked[0].Count < ranked[len(ranked)-1].Count {
		t.Fatalf("phonemes not sorted by frequency: %v", ranked)
	}
	missing := r.MissingPhonemes()
	for _, p := range missing {
		if r.PhonemeFrequency[p] != 0 {
			t.Fatalf("phoneme %s reported missing but counted", p)
		}
	}
	if len(missing)+len(r.PhonemeFrequency) != phoneme.Size {
		t.Fatalf("missing and present phonemes do not partition the inventory")
	}
	if share := r.Share("AE"); share <= 0 || share >= 1 {
		t.Fatalf("unexpected AE share %v", share)
	}
}

func TestCompareSplitsSelection(t *testing.T) {
	a := newAnalyzer(t, "cat", "dog")
	sentences := corpus.NewSentences([]string{"the cat", "a dog", "she will sing"})

	c := a.Compare(sentences, []int{1, 1, 99})

	if c.Selected.Sentences != 1 || c.Excluded.Sentences != 2 || c.Combined.Sentences != 3 {
		t.Fatalf("unexpected split: %d/%d/%d", c.Selected.Sentences, c.Excluded.Sentences, c.Combined.Sentences)
	}
	if c.Selected.VocabularyCoverage != 0.5 || c.Combined.VocabularyCoverage != 1 {
		t.Fatalf("unexpected coverage: selected=%v combined=%v", c.Selected.VocabularyCoverage, c.Combined.VocabularyCoverage)
	}
	if c.Selected.Tokens+c.Excluded.Tokens != c.Combined.Tokens {
		t.Fatalf("token totals do not add up")
	}
	for _, p := range phoneme.Inventory() {
		if c.Selected.PhonemeFrequency[p]+c.Excluded.PhonemeFrequency[p] != c.Combined.PhonemeFrequency[p] {
			t.Fatalf("phoneme %s totals do not add up", p)
		}
	}
}
