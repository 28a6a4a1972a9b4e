package coverage_test

import (
	"reflect"
	"testing"

	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
)

func TestBuildBucketsAndRarity(t *testing.T) {
	sentences := corpus.NewSentences([]string{"the cat sat", "a dog ran", "cat and dog play", "birds fly", "..."})
	vocab := corpus.NewVocabularyFromWords("dog", "cat", "fish")

	ix := coverage.Build(sentences, vocab, nil)

	if !reflect.DeepEqual(ix.Buckets["cat"], []int{0, 2}) || !reflect.DeepEqual(ix.Buckets["dog"], []int{1, 2}) {
		t.Fatalf("unexpected buckets %v", ix.Buckets)
	}
	if got := ix.Buckets["fish"]; got == nil || len(got) != 0 {
		t.Fatalf("zero-coverage word should have an empty bucket, got %#v", got)
	}
	if ix.Rarity["cat"] != 0.5 || ix.Rarity["fish"] != 1 {
		t.Fatalf("unexpected rarity %v", ix.Rarity)
	}
	if !reflect.DeepEqual(ix.ZeroCoverage, []string{"fish"}) {
		t.Fatalf("unexpected zero coverage %v", ix.ZeroCoverage)
	}
	if !reflect.DeepEqual(ix.SentenceWords(2), []string{"dog", "cat"}) {
		t.Fatalf("sentence words should follow vocabulary order, got %v", ix.SentenceWords(2))
	}
	if !reflect.DeepEqual(ix.Candidates(), []int{0, 1, 2}) {
		t.Fatalf("unexpected candidates %v", ix.Candidates())
	}
	if ix.Skipped() != 1 || ix.Sentences() != 4 {
		t.Fatalf("expected one skipped sentence, got skipped=%d sentences=%d", ix.Skipped(), ix.Sentences())
	}
}

func TestBuildCountsSentenceOncePerWord(t *testing.T) {
	sentences := corpus.NewSentences([]string{"cat cat cat", "Cat!"})
	ix := coverage.Build(sentences, corpus.NewVocabularyFromWords("cat"), nil)
	if ix.Count("cat") != 2 {
		t.Fatalf("expected two sentences, got %d", ix.Count("cat"))
	}
}

func TestBuildSkipsDuplicateIDs(t *testing.T) {
	sentences := []corpus.Sentence{
		{ID: 0, Text: "the cat", Tokens: []string{"the", "cat"}},
		{ID: 1, Text: "a cat", Tokens: []string{"a", "cat"}},
		{ID: 0, Text: "cat again", Tokens: []string{"cat", "again"}},
	}
	ix := coverage.Build(sentences, corpus.NewVocabularyFromWords("cat"), nil)
	if !reflect.DeepEqual(ix.Candidates(), []int{0, 1}) {
		t.Fatalf("candidates = %v, want [0 1]", ix.Candidates())
	}
	if !reflect.DeepEqual(ix.Buckets["cat"], []int{0, 1}) {
		t.Fatalf("cat bucket = %v, want [0 1]", ix.Buckets["cat"])
	}
	if ix.Skipped() != 1 || ix.Sentences() != 2 {
		t.Fatalf("skipped = %d sentences = %d, want 1 and 2", ix.Skipped(), ix.Sentences())
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	ix := coverage.Build(nil, corpus.NewVocabularyFromWords("cat"), nil)
	if !reflect.DeepEqual(ix.ZeroCoverage, []string{"cat"}) || len(ix.Candidates()) != 0 {
		t.Fatalf("unexpected index for empty corpus: %+v", ix)
	}
	ix = coverage.Build(corpus.NewSentences([]string{"cat"}), corpus.NewVocabulary(), nil)
	if len(ix.Buckets) != 0 || len(ix.Candidates()) != 0 {
		t.Fatalf("unexpected index for empty vocabulary: %+v", ix)
	}
}

func TestBuildContractionTokens(t *testing.T) {
	sentences := corpus.NewSentences([]string{"I don't know", "do not"})
	ix := coverage.Build(sentences, corpus.NewVocabularyFromWords("Don’t", "not"), nil)
	if !reflect.DeepEqual(ix.Buckets["don't"], []int{0}) || !reflect.DeepEqual(ix.Buckets["not"], []int{1}) {
		t.Fatalf("unexpected buckets %v", ix.Buckets)
	}
}
