package runstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
	"phonocover/internal/runstore"
	"phonocover/internal/selector"
	"phonocover/internal/testsupport"
)

func selectRun(t *testing.T) (*runstore.Run, *coverage.Index) {
	t.Helper()
	vocab := corpus.NewVocabulary(
		corpus.VocabItem{Word: "cat", MinCoverage: 1},
		corpus.VocabItem{Word: "dog"},
		corpus.VocabItem{Word: "fish", MinCoverage: 1},
	)
	sentences := corpus.NewSentences([]string{"the cat sat", "a dog ran", "cat and dog play", "birds fly"})
	index := coverage.Build(sentences, vocab, nil)
	opts := selector.DefaultOptions()
	result, err := selector.Select(context.Background(), sentences, index, vocab, opts)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	run := runstore.NewRun(result, sentences, vocab, opts)
	run.CorpusPath = "/tmp/corpus.txt"
	return run, index
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRunStore(t, cfg)
	ctx := context.Background()

	run, index := selectRun(t)
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be assigned: %+v", run)
	}

	loaded, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(loaded.Selected, run.Selected) {
		t.Fatalf("selected mismatch: %v vs %v", loaded.Selected, run.Selected)
	}
	if !reflect.DeepEqual(loaded.Texts, run.Texts) {
		t.Fatalf("texts mismatch: %v vs %v", loaded.Texts, run.Texts)
	}
	if !reflect.DeepEqual(loaded.Coverage, run.Coverage) {
		t.Fatalf("coverage mismatch: %v vs %v", loaded.Coverage, run.Coverage)
	}
	if !reflect.DeepEqual(loaded.State(), run.State()) {
		t.Fatalf("state mismatch: %+v vs %+v", loaded.State(), run.State())
	}
	if !reflect.DeepEqual(loaded.Trace, run.Trace) {
		t.Fatalf("trace mismatch: %+v vs %+v", loaded.Trace, run.Trace)
	}
	if loaded.Status != run.Status || loaded.CorpusPath != run.CorpusPath || loaded.Elapsed != run.Elapsed {
		t.Fatalf("metadata mismatch: %+v vs %+v", loaded, run)
	}
	if !loaded.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", loaded.CreatedAt, run.CreatedAt)
	}
	if err := selector.Verify(loaded.State(), index); err != nil {
		t.Fatalf("Verify after reload: %v", err)
	}

	// dog reaches its default threshold of 2; fish never occurs.
	want := []selector.Shortfall{{Word: "fish", Count: 0, Threshold: 1}}
	if got := loaded.UnderCovered(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGetByPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRunStore(t, cfg)
	ctx := context.Background()

	first, _ := selectRun(t)
	first.ID = "abc-111"
	second, _ := selectRun(t)
	second.ID = "abd-222"
	for _, run := range []*runstore.Run{first, second} {
		if err := store.Save(ctx, run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	loaded, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get prefix: %v", err)
	}
	if loaded.ID != "abc-111" {
		t.Fatalf("expected abc-111, got %s", loaded.ID)
	}
	if _, err := store.Get(ctx, "ab"); !errors.Is(err, runstore.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := store.Get(ctx, "zzz"); !errors.Is(err, runstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRunStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run, _ := selectRun(t)
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := store.Save(ctx, run); err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, run.ID)
	}

	summaries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(summaries))
	}
	if summaries[0].ID != ids[2] {
		t.Fatalf("expected newest first, got %s", summaries[0].ID)
	}
	if summaries[0].Selected != 3 || summaries[0].UnderCovered != 1 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 run, got %d", len(limited))
	}

	removed, err := store.Delete(ctx, ids[0])
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	if _, err := store.Get(ctx, ids[0]); !errors.Is(err, runstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	removed, err = store.Delete(ctx, ids[0])
	if err != nil || removed {
		t.Fatalf("second Delete: removed=%v err=%v", removed, err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := runstore.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	run, _ := selectRun(t)
	if err := store.Save(context.Background(), run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := runstore.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Get(context.Background(), run.ID); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}
