package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
	"phonocover/internal/frequency"
	"phonocover/internal/report"
	"phonocover/internal/runstore"
	"phonocover/internal/selector"
	"phonocover/internal/testsupport"
)

func buildReport(t *testing.T) *report.Report {
	t.Helper()
	vocab := corpus.NewVocabulary(
		corpus.VocabItem{Word: "cat", MinCoverage: 1},
		corpus.VocabItem{Word: "fish", MinCoverage: 1},
	)
	sentences := corpus.NewSentences([]string{"the cat sat", "zorp the dog", "a cat on the mat"})
	index := coverage.Build(sentences, vocab, nil)
	opts := selector.DefaultOptions()
	opts.MaxSentences = 1
	result, err := selector.Select(context.Background(), sentences, index, vocab, opts)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	run := runstore.NewRun(result, sentences, vocab, opts)
	run.ID = "run-1234"
	analyzer := frequency.NewAnalyzer(testsupport.NewResolver(t), vocab)
	cmp := analyzer.Compare(sentences, run.Selected)
	return report.New(run, &cmp)
}

func TestWriteText(t *testing.T) {
	rep := buildReport(t)
	var buf bytes.Buffer
	if err := rep.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Selection run run-1234",
		"Status: completed",
		"[0] the cat sat",
		"Under-covered: fish (0/1)",
		"selected",
		"combined",
		"Unresolved tokens: zorp x1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteTextWithoutFrequency(t *testing.T) {
	rep := buildReport(t)
	rep.Frequency = nil
	var buf bytes.Buffer
	if err := rep.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if strings.Contains(buf.String(), "Phonemes in selection") {
		t.Fatalf("expected frequency section to be omitted:\n%s", buf.String())
	}
}

func TestWriteFiles(t *testing.T) {
	rep := buildReport(t)
	base := filepath.Join(t.TempDir(), "reports", "run")
	jsonPath, textPath, err := rep.WriteFiles(base)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded struct {
		Run struct {
			ID       string `json:"id"`
			Selected []int  `json:"selected"`
		} `json:"run"`
		UnderCovered []selector.Shortfall `json:"under_covered"`
		Frequency    struct {
			Selected struct {
				Sentences int `json:"sentences"`
			} `json:"selected"`
		} `json:"frequency"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Run.ID != "run-1234" || len(decoded.Run.Selected) != 1 {
		t.Fatalf("unexpected run in json: %+v", decoded.Run)
	}
	if len(decoded.UnderCovered) != 1 || decoded.UnderCovered[0].Word != "fish" {
		t.Fatalf("unexpected under-covered: %+v", decoded.UnderCovered)
	}
	if decoded.Frequency.Selected.Sentences != 1 {
		t.Fatalf("unexpected selected sentences: %d", decoded.Frequency.Selected.Sentences)
	}

	if _, err := os.Stat(textPath); err != nil {
		t.Fatalf("expected text report: %v", err)
	}
}
