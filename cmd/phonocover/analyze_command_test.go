package main

import "testing"

func TestAnalyzeCorpus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"analyze", "--corpus", env.corpusPath, "--vocab", env.vocabPath}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Corpus: 4 sentences, 18 tokens")
	requireContains(t, out, "Vocabulary coverage: 66.7%")
	requireContains(t, out, "Unresolved: and (1)")
}

func TestAnalyzeSavedRunAgainstCorpus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"select", "-w", env.vocabPath, "-s", env.corpusPath, "--max", "1", "--save"}, env.configPath)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	id := runIDFrom(t, out)

	out, _, err = runCLI(t, []string{"analyze", "--run", id, "--corpus", env.corpusPath}, env.configPath)
	if err != nil {
		t.Fatalf("analyze --run: %v", err)
	}
	requireContains(t, out, "excluded")
	requireContains(t, out, "Selected: 1 sentences, 6 tokens")
}
