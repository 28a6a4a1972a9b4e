package main

import (
	"path/filepath"
	"testing"

	"phonocover/internal/testsupport"
)

func TestSimilarFlagsNearDuplicates(t *testing.T) {
	env := setupCLITestEnv(t)
	corpusPath := testsupport.WriteLines(t, filepath.Join(env.baseDir, "near.txt"),
		"The cat sat on the mat.",
		"A dog ran.",
		"The cat sat on the mat today.",
	)

	out, _, err := runCLI(t, []string{"similar", "--corpus", corpusPath}, env.configPath)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	requireContains(t, out, "1 similar pairs")
	requireContains(t, out, "today")

	out, _, err = runCLI(t, []string{"similar", "--corpus", corpusPath, "--threshold", "0.95"}, env.configPath)
	if err != nil {
		t.Fatalf("similar --threshold: %v", err)
	}
	requireContains(t, out, "No sentence pairs")

	if _, _, err := runCLI(t, []string{"similar"}, env.configPath); err == nil {
		t.Fatal("expected error without --corpus or --run")
	}
}
