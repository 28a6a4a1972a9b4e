package main

import (
	"os"
	"strings"
	"testing"
)

func TestPicksLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"picks", "add", "cat", "don't"}, env.configPath)
	if err != nil {
		t.Fatalf("picks add: %v", err)
	}
	requireContains(t, out, `Added "cat": K AE T`)
	requireContains(t, out, `Added "don't": D UW N AA T`)

	out, _, err = runCLI(t, []string{"picks", "add", "CAT", "zorp"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for an unresolved pick")
	}
	requireContains(t, out, `Skipped "CAT"`)
	requireContains(t, out, `Rejected "zorp"`)

	data, err := os.ReadFile(env.cfg.Paths.PicksFile)
	if err != nil {
		t.Fatalf("read picks file: %v", err)
	}
	if strings.Contains(string(data), "zorp") {
		t.Fatalf("unresolved pick persisted: %s", data)
	}

	out, _, err = runCLI(t, []string{"picks", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("picks list: %v", err)
	}
	requireContains(t, out, "don't")

	out, _, err = runCLI(t, []string{"picks", "show", "--target", "39"}, env.configPath)
	if err != nil {
		t.Fatalf("picks show: %v", err)
	}
	requireContains(t, out, "Picks: 2  Phonemes: 8 of 39 target slots")
	requireContains(t, out, "Phonemes at target: 7/39")

	if _, _, err := runCLI(t, []string{"picks", "show", "--target", "10"}, env.configPath); err == nil {
		t.Fatal("expected error for a target below the inventory size")
	}

	out, _, err = runCLI(t, []string{"picks", "remove", "Cat"}, env.configPath)
	if err != nil {
		t.Fatalf("picks remove: %v", err)
	}
	requireContains(t, out, `Removed "Cat"`)

	out, _, err = runCLI(t, []string{"picks", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("picks clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 picks")

	out, _, err = runCLI(t, []string{"picks", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("picks list: %v", err)
	}
	requireContains(t, out, "Pick list is empty")
}
