package main

import (
	"encoding/json"
	"testing"
)

func TestSaveListShowDeleteRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"select", "-w", env.vocabPath, "-s", env.corpusPath, "--save"}, env.configPath)
	if err != nil {
		t.Fatalf("select --save: %v", err)
	}
	requireContains(t, out, "Saved: yes")
	id := runIDFrom(t, out)

	out, _, err = runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, id[:8])
	requireContains(t, out, "exhausted")

	out, _, err = runCLI(t, []string{"runs", "show", id[:8], "--verify"}, env.configPath)
	if err != nil {
		t.Fatalf("runs show --verify: %v", err)
	}
	requireContains(t, out, "The cat and the dog sat.")
	requireContains(t, out, "Verified")

	out, _, err = runCLI(t, []string{"runs", "show", id, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("runs show --json: %v", err)
	}
	var payload struct {
		Run struct {
			ID       string `json:"id"`
			Selected []int  `json:"selected"`
		} `json:"run"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Run.ID != id || len(payload.Run.Selected) != 4 {
		t.Fatalf("unexpected run payload %+v", payload.Run)
	}

	out, _, err = runCLI(t, []string{"runs", "delete", id}, env.configPath)
	if err != nil {
		t.Fatalf("runs delete: %v", err)
	}
	requireContains(t, out, "Deleted run "+id)

	if _, _, err := runCLI(t, []string{"runs", "show", id}, env.configPath); err == nil {
		t.Fatal("expected error showing a deleted run")
	}
	out, _, err = runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, "No saved runs")
}
