package main

import (
	"encoding/json"
	"testing"
)

func TestResolveCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Cat", "don't", "zorp", "the", "--variants"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "K AE T")
	requireContains(t, out, "do + not")
	requireContains(t, out, "UNRESOLVED")
	requireContains(t, out, "DH AH | DH AH | DH IY")
}

func TestResolveCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "won't", "zorp", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve --json: %v", err)
	}
	var results []resolveResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	// won't resolves through the direct lookup because "wo" is not a word.
	if !results[0].Resolved || results[0].Phonemes != "W OW N T" {
		t.Fatalf("won't = %+v", results[0])
	}
	if results[1].Resolved {
		t.Fatalf("zorp resolved: %+v", results[1])
	}
}
