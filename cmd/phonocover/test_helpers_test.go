package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"phonocover/internal/config"
	"phonocover/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	vocabPath  string
	corpusPath string
}

// testCorpus selects as [2 1 0 3] against testVocab with min coverage 2;
// fish never occurs.
var testCorpus = []string{
	"The cat sat on the mat.",
	"A dog ran.",
	"The cat and the dog sat.",
	"The cat sat.",
}

var testVocab = []string{"cat", "dog", "fish"}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithSelection(10, 2))
	cfg.Logging.Level = "error"
	cfg.Selection.Workers = 1
	base := testsupport.BaseDir(cfg)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		vocabPath:  testsupport.WriteLines(t, filepath.Join(base, "vocab.txt"), testVocab...),
		corpusPath: testsupport.WriteLines(t, filepath.Join(base, "corpus.txt"), testCorpus...),
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func runIDFrom(t *testing.T, output string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if id, ok := strings.CutPrefix(line, "Run: "); ok {
			return strings.TrimSpace(id)
		}
	}
	t.Fatalf("no run id in output %q", output)
	return ""
}
