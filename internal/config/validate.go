package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSelection() error {
	if err := ensureNonNegativeMap(map[string]int{
		"selection.max_sentences":       c.Selection.MaxSentences,
		"selection.workers":             c.Selection.Workers,
		"selection.max_iterations":      c.Selection.MaxIterations,
		"selection.time_budget_seconds": c.Selection.TimeBudgetSeconds,
	}); err != nil {
		return err
	}
	if c.Selection.MinCoverage < 1 {
		return errors.New("selection.min_coverage must be at least 1")
	}
	if c.Selection.TieBreak != TieBreakFirstSeen {
		return fmt.Errorf("selection.tie_break: unsupported value %q (supported: %s)", c.Selection.TieBreak, TieBreakFirstSeen)
	}
	return nil
}

func (c *Config) validateCorpus() error {
	return ensureNonNegativeMap(map[string]int{
		"corpus.tsv_column": c.Corpus.TSVColumn,
		"corpus.min_words":  c.Corpus.MinWords,
	})
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.SimilarityThreshold <= 0 || c.Analysis.SimilarityThreshold > 1 {
		return errors.New("analysis.similarity_threshold must be within (0, 1]")
	}
	if c.Analysis.PickTarget < 39 {
		return errors.New("analysis.pick_target must be at least 39 (one slot per phoneme)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensureNonNegativeMap(values map[string]int) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}
