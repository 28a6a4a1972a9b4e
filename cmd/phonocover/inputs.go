package main

import (
	"fmt"
	"log/slog"
	"strings"

	"phonocover/internal/config"
	"phonocover/internal/corpus"
	"phonocover/internal/logging"
)

type corpusFlags struct {
	format   string
	column   int
	split    bool
	minWords int
	restrict bool
}

// sentenceOptions merges corpus flags over the [corpus] config section.
// Flags left at their zero value keep the configured setting.
func (f corpusFlags) sentenceOptions(cfg *config.Config, vocab *corpus.Vocabulary) corpus.SentenceOptions {
	opts := corpus.SentenceOptions{
		Format:    corpus.Format(strings.ToLower(strings.TrimSpace(f.format))),
		TSVColumn: cfg.Corpus.TSVColumn,
		Split:     cfg.Corpus.SplitSentences || f.split,
		MinWords:  cfg.Corpus.MinWords,
	}
	if f.column > 0 {
		opts.TSVColumn = f.column
	}
	if f.minWords > 0 {
		opts.MinWords = f.minWords
	}
	if (cfg.Corpus.RestrictToVocabulary || f.restrict) && vocab != nil {
		opts.Restrict = vocab
	}
	return opts
}

func loadVocabulary(path string, logger *slog.Logger) (*corpus.Vocabulary, error) {
	vocab, stats, err := corpus.LoadVocabularyFile(path)
	if err != nil {
		return nil, err
	}
	if vocab.Len() == 0 {
		logging.WarnWithContext(logger, "vocabulary is empty", "vocabulary_empty",
			logging.String("path", path),
			logging.String(logging.FieldErrorHint, "add one word per line or a JSON list of words"),
			logging.String(logging.FieldImpact, "selection has nothing to do"))
	}
	logStats(logger, "vocabulary loaded", path, stats)
	return vocab, nil
}

func loadCorpus(path string, opts corpus.SentenceOptions, logger *slog.Logger) ([]corpus.Sentence, error) {
	sentences, stats, err := corpus.LoadSentencesFile(path, opts)
	if err != nil {
		return nil, err
	}
	logStats(logger, "corpus loaded", path, stats)
	return sentences, nil
}

func logStats(logger *slog.Logger, msg, path string, stats corpus.LoadStats) {
	attrs := []logging.Attr{
		logging.String("path", path),
		logging.Int("records", stats.Records),
		logging.Int("kept", stats.Kept),
		logging.Int("skipped", stats.Skipped),
		logging.Int("empty", stats.Empty),
		logging.Int("duplicates", stats.Duplicates),
		logging.Int("filtered", stats.Filtered),
	}
	if stats.Skipped > 0 {
		logging.WarnWithContext(logger, fmt.Sprintf("%s with malformed records", msg), "input_records_skipped", append(attrs,
			logging.String(logging.FieldErrorHint, "check the file for rows with missing columns or non-string entries"),
			logging.String(logging.FieldImpact, "skipped records are ignored"))...)
		return
	}
	logger.Info(msg, logging.Args(attrs...)...)
}
