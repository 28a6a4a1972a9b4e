package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"phonocover/internal/config"
	"phonocover/internal/corpus"
	"phonocover/internal/coverage"
	"phonocover/internal/frequency"
	"phonocover/internal/logging"
	"phonocover/internal/report"
	"phonocover/internal/runstore"
	"phonocover/internal/selector"
)

type selectFlags struct {
	vocabPath     string
	corpusPath    string
	corpus        corpusFlags
	maxSentences  int
	minCoverage   int
	workers       int
	maxIterations int
	timeBudget    time.Duration
	jsonOutput    bool
	reportBase    string
	save          bool
	noProgress    bool
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var flags selectFlags

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Greedily select sentences that cover the target vocabulary",
		Long: `Select picks sentences from the corpus one at a time, always taking the
sentence that contributes most to target words still below their minimum
coverage (rarer words weigh more). Ties go to the earliest sentence, so the
same inputs always produce the same selection.

Stopping early because of the sentence limit, a budget, or Ctrl-C still
prints the partial selection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts, err := flags.selectorOptions(cmd, cfg)
			if err != nil {
				return err
			}
			return runSelect(cmd, ctx, cfg, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.vocabPath, "vocab", "w", "", "Target vocabulary file (text, or .json list/object)")
	cmd.Flags().StringVarP(&flags.corpusPath, "corpus", "s", "", "Candidate sentence file (text, .json, .tsv, or .html)")
	cmd.Flags().IntVarP(&flags.maxSentences, "max", "n", 0, "Maximum sentences to select (default from config)")
	cmd.Flags().IntVar(&flags.minCoverage, "min-coverage", 0, "Default minimum occurrences per word (default from config)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Parallel scoring goroutines (0 uses every CPU, 1 is sequential)")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", 0, "Stop after this many selections (0 disables)")
	cmd.Flags().DurationVar(&flags.timeBudget, "time-budget", 0, "Stop after this much wall-clock time (0 disables)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output the full report as JSON")
	cmd.Flags().StringVar(&flags.reportBase, "report", "", "Write <path>.json and <path>.txt reports")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Persist the run to the run store")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress bar")
	addCorpusFlags(cmd, &flags.corpus)
	_ = cmd.MarkFlagRequired("vocab")
	_ = cmd.MarkFlagRequired("corpus")

	return cmd
}

func addCorpusFlags(cmd *cobra.Command, flags *corpusFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "Corpus format: text, json, tsv, html (default from extension)")
	cmd.Flags().IntVar(&flags.column, "tsv-column", 0, "Zero-based TSV column holding the sentence (default from config)")
	cmd.Flags().BoolVar(&flags.split, "split", false, "Split records into sentences on . ! ?")
	cmd.Flags().IntVar(&flags.minWords, "min-words", 0, "Drop sentences with fewer words (default from config)")
	cmd.Flags().BoolVar(&flags.restrict, "restrict", false, "Keep only sentences made entirely of target words")
}

// selectorOptions layers explicitly set flags over the [selection] config.
func (f selectFlags) selectorOptions(cmd *cobra.Command, cfg *config.Config) (selector.Options, error) {
	opts := selector.Options{
		MaxSentences:  cfg.Selection.MaxSentences,
		MinCoverage:   cfg.Selection.MinCoverage,
		Workers:       cfg.Selection.Workers,
		MaxIterations: cfg.Selection.MaxIterations,
		TimeBudget:    cfg.TimeBudget(),
	}
	changed := cmd.Flags().Changed
	if changed("max") {
		opts.MaxSentences = f.maxSentences
	}
	if changed("min-coverage") {
		opts.MinCoverage = f.minCoverage
	}
	if changed("workers") {
		opts.Workers = f.workers
	}
	if changed("max-iterations") {
		opts.MaxIterations = f.maxIterations
	}
	if changed("time-budget") {
		opts.TimeBudget = f.timeBudget
	}
	if opts.MaxSentences < 0 {
		return opts, fmt.Errorf("--max must not be negative, got %d", opts.MaxSentences)
	}
	if opts.MinCoverage < 1 {
		return opts, fmt.Errorf("--min-coverage must be at least 1, got %d", opts.MinCoverage)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	return opts, nil
}

func runSelect(cmd *cobra.Command, cctx *commandContext, cfg *config.Config, flags selectFlags, opts selector.Options) error {
	runID := uuid.NewString()
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(logging.WithRunID(parent, runID), os.Interrupt)
	defer stop()

	logger := logging.WithContext(ctx, cctx.loggerValue())
	opts.Logger = logger

	vocab, err := loadVocabulary(flags.vocabPath, logger)
	if err != nil {
		return err
	}
	sentences, err := loadCorpus(flags.corpusPath, flags.corpus.sentenceOptions(cfg, vocab), logger)
	if err != nil {
		return err
	}
	index := coverage.Build(sentences, vocab, logger)

	var bar *progressbar.ProgressBar
	stderr := cmd.ErrOrStderr()
	if !flags.noProgress && !flags.jsonOutput && opts.MaxSentences > 0 && isTerminal(stderr) {
		bar = newSelectionBar(stderr, opts.MaxSentences)
	}
	sampler := logging.NewProgressSampler(25)
	opts.OnIteration = func(p selector.Progress) {
		if bar != nil {
			_ = bar.Set(p.Selected)
		}
		if sampler.ShouldLog(p.Selected, p.Max) {
			logger.Info("selection progress",
				logging.String(logging.FieldEventType, "selection_progress"),
				logging.Int("selected", p.Selected),
				logging.Int("max", p.Max),
				logging.Int("deficient_words", p.Deficient))
		}
	}

	result, err := selector.Select(ctx, sentences, index, vocab, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	run := runstore.NewRun(result, sentences, vocab, opts)
	run.ID = runID
	run.CorpusPath = absPath(flags.corpusPath)
	run.VocabularyPath = absPath(flags.vocabPath)

	var cmp *frequency.Comparison
	if resolver, rerr := cctx.resolverValue(); rerr != nil {
		logging.WarnWithContext(logger, "skipping phoneme analysis", "analysis_skipped",
			logging.Error(rerr),
			logging.String(logging.FieldErrorHint, "set paths.dictionary to a CMUdict file"),
			logging.String(logging.FieldImpact, "report omits word and phoneme frequencies"))
	} else {
		c := frequency.NewAnalyzer(resolver, vocab).Compare(sentences, result.Selected)
		cmp = &c
	}
	rep := report.New(run, cmp)

	if flags.save {
		store, err := runstore.Open(cfg)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer store.Close()
		// a cancelled selection is still saved
		if err := store.Save(context.WithoutCancel(ctx), run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("run saved", logging.String("path", store.Path()))
	}
	if base := strings.TrimSpace(flags.reportBase); base != "" {
		jsonPath, textPath, err := rep.WriteFiles(base)
		if err != nil {
			return err
		}
		logger.Info("reports written", logging.String("json", jsonPath), logging.String("text", textPath))
	}

	if flags.jsonOutput {
		return writeJSON(cmd, rep)
	}
	printSelection(cmd.OutOrStdout(), rep, flags.save)
	return nil
}

func newSelectionBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("selecting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func printSelection(out io.Writer, rep *report.Report, saved bool) {
	run := rep.Run
	fmt.Fprintf(out, "Run: %s\n", run.ID)
	fmt.Fprintf(out, "Status: %s\n", run.Status)
	fmt.Fprintf(out, "Selected: %d (max %d)\n", len(run.Selected), run.MaxSentences)
	if saved {
		fmt.Fprintln(out, "Saved: yes")
	}

	if len(run.Selected) > 0 {
		rows := make([][]string, len(run.Selected))
		for i, id := range run.Selected {
			rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(id), run.Texts[i]}
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"#", "ID", "Sentence"}, rows, []columnAlignment{alignRight, alignRight, alignLeft}))
	}

	if len(run.Coverage) > 0 {
		rows := make([][]string, len(run.Coverage))
		for i, c := range run.Coverage {
			state := "ok"
			if c.Count < c.Threshold {
				state = "short"
			}
			rows[i] = []string{c.Word, strconv.Itoa(c.Count), strconv.Itoa(c.Threshold), state}
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Word", "Count", "Min", "State"}, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignLeft}))
	}

	if len(rep.UnderCovered) == 0 {
		fmt.Fprintln(out, "\nEvery target word reached its threshold.")
	} else {
		words := make([]string, len(rep.UnderCovered))
		for i, s := range rep.UnderCovered {
			words[i] = fmt.Sprintf("%s (%d/%d)", s.Word, s.Count, s.Threshold)
		}
		fmt.Fprintf(out, "\nUnder-covered: %s\n", strings.Join(words, ", "))
	}

	if rep.Frequency != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderFrequencySummary(*rep.Frequency))
	}
}

func renderFrequencySummary(cmp frequency.Comparison) string {
	sets := []struct {
		name string
		rep  frequency.Report
	}{
		{"selected", cmp.Selected},
		{"excluded", cmp.Excluded},
		{"combined", cmp.Combined},
	}
	rows := make([][]string, 0, len(sets))
	for _, set := range sets {
		rows = append(rows, []string{
			set.name,
			strconv.Itoa(set.rep.Sentences),
			strconv.Itoa(set.rep.Tokens),
			formatPercent(set.rep.VocabularyCoverage),
			formatPercent(set.rep.PhonemeCoverage),
			strconv.Itoa(len(set.rep.Unresolved)),
		})
	}
	return renderTable(
		[]string{"Set", "Sentences", "Tokens", "Vocabulary", "Phonemes", "Unresolved"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
