package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"phonocover/internal/corpus"
	"phonocover/internal/frequency"
	"phonocover/internal/phoneme"
	"phonocover/internal/runstore"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		vocabPath  string
		corpusPath string
		runID      string
		top        int
		jsonOutput bool
		cflags     corpusFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report word and phoneme frequencies for a corpus or a saved run",
		Long: `Analyze tokenizes every sentence, counts words, resolves each token to
phonemes, and reports vocabulary and phoneme-inventory coverage.

With --run, the saved selection is analyzed; adding --corpus compares the
selection against the sentences it excluded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if corpusPath == "" && runID == "" {
				return fmt.Errorf("analyze needs --corpus, --run, or both")
			}
			logger := ctx.loggerValue()
			resolver, err := ctx.resolverValue()
			if err != nil {
				return err
			}

			var run *runstore.Run
			if runID != "" {
				store, err := runstore.Open(cfg)
				if err != nil {
					return fmt.Errorf("open run store: %w", err)
				}
				defer store.Close()
				run, err = store.Get(cmd.Context(), runID)
				if err != nil {
					return err
				}
			}

			vocab := corpus.NewVocabulary()
			switch {
			case vocabPath != "":
				if vocab, err = loadVocabulary(vocabPath, logger); err != nil {
					return err
				}
			case run != nil:
				vocab = run.Vocabulary()
			}
			analyzer := frequency.NewAnalyzer(resolver, vocab)

			var sentences []corpus.Sentence
			if corpusPath != "" {
				if sentences, err = loadCorpus(corpusPath, cflags.sentenceOptions(cfg, vocab), logger); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case run != nil && sentences != nil:
				cmp := analyzer.Compare(sentences, run.Selected)
				if jsonOutput {
					return writeJSON(cmd, cmp)
				}
				fmt.Fprintln(out, renderFrequencySummary(cmp))
				fmt.Fprintln(out)
				printFrequencyReport(out, "Selected", cmp.Selected, top)
			case run != nil:
				rep := analyzer.Analyze(run.Sentences())
				if jsonOutput {
					return writeJSON(cmd, rep)
				}
				printFrequencyReport(out, "Run "+run.ID, rep, top)
			default:
				rep := analyzer.Analyze(sentences)
				if jsonOutput {
					return writeJSON(cmd, rep)
				}
				printFrequencyReport(out, "Corpus", rep, top)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&vocabPath, "vocab", "w", "", "Target vocabulary file (defaults to the run's vocabulary)")
	cmd.Flags().StringVarP(&corpusPath, "corpus", "s", "", "Sentence file to analyze")
	cmd.Flags().StringVar(&runID, "run", "", "Saved run id or prefix")
	cmd.Flags().IntVar(&top, "top", 20, "Number of top words to list (0 lists every word)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	addCorpusFlags(cmd, &cflags)
	return cmd
}

func printFrequencyReport(out io.Writer, title string, rep frequency.Report, top int) {
	fmt.Fprintf(out, "%s: %d sentences, %d tokens, %d phonemes\n", title, rep.Sentences, rep.Tokens, rep.Phonemes)
	fmt.Fprintf(out, "Vocabulary coverage: %s\n", formatPercent(rep.VocabularyCoverage))
	fmt.Fprintf(out, "Phoneme coverage: %s (%d/%d)\n", formatPercent(rep.PhonemeCoverage), len(rep.PhonemeFrequency), phoneme.Size)
	if missing := rep.MissingPhonemes(); len(missing) > 0 {
		fmt.Fprintf(out, "Missing phonemes: %s\n", phoneme.Join(missing))
	}

	rows := make([][]string, 0, phoneme.Size)
	for _, pc := range rep.PhonemesByFrequency() {
		if pc.Count == 0 {
			continue
		}
		rows = append(rows, []string{
			string(pc.Phoneme),
			phoneme.ClassOf(pc.Phoneme).String(),
			strconv.Itoa(pc.Count),
			formatPercent(rep.Share(pc.Phoneme)),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Phoneme", "Class", "Count", "Share"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
	}

	words := rep.TopWords(top)
	if len(words) > 0 {
		rows = rows[:0]
		for i, wc := range words {
			rows = append(rows, []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"#", "Word", "Count"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignRight}))
	}

	if len(rep.Unresolved) > 0 {
		parts := make([]string, len(rep.Unresolved))
		for i, u := range rep.Unresolved {
			parts[i] = fmt.Sprintf("%s (%d)", u.Token, u.Count)
		}
		fmt.Fprintf(out, "\nUnresolved: %s\n", strings.Join(parts, ", "))
	}
}
