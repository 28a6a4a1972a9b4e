package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"phonocover/internal/corpus"
	"phonocover/internal/runstore"
	"phonocover/internal/textutil"
)

type similarPair struct {
	textutil.SimilarPair
	FirstID    int    `json:"first_id"`
	SecondID   int    `json:"second_id"`
	FirstText  string `json:"first_text"`
	SecondText string `json:"second_text"`
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var (
		corpusPath string
		runID      string
		threshold  float64
		jsonOutput bool
		cflags     corpusFlags
	)

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Flag near-duplicate sentences in a corpus or a saved run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if (corpusPath == "") == (runID == "") {
				return fmt.Errorf("similar needs exactly one of --corpus or --run")
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Analysis.SimilarityThreshold
			}
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("--threshold must be in (0, 1], got %v", threshold)
			}

			var sentences []corpus.Sentence
			if runID != "" {
				store, err := runstore.Open(cfg)
				if err != nil {
					return fmt.Errorf("open run store: %w", err)
				}
				defer store.Close()
				run, err := store.Get(cmd.Context(), runID)
				if err != nil {
					return err
				}
				sentences = run.Sentences()
			} else {
				sentences, err = loadCorpus(corpusPath, cflags.sentenceOptions(cfg, nil), ctx.loggerValue())
				if err != nil {
					return err
				}
			}

			pairs := textutil.SimilarPairs(corpus.Texts(sentences), threshold)
			results := make([]similarPair, len(pairs))
			for i, p := range pairs {
				results[i] = similarPair{
					SimilarPair: p,
					FirstID:     sentences[p.I].ID,
					SecondID:    sentences[p.J].ID,
					FirstText:   sentences[p.I].Text,
					SecondText:  sentences[p.J].Text,
				}
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No sentence pairs at or above %.2f similarity among %d sentences\n", threshold, len(sentences))
				return nil
			}
			rows := make([][]string, len(results))
			for i, r := range results {
				rows[i] = []string{
					strconv.Itoa(r.FirstID),
					strconv.Itoa(r.SecondID),
					fmt.Sprintf("%.3f", r.Combined),
					fmt.Sprintf("%.3f", r.Cosine),
					fmt.Sprintf("%.3f", r.Jaccard),
					r.FirstText,
					r.SecondText,
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "ID", "Score", "Cosine", "Jaccard", "First", "Second"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d similar pairs\n", len(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&corpusPath, "corpus", "s", "", "Sentence file to check")
	cmd.Flags().StringVar(&runID, "run", "", "Saved run id or prefix")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.8, "Minimum mean of cosine and Jaccard similarity (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	addCorpusFlags(cmd, &cflags)
	return cmd
}
