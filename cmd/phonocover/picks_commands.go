package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"phonocover/internal/allocation"
	"phonocover/internal/corpus"
	"phonocover/internal/frequency"
	"phonocover/internal/phoneme"
	"phonocover/internal/picks"
	"phonocover/internal/pronounce"
)

func newPicksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picks",
		Short: "Manage the persisted pick list",
	}
	cmd.AddCommand(
		newPicksAddCommand(ctx),
		newPicksRemoveCommand(ctx),
		newPicksListCommand(ctx),
		newPicksClearCommand(ctx),
		newPicksShowCommand(ctx),
	)
	return cmd
}

func openPicks(ctx *commandContext) (*picks.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	resolver, err := ctx.resolverValue()
	if err != nil {
		return nil, err
	}
	return picks.Open(cfg.Paths.PicksFile, resolver, ctx.loggerValue())
}

func newPicksAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <item>...",
		Short: "Append items that resolve to phonemes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPicks(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var failed int
			for _, item := range args {
				phones, err := store.Add(item)
				switch {
				case err == nil:
					fmt.Fprintf(out, "Added %q: %s\n", item, phoneme.Join(phones))
				case errors.Is(err, picks.ErrDuplicate):
					fmt.Fprintf(out, "Skipped %q: already in the list\n", item)
				case errors.Is(err, picks.ErrUnresolved):
					failed++
					fmt.Fprintf(out, "Rejected %q: no pronunciation found\n", item)
				default:
					return err
				}
			}
			fmt.Fprintf(out, "%d picks in %s\n", store.Len(), store.Path())
			if failed > 0 {
				return fmt.Errorf("%d item(s) could not be resolved", failed)
			}
			return nil
		},
	}
}

func newPicksRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <item>...",
		Aliases: []string{"rm"},
		Short:   "Remove items from the list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPicks(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var missing int
			for _, item := range args {
				if err := store.Remove(item); err != nil {
					if !errors.Is(err, picks.ErrNotFound) {
						return err
					}
					missing++
					fmt.Fprintf(out, "Not found %q\n", item)
					continue
				}
				fmt.Fprintf(out, "Removed %q\n", item)
			}
			if missing > 0 {
				return fmt.Errorf("%d item(s) not in the list", missing)
			}
			return nil
		},
	}
}

func newPicksListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List picks with their phonemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPicks(ctx)
			if err != nil {
				return err
			}
			list, _ := store.Distribution()
			if jsonOutput {
				return writeJSON(cmd, list)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "Pick list is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Item", "Phonemes"}, pickRows(list),
				[]columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newPicksClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every pick",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPicks(ctx)
			if err != nil {
				return err
			}
			n := store.Len()
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d picks\n", n)
			return nil
		},
	}
}

func newPicksShowCommand(ctx *commandContext) *cobra.Command {
	var (
		target     int
		corpusPath string
		jsonOutput bool
		cflags     corpusFlags
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Compare the pick list with a proportional phoneme allocation",
		Long: `Show allocates --target phoneme slots (one per phoneme, the rest in
proportion to observed frequency) and reports which phonemes the pick list
still lacks or overuses. Frequencies come from --corpus when given, otherwise
from the first pronunciation of every dictionary word.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = cfg.Analysis.PickTarget
			}
			store, err := openPicks(ctx)
			if err != nil {
				return err
			}
			resolver, _ := ctx.resolverValue()

			var observed map[phoneme.Phoneme]int
			if corpusPath != "" {
				sentences, err := loadCorpus(corpusPath, cflags.sentenceOptions(cfg, nil), ctx.loggerValue())
				if err != nil {
					return err
				}
				rep := frequency.NewAnalyzer(resolver, corpus.NewVocabulary()).Analyze(sentences)
				observed = rep.PhonemeFrequency
			} else {
				observed = dictionaryFrequency(resolver.Dictionary())
			}

			plan, err := allocation.Allocate(observed, target)
			if err != nil {
				return fmt.Errorf("--target %d: %w", target, err)
			}
			status := store.Status(plan)
			if jsonOutput {
				return writeJSON(cmd, struct {
					Plan   allocation.Plan `json:"plan"`
					Status picks.Status    `json:"status"`
				}{plan, status})
			}
			printPickStatus(cmd.OutOrStdout(), plan, status)
			return nil
		},
	}
	cmd.Flags().IntVar(&target, "target", 50, "Total phoneme slots to allocate (default from config)")
	cmd.Flags().StringVarP(&corpusPath, "corpus", "s", "", "Sentence file providing phoneme frequencies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	addCorpusFlags(cmd, &cflags)
	return cmd
}

func dictionaryFrequency(dict *pronounce.Dictionary) map[phoneme.Phoneme]int {
	counts := make(map[phoneme.Phoneme]int)
	for _, word := range dict.Words() {
		phones, ok := dict.First(word)
		if !ok {
			continue
		}
		for _, p := range phones {
			counts[p]++
		}
	}
	return counts
}

func pickRows(list []picks.Pick) [][]string {
	rows := make([][]string, len(list))
	for i, p := range list {
		phones := phoneme.Join(p.Phonemes)
		if !p.Resolved {
			phones = "UNRESOLVED"
		}
		rows[i] = []string{strconv.Itoa(i + 1), p.Item, phones}
	}
	return rows
}

func printPickStatus(out io.Writer, plan allocation.Plan, st picks.Status) {
	fmt.Fprintf(out, "Picks: %d  Phonemes: %d of %d target slots\n", len(st.Picks), st.TotalCurrent, st.TotalTarget)
	fmt.Fprintf(out, "Phonemes at target: %d/%d\n", st.Achieved, phoneme.Size)

	rows := make([][]string, 0, len(plan.Slots))
	for _, slot := range plan.Slots {
		current := st.Current[slot.Phoneme]
		state := "ok"
		switch {
		case current < slot.Target:
			state = fmt.Sprintf("need %d", slot.Target-current)
		case current > slot.Target:
			state = fmt.Sprintf("+%d", current-slot.Target)
		}
		rows = append(rows, []string{
			string(slot.Phoneme),
			formatPercent(slot.Share),
			strconv.Itoa(slot.Target),
			strconv.Itoa(current),
			state,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Phoneme", "Share", "Target", "Current", "State"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft}))
}
