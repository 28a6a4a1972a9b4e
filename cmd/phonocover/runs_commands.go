package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"phonocover/internal/coverage"
	"phonocover/internal/report"
	"phonocover/internal/runstore"
	"phonocover/internal/selector"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved selection runs",
	}
	cmd.AddCommand(
		newRunsListCommand(ctx),
		newRunsShowCommand(ctx),
		newRunsDeleteCommand(ctx),
	)
	return cmd
}

func openRunStore(ctx *commandContext) (*runstore.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := runstore.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return store, nil
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No saved runs")
				return nil
			}
			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{
					shortID(r.ID),
					humanize.Time(r.CreatedAt),
					string(r.Status),
					strconv.Itoa(r.Selected),
					strconv.Itoa(r.UnderCovered),
					r.CorpusPath,
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Created", "Status", "Selected", "Under", "Corpus"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var (
		verify     bool
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved run (id or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var verifyErr error
			if verify {
				index := coverage.Build(run.Sentences(), run.Vocabulary(), ctx.loggerValue())
				verifyErr = selector.Verify(run.State(), index)
			}

			rep := report.New(run, nil)
			if jsonOutput {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else if err := rep.WriteText(cmd.OutOrStdout()); err != nil {
				return err
			}

			if verify {
				if verifyErr != nil {
					return fmt.Errorf("run %s: %w", run.ID, verifyErr)
				}
				if !jsonOutput {
					fmt.Fprintln(cmd.OutOrStdout(), "Verified: coverage counts match the selected sentences")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Recount coverage from the stored sentences and fail on drift")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved runs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			var failed int
			for _, arg := range args {
				run, err := store.Get(cmd.Context(), arg)
				if err != nil {
					if errors.Is(err, runstore.ErrNotFound) || errors.Is(err, runstore.ErrAmbiguous) {
						failed++
						fmt.Fprintf(out, "%s: %v\n", arg, err)
						continue
					}
					return err
				}
				if _, err := store.Delete(cmd.Context(), run.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted run %s\n", run.ID)
			}
			if failed > 0 {
				return fmt.Errorf("%d run(s) not deleted", failed)
			}
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
