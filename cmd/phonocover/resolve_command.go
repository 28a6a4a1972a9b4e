package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"phonocover/internal/phoneme"
)

type resolveResult struct {
	Token    string     `json:"token"`
	Resolved bool       `json:"resolved"`
	Phonemes string     `json:"phonemes,omitempty"`
	Parts    []string   `json:"parts,omitempty"`
	Variants [][]string `json:"variants,omitempty"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		showVariants bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <word>...",
		Short: "Show the phonemes the dictionary assigns to words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.resolverValue()
			if err != nil {
				return err
			}
			dict := resolver.Dictionary()

			results := make([]resolveResult, 0, len(args))
			for _, arg := range args {
				token := strings.ToLower(strings.TrimSpace(arg))
				res := resolveResult{Token: token}
				if phones, ok := resolver.Resolve(token); ok {
					res.Resolved = true
					res.Phonemes = phoneme.Join(phones)
				}
				if parts, ok := resolver.Expand(token); ok {
					res.Parts = parts
				}
				if showVariants {
					for _, v := range dict.Lookup(token) {
						codes := make([]string, len(v))
						for i, p := range v {
							codes[i] = string(p)
						}
						res.Variants = append(res.Variants, codes)
					}
				}
				results = append(results, res)
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				phones := res.Phonemes
				if !res.Resolved {
					phones = "UNRESOLVED"
				}
				via := ""
				if len(res.Parts) > 0 {
					via = strings.Join(res.Parts, " + ")
				}
				row := []string{res.Token, phones, via}
				if showVariants {
					variants := make([]string, len(res.Variants))
					for i, v := range res.Variants {
						variants[i] = strings.Join(v, " ")
					}
					row = append(row, strings.Join(variants, " | "))
				}
				rows = append(rows, row)
			}
			headers := []string{"Word", "Phonemes", "Expanded"}
			if showVariants {
				headers = append(headers, "Variants")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showVariants, "variants", false, "List every dictionary pronunciation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}
