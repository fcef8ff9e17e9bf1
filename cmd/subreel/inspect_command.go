package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subreel/internal/transcript"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var showTokens bool

	cmd := &cobra.Command{
		Use:         "inspect <transcript>",
		Short:       "Parse a transcript and summarize its segments",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := transcript.Load(args[0])
			if err != nil {
				return fmt.Errorf("load transcript: %w", err)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(tr.Segments))
			for i, seg := range tr.Segments {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%.3f", seg.Start),
					fmt.Sprintf("%.3f", seg.End),
					strconv.Itoa(len(seg.Tokens)),
					strconv.Itoa(len(seg.Vocabulary)),
					seg.PrimaryText,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Tokens", "Vocab", "Text"},
				rows,
				0, 1, 2, 3, 4,
			))
			fmt.Fprintf(out, "%d segments, %.3fs total\n", len(tr.Segments), tr.TotalDuration())

			if showTokens {
				for i, seg := range tr.Segments {
					if len(seg.Tokens) == 0 {
						continue
					}
					fmt.Fprintf(out, "\nSegment %d tokens:\n", i+1)
					tokenRows := make([][]string, 0, len(seg.Tokens))
					for _, tok := range seg.Tokens {
						tokenRows = append(tokenRows, []string{
							tok.Surface,
							tok.POS,
							fmt.Sprintf("%.3f", tok.Start),
							fmt.Sprintf("%.3f", tok.End),
							tok.Reading,
							tok.Translation,
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Surface", "POS", "Start", "End", "Reading", "Translation"},
						tokenRows,
						2, 3,
					))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTokens, "tokens", false, "List per-segment token timings")
	return cmd
}
