package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/prompt"
	"github.com/bryanwahyu/labinterpreter/internal/infra/labcsv"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file.csv>",
		Short: "Show parsed rows and the prompt without calling a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := labcsv.ParseFile(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), domain.Present("", err).DisplayText)
				return exitError{code: 2}
			}

			out := cmd.OutOrStdout()
			printRows(out, rows)
			showPrompt, _ := cmd.Flags().GetBool("prompt")
			if showPrompt {
				fmt.Fprintf(out, "\n--- prompt (%s) ---\n%s\n", prompt.Version, prompt.BuildPrompt(rows))
			}
			return nil
		},
	}
	cmd.Flags().Bool("prompt", true, "Also print the generated prompt")
	return cmd
}

func printRows(w io.Writer, rows []labresults.ResultRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tRESULT\tUNIT\tREFERENCE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.TestName, r.Result, r.Unit, r.ReferenceRange)
	}
	tw.Flush()
}
