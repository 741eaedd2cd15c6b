package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/labinterpreter/internal/config"
	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/provider"
)

// newClient is swapped in tests.
var newClient func(vendor string, cfg ai.Config) (ai.Client, error) = provider.New

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labinterp",
		Short: "Plain-language interpretation of lab results",
		Long: `Reads a CSV of medical test results (Test_Name, Result, Unit, Reference_Range),
builds an analysis prompt and asks a language model to explain the results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
	}
	root.AddCommand(newPreviewCmd(), newAnalyzeCmd())
	return root
}

// exitError carries a message that has already been shown to the user.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if ee, ok := err.(exitError); ok {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
