package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	appai "github.com/bryanwahyu/labinterpreter/internal/application/ai"
	appreports "github.com/bryanwahyu/labinterpreter/internal/application/reports"
	"github.com/bryanwahyu/labinterpreter/internal/config"
	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/provider"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Send the results to a language model and print the interpretation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendor, _ := cmd.Flags().GetString("vendor")
			model, _ := cmd.Flags().GetString("model")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			outPath, _ := cmd.Flags().GetString("out")

			envName := config.KeyEnv(vendor)
			if envName == "" {
				return fmt.Errorf("unknown vendor %q (supported: %v)", vendor, provider.Vendors())
			}
			cfg := ai.Config{APIKey: os.Getenv(envName), Model: model}
			if model == "" {
				cfg.Model = provider.DefaultModel(vendor)
			}
			if cmd.Flags().Changed("temperature") {
				t, _ := cmd.Flags().GetFloat32("temperature")
				cfg.Temperature = &t
			}
			client, err := newClient(vendor, cfg)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			svc := &appreports.Service{AI: appai.NewService(client, vendor, cfg.Model, timeout)}
			res, err := svc.Analyze(cmd.Context(), f)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), res.DisplayText)
				return exitError{code: 1}
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.DisplayText)
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(res.DisplayText), 0o600); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", outPath)
			}
			return nil
		},
	}
	cmd.Flags().String("vendor", "gemini", "Analysis vendor: anthropic, gemini or openai")
	cmd.Flags().String("model", "", "Model name (default: vendor default)")
	cmd.Flags().Float32("temperature", ai.DefaultTemperature, "Sampling temperature")
	cmd.Flags().Duration("timeout", 60*time.Second, "Deadline for the vendor call (0 disables)")
	cmd.Flags().String("out", domain.DownloadFilename, "Write the report to this file (empty to skip)")
	return cmd
}
