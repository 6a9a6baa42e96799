package main

import (
	"fmt"

	"github.com/jonathan/feedback-engine/internal/observability"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store the report of a review cycle",
	Long:  "Builds the cycle's report from stored responses, prior cycles and organizational peers, and saves it. Regenerating replaces the report but keeps its access token.",
	RunE:  runGenerate,
}

var generateCycle string

func init() {
	generateCmd.Flags().StringVarP(&generateCycle, "cycle", "c", "", "Review cycle ID (required)")

	markRequired(generateCmd, "cycle")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cycleID, err := parseCycleID(generateCycle)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.engine.Generate(cmd.Context(), cycleID)
	if err != nil {
		return err
	}

	if s.cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResponseSummary(report.Data.BySection.Summary())
		printer.PrintInsights(report.Data.Insights)
		printer.PrintComparison(report.Data.Comparison)
		printer.PrintBenchmarks(report.Data.PeerBenchmarks)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Generated report %s for cycle %s\n", report.ID, report.CycleID)
	_, _ = fmt.Fprintf(out, "Access token: %s\n", report.AccessToken)
	return nil
}
