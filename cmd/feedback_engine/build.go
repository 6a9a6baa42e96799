package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/feedback-engine/internal/anonymize"
	"github.com/jonathan/feedback-engine/internal/observability"
	"github.com/jonathan/feedback-engine/internal/reports"
	"github.com/jonathan/feedback-engine/internal/schemas"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a report document from a cycle input file",
	Long:  "Computes aggregation, insights, charts, trends and peer benchmarks for a cycle input JSON file without touching a database. History and peers in the file feed trends and benchmarks.",
	RunE:  runBuild,
}

var (
	buildInput     string
	buildOutput    string
	buildAnonymize bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Path to cycle input JSON file (required)")
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Path to output report JSON file (stdout when empty)")
	buildCmd.Flags().BoolVar(&buildAnonymize, "anonymize", false, "Redact small categories using the organization's anonymity threshold")

	markRequired(buildCmd, "input")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	in, err := loadCycleInput(buildInput)
	if err != nil {
		return err
	}

	data, err := reports.Build(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	// Validate output against schema (non-fatal)
	if doc, err := json.Marshal(data); err == nil {
		if err := schemas.ValidateReport(doc); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	if buildAnonymize {
		minResponses := cfg.MinResponsesForAnonymity
		if in.Organization != nil {
			minResponses = in.Organization.MinResponsesForAnonymity
		}
		data.BySection = anonymize.NewFilter(minResponses).Apply(data.BySection)
	}

	if err := writeJSON(cmd, buildOutput, data); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResponseSummary(data.BySection.Summary())
		printer.PrintInsights(data.Insights)
		printer.PrintComparison(data.Comparison)
		printer.PrintBenchmarks(data.PeerBenchmarks)
	}
	if buildOutput != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully built report for cycle %s to %s\n", in.Cycle.ID, buildOutput)
	}
	return nil
}
