package main

import (
	"fmt"

	"github.com/jonathan/feedback-engine/internal/config"
	"github.com/jonathan/feedback-engine/internal/observability"
	"github.com/jonathan/feedback-engine/internal/reports"
	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Print the anonymized view of a stored report",
	Long: `Prints a stored report with categories below the anonymity threshold redacted.

The report is selected by exactly one of --cycle, --token (raw access token) or --link (signed share link).`,
	RunE: runDisplay,
}

var (
	displayCycle  string
	displayToken  string
	displayLink   string
	displayOutput string
)

func init() {
	displayCmd.Flags().StringVarP(&displayCycle, "cycle", "c", "", "Review cycle ID")
	displayCmd.Flags().StringVar(&displayToken, "token", "", "Report access token")
	displayCmd.Flags().StringVar(&displayLink, "link", "", "Signed share link token")
	displayCmd.Flags().StringVarP(&displayOutput, "out", "o", "", "Path to output JSON file (stdout when empty)")

	displayCmd.MarkFlagsMutuallyExclusive("cycle", "token", "link")
	displayCmd.MarkFlagsOneRequired("cycle", "token", "link")

	rootCmd.AddCommand(displayCmd)
}

func runDisplay(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	var view *reports.View
	switch {
	case displayCycle != "":
		cycleID, err := parseCycleID(displayCycle)
		if err != nil {
			return err
		}
		view, err = s.engine.DisplayReport(ctx, cycleID)
		if err != nil {
			return err
		}
	case displayToken != "":
		view, err = s.engine.DisplayByAccessToken(ctx, displayToken)
		if err != nil {
			return err
		}
	default:
		linkCfg, err := config.NewShareLinkConfig()
		if err != nil {
			return fmt.Errorf("failed to load share link config: %w", err)
		}
		view, err = s.engine.DisplayShared(ctx, reports.NewShareLinks(linkCfg), displayLink)
		if err != nil {
			return err
		}
	}

	if s.cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResponseSummary(view.Summary)
		printer.PrintInsights(view.Data.Insights)
	}
	return writeJSON(cmd, displayOutput, view)
}
