package main

import (
	"fmt"

	"github.com/jonathan/feedback-engine/internal/config"
	"github.com/jonathan/feedback-engine/internal/reports"
	"github.com/spf13/cobra"
)

var shareLinkCmd = &cobra.Command{
	Use:   "share-link",
	Short: "Create a signed, expiring link to a stored report",
	Long:  "Signs the report's access token with REPORT_LINK_SECRET. The link expires after REPORT_LINK_EXPIRATION_HOURS (default 168).",
	RunE:  runShareLink,
}

var shareLinkCycle string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Make a stored report available or withdraw it",
	Long:  "Sets whether the cycle's report can be opened by access token or share link. Regenerating a report publishes it again.",
	RunE:  runPublish,
}

var (
	publishCycle    string
	publishWithdraw bool
)

func init() {
	shareLinkCmd.Flags().StringVarP(&shareLinkCycle, "cycle", "c", "", "Review cycle ID (required)")
	markRequired(shareLinkCmd, "cycle")

	publishCmd.Flags().StringVarP(&publishCycle, "cycle", "c", "", "Review cycle ID (required)")
	publishCmd.Flags().BoolVar(&publishWithdraw, "withdraw", false, "Withdraw the report instead of publishing it")
	markRequired(publishCmd, "cycle")

	rootCmd.AddCommand(shareLinkCmd)
	rootCmd.AddCommand(publishCmd)
}

func runShareLink(cmd *cobra.Command, _ []string) error {
	cycleID, err := parseCycleID(shareLinkCycle)
	if err != nil {
		return err
	}

	linkCfg, err := config.NewShareLinkConfig()
	if err != nil {
		return fmt.Errorf("failed to load share link config: %w", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.store.GetReport(cmd.Context(), cycleID)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return fmt.Errorf("%w: cycle %s", reports.ErrReportNotFound, cycleID)
	}
	if !report.Available {
		return reports.ErrReportUnavailable
	}

	link, err := reports.NewShareLinks(linkCfg).URL(s.cfg.ReportBaseURL, report.AccessToken)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cycleID, err := parseCycleID(publishCycle)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	available := !publishWithdraw
	if err := s.store.SetReportAvailable(cmd.Context(), cycleID, available); err != nil {
		return err
	}

	state := "published"
	if !available {
		state = "withdrawn"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report for cycle %s %s\n", cycleID, state)
	return nil
}
