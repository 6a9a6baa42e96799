package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a review cycle with its questions and responses",
	Long:  "Loads a cycle input JSON file into the configured store. Organizations, cycles and questions are upserted; responses already stored are left unchanged.",
	RunE:  runImport,
}

var importInput string

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Path to cycle input JSON file (required)")

	markRequired(importCmd, "input")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	in, err := loadCycleInput(importInput)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.store.Import(cmd.Context(), in); err != nil {
		return fmt.Errorf("failed to import cycle: %w", err)
	}

	s.logger.Info("cycle imported",
		zap.String("cycle_id", in.Cycle.ID.String()),
		zap.Int("questions", len(in.Questions)),
		zap.Int("responses", len(in.Responses)),
	)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported cycle %s: %d questions, %d responses\n", in.Cycle.ID, len(in.Questions), len(in.Responses))
	return nil
}
