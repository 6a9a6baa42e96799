package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/competency"
	"github.com/jonathan/feedback-engine/internal/observability"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Classify the competency profile of a stored report",
	Long:  "Derives skill and agency levels, their stages, the skill/initiative quadrant and development recommendations from a cycle's stored report.",
	RunE:  runProfile,
}

var (
	profileCycle  string
	profileOutput string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Estimate a competency profile from one respondent's answers",
	Long:  "Computes an instant competency preview before a full report exists. Answers are a JSON object mapping question IDs to numeric values; questions come from a cycle input file.",
	RunE:  runPreview,
}

var (
	previewInput     string
	previewAnswers   string
	previewThreshold float64
	previewOutput    string
)

func init() {
	profileCmd.Flags().StringVarP(&profileCycle, "cycle", "c", "", "Review cycle ID (required)")
	profileCmd.Flags().StringVarP(&profileOutput, "out", "o", "", "Path to output JSON file (stdout when empty)")
	markRequired(profileCmd, "cycle")

	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "Path to cycle input JSON file with the questions (required)")
	previewCmd.Flags().StringVarP(&previewAnswers, "answers", "a", "", "Path to answers JSON file (required)")
	previewCmd.Flags().Float64Var(&previewThreshold, "threshold", 0, "Quadrant threshold (defaults to the configured value)")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Path to output JSON file (stdout when empty)")
	markRequired(previewCmd, "input", "answers")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(previewCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	cycleID, err := parseCycleID(profileCycle)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	profile, err := s.engine.Profile(cmd.Context(), cycleID)
	if err != nil {
		return err
	}

	if s.cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCompetencyProfile(profile)
	}
	return writeJSON(cmd, profileOutput, profile)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	in, err := loadCycleInput(previewInput)
	if err != nil {
		return err
	}

	answers, err := loadAnswers(previewAnswers)
	if err != nil {
		return err
	}

	threshold := cfg.QuadrantThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = previewThreshold
	}

	preview := competency.Preview(in.Questions, answers, threshold)

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintPreview(&preview)
	}
	return writeJSON(cmd, previewOutput, preview)
}

func loadAnswers(path string) (map[uuid.UUID]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file %s: %w", path, err)
	}

	var answers map[uuid.UUID]float64
	if err := json.Unmarshal(content, &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers JSON: %w", err)
	}
	return answers, nil
}
