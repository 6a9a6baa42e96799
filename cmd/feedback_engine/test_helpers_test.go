package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// isolateEnv clears the variables the CLI reads so tests use only their flags.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REPORT_BASE_URL", "")
	t.Setenv("REPORT_LINK_SECRET", "")
	t.Setenv("REPORT_LINK_EXPIRATION_HOURS", "")
}

type fixture struct {
	input       *types.CycleInput
	communicate types.Question
	skill       types.Question
	agency      types.Question
	inputPath   string
	answersPath string
	sqlitePath  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	sectionA, sectionB := uuid.New(), uuid.New()
	f := &fixture{
		communicate: types.Question{
			ID: uuid.New(), SectionID: sectionA, SectionTitle: "Communication", SectionOrder: 1, Order: 1,
			Text: "Explains decisions clearly", Config: types.RatingConfig{Min: 1, Max: 5},
		},
		skill: types.Question{
			ID: uuid.New(), SectionID: sectionB, SectionTitle: "Expertise", SectionOrder: 2, Order: 1,
			Text: "Depth of technical knowledge", Config: types.RatingConfig{Min: 1, Max: 5},
			Dimensions: types.DimensionWeights{types.DimensionSkill: 1},
		},
		agency: types.Question{
			ID: uuid.New(), SectionID: sectionB, SectionTitle: "Expertise", SectionOrder: 2, Order: 2,
			Text: "Takes initiative without being asked", Config: types.RatingConfig{Min: 1, Max: 5},
			Dimensions: types.DimensionWeights{types.DimensionAgency: 1},
		},
		sqlitePath: filepath.Join(dir, "feedback.db"),
	}

	orgID := uuid.New()
	in := &types.CycleInput{
		Cycle: types.Cycle{
			ID: uuid.New(), OrganizationID: orgID, RevieweeID: uuid.New(), QuestionnaireID: uuid.New(),
			Status: types.CycleStatusActive,
		},
		Organization: &types.Organization{ID: orgID, Name: "Acme", MinResponsesForAnonymity: 2},
		Questions:    []types.Question{f.communicate, f.skill, f.agency},
	}
	add := func(cat types.Category, score float64) {
		token := uuid.New()
		for _, q := range in.Questions {
			in.Responses = append(in.Responses, types.RawResponse{
				CycleID: in.Cycle.ID, QuestionID: q.ID, TokenID: token, Category: cat, Answer: types.NumberAnswer(score),
			})
		}
	}
	add(types.CategorySelf, 4)
	add(types.CategoryPeer, 4)
	add(types.CategoryPeer, 5)
	add(types.CategoryManager, 3)
	f.input = in

	content, err := json.Marshal(in)
	require.NoError(t, err)
	f.inputPath = filepath.Join(dir, "cycle.json")
	require.NoError(t, os.WriteFile(f.inputPath, content, 0644))

	answers, err := json.Marshal(map[string]float64{
		f.skill.ID.String():  5,
		f.agency.ID.String(): 2,
	})
	require.NoError(t, err)
	f.answersPath = filepath.Join(dir, "answers.json")
	require.NoError(t, os.WriteFile(f.answersPath, answers, 0644))

	return f
}
