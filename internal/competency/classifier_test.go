package competency

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func weighted(dims types.DimensionWeights, stats map[types.Category]types.CategoryStat) *types.AggregatedQuestion {
	q := &types.AggregatedQuestion{
		Question: types.Question{
			ID:         uuid.New(),
			Config:     types.RatingConfig{Min: 1, Max: 5},
			Dimensions: dims,
		},
		ByCategory: map[types.Category]*types.CategoryStat{},
	}
	for cat, s := range stats {
		stat := s
		q.ByCategory[cat] = &stat
		q.CategoryOrder = append(q.CategoryOrder, cat)
	}
	q.CategoryOrder = types.SortCategories(q.CategoryOrder)
	return q
}

func avg(v float64) *float64 { return &v }

func sectionOf(title string, questions ...*types.AggregatedQuestion) *types.SectionAggregate {
	s := &types.SectionAggregate{Title: title, Questions: map[string]*types.AggregatedQuestion{}}
	for i, q := range questions {
		q.Question.Order = i
		s.Questions[q.Question.ID.String()] = q
	}
	return s
}

func TestQuadrantFor(t *testing.T) {
	tests := []struct {
		skill, agency float64
		want          string
		name          string
	}{
		{4.0, 4.0, QuadrantForceMultiplier, "Force Multiplier"},
		{4.0, 1.0, QuadrantSpecialist, "Specialist"},
		{1.0, 4.0, QuadrantHungryLearner, "Hungry Learner"},
		{1.0, 1.0, QuadrantDevelopingContributor, "Developing Contributor"},
		{2.5, 2.5, QuadrantForceMultiplier, "Force Multiplier"},
		{2.49, 2.5, QuadrantHungryLearner, "Hungry Learner"},
	}

	for _, tt := range tests {
		q := QuadrantFor(tt.skill, tt.agency, DefaultQuadrantThreshold)
		assert.Equal(t, tt.want, q.Key, "skill=%.2f agency=%.2f", tt.skill, tt.agency)
		assert.Equal(t, tt.name, q.Name)
		assert.NotEmpty(t, q.Characteristics)
		assert.NotEmpty(t, q.DevelopmentPath)
		assert.Equal(t, DefaultQuadrantThreshold, q.Threshold)
	}
}

func TestQuadrantFor_ConfiguredThreshold(t *testing.T) {
	q := QuadrantFor(3.0, 3.0, 3.5)
	assert.Equal(t, QuadrantDevelopingContributor, q.Key)
}

func TestStageFor(t *testing.T) {
	tests := []struct {
		level float64
		stage int
	}{
		{1.0, 1}, {1.49, 1}, {1.5, 2}, {2.49, 2}, {2.5, 3}, {3.49, 3}, {3.5, 4}, {4.49, 4}, {4.5, 5}, {5.0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.stage, StageFor(tt.level), "level %.2f", tt.level)
	}
	assert.Equal(t, "Novice", SkillStage(1.2).Name)
	assert.Equal(t, "Expert", SkillStage(4.8).Name)
	assert.Equal(t, "Directed", AgencyStage(1.2).Name)
	assert.Equal(t, "Self-Driven", AgencyStage(4.8).Name)
}

func TestScoreDimension_Weighted(t *testing.T) {
	heavy := weighted(types.DimensionWeights{types.DimensionSkill: 2}, map[types.Category]types.CategoryStat{
		types.CategoryPeer:    {Count: 3, Avg: avg(4)},
		types.CategoryManager: {Count: 1, Avg: avg(5)},
		types.CategorySelf:    {Count: 1, Avg: avg(1)},
	})
	light := weighted(types.DimensionWeights{types.DimensionSkill: 1}, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 3, Avg: avg(3)},
	})
	bySection := types.BySection{"s": sectionOf("Engineering", heavy, light)}

	result := ScoreDimension(bySection, types.DimensionSkill)
	require.NotNil(t, result)

	// heavy scores (4+5)/2 = 4.5, light scores 3: (4.5*2 + 3*1) / 3
	assert.Equal(t, 4.0, result.Level)
	assert.Equal(t, 4, result.Stage)
	assert.Equal(t, "Proficient", result.StageName)
	assert.Equal(t, "Expert", result.NextStage)
	assert.Equal(t, DevelopmentFocus(4), result.DevelopmentFocus)
	assert.Equal(t, types.MethodWeighted, result.Method)
	// min(1, 2/5 * 3/3)
	assert.Equal(t, 0.4, result.Confidence)
	assert.Len(t, result.ContributingQuestions, 2)
}

func TestScoreDimension_DualDimensionQuestion(t *testing.T) {
	dual := weighted(types.DimensionWeights{types.DimensionSkill: 1, types.DimensionAgency: 0.5}, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 2, Avg: avg(4)},
	})
	agencyOnly := weighted(types.DimensionWeights{types.DimensionAgency: 1.5}, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 2, Avg: avg(2)},
	})
	bySection := types.BySection{"s": sectionOf("Engineering", dual, agencyOnly)}

	skill := ScoreDimension(bySection, types.DimensionSkill)
	require.NotNil(t, skill)
	assert.Equal(t, 4.0, skill.Level)
	assert.Equal(t, []string{dual.Question.ID.String()}, skill.ContributingQuestions)

	agency := ScoreDimension(bySection, types.DimensionAgency)
	require.NotNil(t, agency)
	// (4*0.5 + 2*1.5) / 2
	assert.Equal(t, 2.5, agency.Level)
	assert.Equal(t, "Independent", agency.StageName)
	assert.Empty(t, agency.Traits)
	// min(1, 2/3 * 2/2)
	assert.Equal(t, 0.67, agency.Confidence)
}

func TestScoreDimension_SkipsSelfRedactedAndInvalid(t *testing.T) {
	q := weighted(types.DimensionWeights{types.DimensionSkill: 1}, map[types.Category]types.CategoryStat{
		types.CategorySelf:         {Count: 1, Avg: avg(5)},
		types.CategoryPeer:         {Count: 1, Avg: avg(1)},
		types.CategoryDirectReport: {Count: 2, Avg: avg(1), Insufficient: true},
		types.CategoryManager:      {Count: 1, Avg: avg(3)},
	})
	bySection := types.BySection{"s": sectionOf("Engineering", q)}

	result := ScoreDimension(bySection, types.DimensionSkill)
	require.NotNil(t, result)
	assert.Equal(t, 3.0, result.Level)
}

func TestScoreDimension_NoTaggedQuestions(t *testing.T) {
	q := weighted(nil, map[types.Category]types.CategoryStat{types.CategoryPeer: {Count: 3, Avg: avg(4)}})
	bySection := types.BySection{"s": sectionOf("Engineering", q)}

	assert.Nil(t, ScoreDimension(bySection, types.DimensionSkill))
}

func TestClassify_LegacySectionFallback(t *testing.T) {
	q := weighted(nil, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 3, Avg: avg(3.2)},
		types.CategorySelf: {Count: 1, Avg: avg(5)},
	})
	data := &types.ReportData{BySection: types.BySection{"s": sectionOf("Technical Expertise & Skill Level", q)}}

	profile := NewClassifier(0, zaptest.NewLogger(t)).Classify(data)
	require.NotNil(t, profile)
	require.NotNil(t, profile.Skill)
	assert.Equal(t, types.MethodLegacySections, profile.Skill.Method)
	assert.Equal(t, LegacyConfidence, profile.Skill.Confidence)
	assert.Equal(t, 3.2, profile.Skill.Level)
	assert.Nil(t, profile.Agency)
	assert.Nil(t, profile.Quadrant)
}

func TestClassify_Unavailable(t *testing.T) {
	q := weighted(nil, map[types.Category]types.CategoryStat{types.CategoryPeer: {Count: 3, Avg: avg(4)}})
	data := &types.ReportData{BySection: types.BySection{"s": sectionOf("Communication", q)}}

	assert.Nil(t, NewClassifier(0, nil).Classify(data))
	assert.Nil(t, NewClassifier(0, nil).Classify(nil))
}

func TestClassify_FullProfile(t *testing.T) {
	skillQ := weighted(types.DimensionWeights{types.DimensionSkill: 1}, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 3, Avg: avg(4)},
	})
	agencyQ := weighted(types.DimensionWeights{types.DimensionAgency: 1}, map[types.Category]types.CategoryStat{
		types.CategoryPeer: {Count: 3, Avg: avg(1)},
	})
	data := &types.ReportData{
		BySection: types.BySection{"s": sectionOf("Engineering", skillQ, agencyQ)},
		Insights: &types.Insights{DevelopmentAreas: []types.SectionInsight{
			{Section: "Ownership", Score: 2.0},
		}},
	}

	profile := NewClassifier(DefaultQuadrantThreshold, nil).Classify(data)
	require.NotNil(t, profile)
	require.NotNil(t, profile.Quadrant)
	assert.Equal(t, QuadrantSpecialist, profile.Quadrant.Key)
	assert.Equal(t, "Take more initiative on projects - your skills are ready for more ownership", profile.Recommendations.QuickWins[0])
	assert.Contains(t, profile.Recommendations.QuickWins, "Focus on improving: ownership")
}
