// Package competency classifies a reviewee on a five-stage skill model and a
// two-dimensional skill × initiative quadrant, and generates development
// recommendations.
package competency

import (
	"math"

	"github.com/jonathan/feedback-engine/internal/types"
	"go.uber.org/zap"
)

// DefaultQuadrantThreshold is the single high/low boundary used on both axes
// by the full classifier and the preview calculator.
const DefaultQuadrantThreshold = 2.5

// LegacyConfidence is the confidence of a skill level found by section title.
const LegacyConfidence = 0.6

// LegacySkillSections are section titles used to estimate skill when no
// question carries dimension weights.
//
// Deprecated: tag questions with dimension weights instead. Matching is exact
// and breaks when a section is renamed.
var LegacySkillSections = []string{
	"Technical Expertise & Skill Level",
	"Problem Solving & Decision Making",
}

// confidenceScale holds the question count and total weight at which a
// dimension's confidence reaches 1.0.
var confidenceScale = map[types.Dimension]struct{ questions, weight float64 }{
	types.DimensionSkill:  {questions: 5, weight: 3},
	types.DimensionAgency: {questions: 3, weight: 2},
}

// Classifier derives competency profiles from report data.
type Classifier struct {
	QuadrantThreshold float64
	Logger            *zap.Logger
}

// NewClassifier creates a Classifier. A non-positive threshold selects
// DefaultQuadrantThreshold; a nil logger discards log output.
func NewClassifier(threshold float64, logger *zap.Logger) *Classifier {
	if threshold <= 0 {
		threshold = DefaultQuadrantThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{QuadrantThreshold: threshold, Logger: logger}
}

func (c *Classifier) threshold() float64 {
	if c == nil || c.QuadrantThreshold <= 0 {
		return DefaultQuadrantThreshold
	}
	return c.QuadrantThreshold
}

func (c *Classifier) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Classify computes the competency profile of a report. It returns nil when
// neither dimension can be scored.
func (c *Classifier) Classify(data *types.ReportData) *types.CompetencyProfile {
	if data == nil {
		return nil
	}

	skill := ScoreDimension(data.BySection, types.DimensionSkill)
	if skill == nil {
		skill = legacySkill(data.BySection)
		if skill != nil {
			c.logger().Debug("skill level estimated from legacy section titles",
				zap.Float64("level", skill.Level))
		}
	}
	agency := ScoreDimension(data.BySection, types.DimensionAgency)

	if skill == nil && agency == nil {
		c.logger().Debug("no dimension-tagged questions, competency profile unavailable")
		return nil
	}

	profile := &types.CompetencyProfile{
		Skill:           skill,
		Agency:          agency,
		Recommendations: Recommend(skill, agency, data.Insights),
	}
	if skill != nil && agency != nil {
		q := QuadrantFor(skill.Level, agency.Level, c.threshold())
		profile.Quadrant = &q
	}
	return profile
}

// ScoreDimension computes a dimension level from questions carrying a weight
// for dim. Each question scores the mean of its non-self, non-redacted
// category averages on the 1-5 scale. It returns nil when no question
// contributes.
func ScoreDimension(bySection types.BySection, dim types.Dimension) *types.DimensionResult {
	var (
		weightedSum, totalWeight float64
		scores                   []float64
		contributing             []string
	)

	for _, sid := range bySection.SectionIDs() {
		section := bySection[sid]
		for _, qid := range section.QuestionIDs() {
			q := section.Questions[qid]
			weight, ok := q.Question.Dimensions.Weight(dim)
			if !ok {
				continue
			}
			score, ok := othersScore(q)
			if !ok {
				continue
			}
			weightedSum += score * weight
			totalWeight += weight
			scores = append(scores, score)
			contributing = append(contributing, qid)
		}
	}

	if len(scores) == 0 {
		return nil
	}

	var level float64
	if totalWeight > 0 {
		level = weightedSum / totalWeight
	} else {
		level, _ = types.Mean(scores)
	}

	scale := confidenceScale[dim]
	confidence := 1.0
	if scale.questions > 0 && scale.weight > 0 {
		confidence = math.Min(1, float64(len(contributing))/scale.questions*(totalWeight/scale.weight))
	}

	result := newDimensionResult(dim, level, types.MethodWeighted)
	result.Confidence = types.Round2(confidence)
	result.ContributingQuestions = contributing
	return result
}

// othersScore is the mean of a question's non-self category averages.
// Categories below their validity floor are skipped.
func othersScore(q *types.AggregatedQuestion) (float64, bool) {
	var values []float64
	for cat, stat := range q.ByCategory {
		if cat.IsSelf() || stat.Insufficient || stat.Avg == nil || !cat.IsValidFor(stat.Count) {
			continue
		}
		v, ok := q.Question.Normalize(*stat.Avg)
		if !ok || v <= 0 {
			continue
		}
		values = append(values, v)
	}
	return types.Mean(values)
}

// legacySkill estimates skill from the first section whose title is in
// LegacySkillSections.
func legacySkill(bySection types.BySection) *types.DimensionResult {
	for _, sid := range bySection.SectionIDs() {
		section := bySection[sid]
		if !isLegacySkillSection(section.Title) {
			continue
		}

		var values []float64
		for _, qid := range section.QuestionIDs() {
			if v, ok := othersScore(section.Questions[qid]); ok {
				values = append(values, v)
			}
		}
		level, ok := types.Mean(values)
		if !ok {
			continue
		}

		result := newDimensionResult(types.DimensionSkill, level, types.MethodLegacySections)
		result.Confidence = LegacyConfidence
		result.ContributingQuestions = []string{}
		return result
	}
	return nil
}

func isLegacySkillSection(title string) bool {
	for _, t := range LegacySkillSections {
		if t == title {
			return true
		}
	}
	return false
}

func newDimensionResult(dim types.Dimension, level float64, method string) *types.DimensionResult {
	stageNum := StageFor(level)
	result := &types.DimensionResult{
		Dimension: dim,
		Level:     types.Round2(level),
		Stage:     stageNum,
		Method:    method,
	}

	if dim == types.DimensionAgency {
		stage := AgencyStages[stageNum-1]
		result.StageName = stage.Name
		result.Description = stage.Description
		return result
	}

	stage := SkillStages[stageNum-1]
	result.StageName = stage.Name
	result.Description = stage.Description
	result.Traits = append([]string(nil), stage.Traits...)
	result.DevelopmentFocus = DevelopmentFocus(stageNum)
	if stageNum < len(SkillStages) {
		result.NextStage = SkillStages[stageNum].Name
	}
	return result
}

// QuadrantFor classifies skill and initiative levels. A level at or above
// threshold counts as high.
func QuadrantFor(skill, agency, threshold float64) types.Quadrant {
	highSkill := skill >= threshold
	highAgency := agency >= threshold

	var key string
	switch {
	case highSkill && highAgency:
		key = QuadrantForceMultiplier
	case highSkill:
		key = QuadrantSpecialist
	case highAgency:
		key = QuadrantHungryLearner
	default:
		key = QuadrantDevelopingContributor
	}

	info := quadrants[key]
	return types.Quadrant{
		Key:             key,
		Name:            info.name,
		Description:     info.description,
		Characteristics: append([]string(nil), info.characteristics...),
		DevelopmentPath: info.developmentPath,
		SkillLevel:      types.Round2(skill),
		AgencyLevel:     types.Round2(agency),
		Threshold:       threshold,
	}
}
