package competency

import (
	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
)

// Preview confidence levels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// previewDefaultLevel is the level of a dimension with no answered questions.
const previewDefaultLevel = 3.0

// previewAllowedMissing is how many weighted questions may be unanswered for
// a high confidence preview.
const previewAllowedMissing = 2

// Preview computes an instant competency estimate from one respondent's
// numeric answers, keyed by question ID, before a full report exists. Only
// questions with dimension weights are used.
func Preview(questions []types.Question, answers map[uuid.UUID]float64, threshold float64) types.CompetencyPreview {
	if threshold <= 0 {
		threshold = DefaultQuadrantThreshold
	}

	skill := previewLevel(questions, answers, types.DimensionSkill)
	agency := previewLevel(questions, answers, types.DimensionAgency)

	weighted, answered := 0, 0
	for i := range questions {
		if len(questions[i].Dimensions) == 0 {
			continue
		}
		weighted++
		if _, ok := answers[questions[i].ID]; ok {
			answered++
		}
	}
	confidence := ConfidenceMedium
	if weighted > 0 && answered >= weighted-previewAllowedMissing {
		confidence = ConfidenceHigh
	}

	return types.CompetencyPreview{
		SkillLevel:  skill,
		SkillStage:  SkillStage(skill).Name,
		AgencyLevel: agency,
		AgencyStage: AgencyStage(agency).Name,
		Quadrant:    QuadrantFor(skill, agency, threshold),
		Confidence:  confidence,
	}
}

// Preview computes an instant estimate using the classifier's quadrant threshold.
func (c *Classifier) Preview(questions []types.Question, answers map[uuid.UUID]float64) types.CompetencyPreview {
	return Preview(questions, answers, c.threshold())
}

func previewLevel(questions []types.Question, answers map[uuid.UUID]float64, dim types.Dimension) float64 {
	var weightedSum, totalWeight float64
	for i := range questions {
		q := &questions[i]
		weight, ok := q.Dimensions.Weight(dim)
		if !ok {
			continue
		}
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		if normalized, ok := q.Normalize(value); ok {
			value = normalized
		}
		weightedSum += value * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return previewDefaultLevel
	}
	return types.Round1(weightedSum / totalWeight)
}
