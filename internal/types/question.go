package types

import (
	"github.com/google/uuid"
)

// QuestionType identifies how a question is answered and aggregated.
type QuestionType string

// Supported question types
const (
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeLikert         QuestionType = "likert"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeText           QuestionType = "text"
)

// Dimension is an axis of the competency model.
type Dimension string

// Competency dimensions
const (
	DimensionSkill  Dimension = "skill"
	DimensionAgency Dimension = "agency"
)

// DimensionWeights maps a competency dimension to the question's contribution weight.
// A question may contribute to both dimensions with independent weights.
type DimensionWeights map[Dimension]float64

// Weight returns the positive weight for the dimension, or false when the question does not contribute.
func (d DimensionWeights) Weight(dim Dimension) (float64, bool) {
	w, ok := d[dim]
	if !ok || w <= 0 {
		return 0, false
	}
	return w, true
}

// QuestionConfig is the type-specific configuration of a question.
// Exactly one variant exists per QuestionType.
type QuestionConfig interface {
	Type() QuestionType
}

// RatingConfig configures a rating question. Ratings are already on the 1-5 scale.
type RatingConfig struct {
	Min float64
	Max float64
}

// ScaleConfig configures a numeric scale question with arbitrary bounds.
type ScaleConfig struct {
	Min float64
	Max float64
}

// LikertConfig configures a Likert question with ordered labels (lowest first).
type LikertConfig struct {
	Labels []string
}

// ChoiceConfig configures single and multiple choice questions.
// Weights are positionally aligned with Choices.
type ChoiceConfig struct {
	Multiple       bool
	Choices        []string
	Weights        []float64
	ScoringEnabled bool
}

// TextConfig configures a free text question.
type TextConfig struct{}

// Type implements QuestionConfig.
func (RatingConfig) Type() QuestionType { return QuestionTypeRating }

// Type implements QuestionConfig.
func (ScaleConfig) Type() QuestionType { return QuestionTypeScale }

// Type implements QuestionConfig.
func (LikertConfig) Type() QuestionType { return QuestionTypeLikert }

// Type implements QuestionConfig.
func (c ChoiceConfig) Type() QuestionType {
	if c.Multiple {
		return QuestionTypeMultipleChoice
	}
	return QuestionTypeSingleChoice
}

// Type implements QuestionConfig.
func (TextConfig) Type() QuestionType { return QuestionTypeText }

// Scored reports whether choices map to numeric weights.
func (c ChoiceConfig) Scored() bool {
	return c.ScoringEnabled && len(c.Weights) > 0
}

// WeightOf returns the weight of a choice label via index lookup.
// Unknown labels and labels past the end of the weight list are not mapped.
func (c ChoiceConfig) WeightOf(label string) (float64, bool) {
	for i, choice := range c.Choices {
		if choice != label {
			continue
		}
		if i >= len(c.Weights) {
			return 0, false
		}
		return c.Weights[i], true
	}
	return 0, false
}

// WeightRange returns the minimum and maximum configured weights.
func (c ChoiceConfig) WeightRange() (lo, hi float64, ok bool) {
	if len(c.Weights) == 0 {
		return 0, 0, false
	}
	lo, hi = c.Weights[0], c.Weights[0]
	for _, w := range c.Weights[1:] {
		lo = min(lo, w)
		hi = max(hi, w)
	}
	return lo, hi, true
}

// Ordinal returns the 1-based position of a Likert label.
func (c LikertConfig) Ordinal(label string) (int, bool) {
	for i, l := range c.Labels {
		if l == label {
			return i + 1, true
		}
	}
	return 0, false
}

// Question is a questionnaire question with its section metadata.
type Question struct {
	ID           uuid.UUID `validate:"required"`
	SectionID    uuid.UUID `validate:"required"`
	SectionTitle string
	SectionOrder int
	Order        int
	Text         string
	Config       QuestionConfig `validate:"required"`

	// ChartWeight multiplies the question's chart contribution (nil means 1.0).
	ChartWeight       *float64
	ExcludeFromCharts bool
	Dimensions        DimensionWeights
}

// Type returns the question type implied by its configuration.
func (q *Question) Type() QuestionType {
	if q.Config == nil {
		return QuestionTypeText
	}
	return q.Config.Type()
}

// IsNumeric reports whether the question yields a numeric average that may
// be used in statistics: rating, scale and scoring-enabled choice questions.
func (q *Question) IsNumeric() bool {
	switch cfg := q.Config.(type) {
	case RatingConfig, ScaleConfig:
		return true
	case ChoiceConfig:
		return cfg.Scored()
	default:
		return false
	}
}

// EffectiveChartWeight returns the chart weight, defaulting to 1.0.
func (q *Question) EffectiveChartWeight() float64 {
	if q.ChartWeight == nil {
		return 1.0
	}
	return *q.ChartWeight
}

// Normalize maps a numeric value for this question onto the common 1-5 scale.
// Rating values pass through. Scale values are rescaled from [Min, Max] and
// scored choices from the configured weight range. Zero-width ranges and
// non-numeric types are not normalizable.
func (q *Question) Normalize(value float64) (float64, bool) {
	switch cfg := q.Config.(type) {
	case RatingConfig:
		return value, true
	case ScaleConfig:
		return rescale(value, cfg.Min, cfg.Max)
	case ChoiceConfig:
		if !cfg.Scored() {
			return 0, false
		}
		lo, hi, ok := cfg.WeightRange()
		if !ok {
			return 0, false
		}
		return rescale(value, lo, hi)
	default:
		return 0, false
	}
}

func rescale(value, lo, hi float64) (float64, bool) {
	if hi == lo {
		return 0, false
	}
	return 1 + (value-lo)/(hi-lo)*4, true
}
