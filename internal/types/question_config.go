package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ConfigBlob is the stored, loosely-typed form of a question configuration.
// Only the fields relevant to the question type are populated when encoding.
type ConfigBlob struct {
	Min               *float64       `json:"min,omitempty"`
	Max               *float64       `json:"max,omitempty"`
	Scale             []string       `json:"scale,omitempty"`
	Choices           []string       `json:"choices,omitempty"`
	Weights           []float64      `json:"weights,omitempty"`
	ScoringEnabled    bool           `json:"scoring_enabled,omitempty"`
	ChartWeight       *float64       `json:"chart_weight,omitempty"`
	ExcludeFromCharts bool           `json:"exclude_from_charts,omitempty"`
	DreyfusMapping    map[string]any `json:"dreyfus_mapping,omitempty"`
}

// Default bounds for numeric question types when the blob omits them.
const (
	defaultRatingMin = 1.0
	defaultRatingMax = 5.0
	defaultScaleMin  = 1.0
	defaultScaleMax  = 10.0
)

// ParseQuestionConfig decodes a stored config blob into the typed variant for
// questionType, together with the chart and dimension settings shared by all
// variants.
func ParseQuestionConfig(questionType QuestionType, raw []byte) (QuestionConfig, ChartSettings, error) {
	var blob ConfigBlob
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &blob); err != nil {
			return nil, ChartSettings{}, fmt.Errorf("failed to parse question config: %w", err)
		}
	}
	cfg, err := blob.toConfig(questionType)
	if err != nil {
		return nil, ChartSettings{}, err
	}
	return cfg, blob.chartSettings(), nil
}

// ChartSettings holds the configuration fields common to every question type.
type ChartSettings struct {
	ChartWeight       *float64
	ExcludeFromCharts bool
	Dimensions        DimensionWeights
}

// Apply copies the settings onto q.
func (s ChartSettings) Apply(q *Question) {
	q.ChartWeight = s.ChartWeight
	q.ExcludeFromCharts = s.ExcludeFromCharts
	q.Dimensions = s.Dimensions
}

func (b *ConfigBlob) toConfig(questionType QuestionType) (QuestionConfig, error) {
	switch questionType {
	case QuestionTypeRating:
		return RatingConfig{Min: valueOr(b.Min, defaultRatingMin), Max: valueOr(b.Max, defaultRatingMax)}, nil
	case QuestionTypeScale:
		return ScaleConfig{Min: valueOr(b.Min, defaultScaleMin), Max: valueOr(b.Max, defaultScaleMax)}, nil
	case QuestionTypeLikert:
		return LikertConfig{Labels: b.Scale}, nil
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice:
		return ChoiceConfig{
			Multiple:       questionType == QuestionTypeMultipleChoice,
			Choices:        b.Choices,
			Weights:        b.Weights,
			ScoringEnabled: b.ScoringEnabled,
		}, nil
	case QuestionTypeText:
		return TextConfig{}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", questionType)
	}
}

func (b *ConfigBlob) chartSettings() ChartSettings {
	return ChartSettings{
		ChartWeight:       b.ChartWeight,
		ExcludeFromCharts: b.ExcludeFromCharts,
		Dimensions:        parseDimensionMapping(b.DreyfusMapping),
	}
}

// parseDimensionMapping accepts both {"skill": 1.5, "agency": 0.5} and the
// older {"dimension": "skill", "weight": 1.0} form.
func parseDimensionMapping(mapping map[string]any) DimensionWeights {
	if len(mapping) == 0 {
		return nil
	}

	weights := DimensionWeights{}
	for _, dim := range []Dimension{DimensionSkill, DimensionAgency} {
		if w, ok := toFloat(mapping[string(dim)]); ok && w > 0 {
			weights[dim] = w
		}
	}

	if len(weights) == 0 {
		if name, ok := mapping["dimension"].(string); ok {
			w := 1.0
			if v, ok := toFloat(mapping["weight"]); ok {
				w = v
			}
			if dim, ok := legacyDimension(name); ok && w > 0 {
				weights[dim] = w
			}
		}
	}

	if len(weights) == 0 {
		return nil
	}
	return weights
}

// legacyDimension resolves a dimension name from the older mapping form.
// "initiative" is the former name of agency; unknown names are dropped.
func legacyDimension(name string) (Dimension, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(DimensionSkill):
		return DimensionSkill, true
	case string(DimensionAgency), "initiative":
		return DimensionAgency, true
	default:
		return "", false
	}
}

// EncodeConfig converts a question's typed configuration back to its blob form.
func EncodeConfig(q *Question) ConfigBlob {
	blob := ConfigBlob{
		ChartWeight:       q.ChartWeight,
		ExcludeFromCharts: q.ExcludeFromCharts,
	}
	if len(q.Dimensions) > 0 {
		blob.DreyfusMapping = make(map[string]any, len(q.Dimensions))
		for dim, w := range q.Dimensions {
			blob.DreyfusMapping[string(dim)] = w
		}
	}

	switch cfg := q.Config.(type) {
	case RatingConfig:
		blob.Min, blob.Max = ptr(cfg.Min), ptr(cfg.Max)
	case ScaleConfig:
		blob.Min, blob.Max = ptr(cfg.Min), ptr(cfg.Max)
	case LikertConfig:
		blob.Scale = cfg.Labels
	case ChoiceConfig:
		blob.Choices = cfg.Choices
		blob.Weights = cfg.Weights
		blob.ScoringEnabled = cfg.ScoringEnabled
	}
	return blob
}

// questionJSON is the wire form of a Question.
type questionJSON struct {
	ID           uuid.UUID       `json:"id"`
	SectionID    uuid.UUID       `json:"section_id"`
	SectionTitle string          `json:"section_title"`
	SectionOrder int             `json:"section_order"`
	Order        int             `json:"order"`
	Text         string          `json:"question_text"`
	Type         QuestionType    `json:"question_type"`
	Config       json.RawMessage `json:"config,omitempty"`
}

// MarshalJSON encodes the question with its config in blob form.
func (q Question) MarshalJSON() ([]byte, error) {
	blob, err := json.Marshal(EncodeConfig(&q))
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:           q.ID,
		SectionID:    q.SectionID,
		SectionTitle: q.SectionTitle,
		SectionOrder: q.SectionOrder,
		Order:        q.Order,
		Text:         q.Text,
		Type:         q.Type(),
		Config:       blob,
	})
}

// UnmarshalJSON decodes a question and resolves its typed configuration.
func (q *Question) UnmarshalJSON(data []byte) error {
	var wire questionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cfg, settings, err := ParseQuestionConfig(wire.Type, wire.Config)
	if err != nil {
		return fmt.Errorf("question %s: %w", wire.ID, err)
	}

	*q = Question{
		ID:           wire.ID,
		SectionID:    wire.SectionID,
		SectionTitle: wire.SectionTitle,
		SectionOrder: wire.SectionOrder,
		Order:        wire.Order,
		Text:         wire.Text,
		Config:       cfg,
	}
	settings.Apply(q)
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func ptr[T any](v T) *T {
	return &v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// DecodeStoredQuestion completes q from its stored type and config columns.
func DecodeStoredQuestion(q Question, questionType QuestionType, rawConfig []byte) (Question, error) {
	cfg, settings, err := ParseQuestionConfig(questionType, rawConfig)
	if err != nil {
		return Question{}, fmt.Errorf("question %s: %w", q.ID, err)
	}
	q.Config = cfg
	settings.Apply(&q)
	return q, nil
}
