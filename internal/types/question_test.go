package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_NormalizeScale(t *testing.T) {
	q := Question{Config: ScaleConfig{Min: 0, Max: 100}}

	var got []float64
	for _, v := range []float64{20, 50, 80} {
		n, ok := q.Normalize(v)
		require.True(t, ok)
		got = append(got, n)
	}

	assert.InDeltaSlice(t, []float64{1.8, 3.0, 4.2}, got, 1e-9)
}

func TestQuestion_NormalizeRatingPassesThrough(t *testing.T) {
	q := Question{Config: RatingConfig{Min: 1, Max: 5}}

	n, ok := q.Normalize(3.5)
	require.True(t, ok)
	assert.Equal(t, 3.5, n)
}

func TestQuestion_NormalizeChoiceUsesWeightRange(t *testing.T) {
	q := Question{Config: ChoiceConfig{
		Choices:        []string{"a", "b", "c"},
		Weights:        []float64{0, 5, 10},
		ScoringEnabled: true,
	}}

	n, ok := q.Normalize(5)
	require.True(t, ok)
	assert.InDelta(t, 3.0, n, 1e-9)
}

func TestQuestion_NormalizeZeroWidthRange(t *testing.T) {
	scale := Question{Config: ScaleConfig{Min: 5, Max: 5}}
	_, ok := scale.Normalize(5)
	assert.False(t, ok)

	choice := Question{Config: ChoiceConfig{Choices: []string{"a", "b"}, Weights: []float64{2, 2}, ScoringEnabled: true}}
	_, ok = choice.Normalize(2)
	assert.False(t, ok)
}

func TestQuestion_NormalizeNonNumeric(t *testing.T) {
	for _, cfg := range []QuestionConfig{
		TextConfig{},
		LikertConfig{Labels: []string{"low", "high"}},
		ChoiceConfig{Choices: []string{"a"}, Weights: []float64{1}},
	} {
		q := Question{Config: cfg}
		_, ok := q.Normalize(3)
		assert.False(t, ok, "type %s", cfg.Type())
	}
}

func TestQuestion_IsNumeric(t *testing.T) {
	tests := []struct {
		name   string
		config QuestionConfig
		want   bool
	}{
		{"rating", RatingConfig{Min: 1, Max: 5}, true},
		{"scale", ScaleConfig{Min: 0, Max: 10}, true},
		{"likert", LikertConfig{Labels: []string{"a"}}, false},
		{"scored choice", ChoiceConfig{Choices: []string{"a"}, Weights: []float64{1}, ScoringEnabled: true}, true},
		{"choice without weights", ChoiceConfig{Choices: []string{"a"}, ScoringEnabled: true}, false},
		{"choice scoring disabled", ChoiceConfig{Choices: []string{"a"}, Weights: []float64{1}}, false},
		{"text", TextConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Config: tt.config}
			assert.Equal(t, tt.want, q.IsNumeric())
		})
	}
}

func TestChoiceConfig_WeightOf(t *testing.T) {
	cfg := ChoiceConfig{Choices: []string{"A", "B", "C"}, Weights: []float64{1, 2}}

	w, ok := cfg.WeightOf("B")
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)

	_, ok = cfg.WeightOf("C")
	assert.False(t, ok, "label past the end of the weight list is unmapped")

	_, ok = cfg.WeightOf("Z")
	assert.False(t, ok)
}

func TestParseQuestionConfig_Defaults(t *testing.T) {
	cfg, settings, err := ParseQuestionConfig(QuestionTypeScale, nil)
	require.NoError(t, err)
	assert.Equal(t, ScaleConfig{Min: 1, Max: 10}, cfg)
	assert.Nil(t, settings.ChartWeight)

	cfg, _, err = ParseQuestionConfig(QuestionTypeRating, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, RatingConfig{Min: 1, Max: 5}, cfg)
}

func TestParseQuestionConfig_Choice(t *testing.T) {
	raw := `{"choices":["A","B"],"weights":[1,3],"scoring_enabled":true,"chart_weight":2,"exclude_from_charts":true}`

	cfg, settings, err := ParseQuestionConfig(QuestionTypeMultipleChoice, []byte(raw))
	require.NoError(t, err)

	choice, ok := cfg.(ChoiceConfig)
	require.True(t, ok)
	assert.True(t, choice.Multiple)
	assert.True(t, choice.Scored())
	assert.Equal(t, []string{"A", "B"}, choice.Choices)
	require.NotNil(t, settings.ChartWeight)
	assert.Equal(t, 2.0, *settings.ChartWeight)
	assert.True(t, settings.ExcludeFromCharts)
}

func TestParseQuestionConfig_DimensionMapping(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DimensionWeights
	}{
		{"both dimensions", `{"dreyfus_mapping":{"skill":1.5,"agency":0.5}}`, DimensionWeights{DimensionSkill: 1.5, DimensionAgency: 0.5}},
		{"legacy form", `{"dreyfus_mapping":{"dimension":"agency","weight":2}}`, DimensionWeights{DimensionAgency: 2}},
		{"legacy form without weight", `{"dreyfus_mapping":{"dimension":"skill"}}`, DimensionWeights{DimensionSkill: 1}},
		{"legacy initiative is agency", `{"dreyfus_mapping":{"dimension":"initiative","weight":1.5}}`, DimensionWeights{DimensionAgency: 1.5}},
		{"legacy unknown dimension dropped", `{"dreyfus_mapping":{"dimension":"charisma","weight":1}}`, nil},
		{"non-positive weights dropped", `{"dreyfus_mapping":{"skill":0,"agency":-1}}`, nil},
		{"absent", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, settings, err := ParseQuestionConfig(QuestionTypeRating, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.Dimensions)
		})
	}
}

func TestParseQuestionConfig_UnknownType(t *testing.T) {
	_, _, err := ParseQuestionConfig("matrix", []byte(`{}`))
	assert.Error(t, err)
}

func TestQuestion_JSONRoundTrip(t *testing.T) {
	weight := 2.0
	q := Question{
		ID:           uuid.New(),
		SectionID:    uuid.New(),
		SectionTitle: "Leadership",
		SectionOrder: 2,
		Order:        3,
		Text:         "Takes ownership of outcomes",
		Config:       LikertConfig{Labels: []string{"Never", "Sometimes", "Always"}},
		ChartWeight:  &weight,
		Dimensions:   DimensionWeights{DimensionAgency: 1.5},
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"question_type":"likert"`)
	assert.Contains(t, string(data), `"scale":["Never","Sometimes","Always"]`)

	var decoded Question
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, q, decoded)
}

func TestDecodeAnswer(t *testing.T) {
	tests := []struct {
		name string
		qt   QuestionType
		raw  string
		want Answer
	}{
		{"rating", QuestionTypeRating, `4`, NumberAnswer(4)},
		{"text", QuestionTypeText, `"well done"`, TextAnswer("well done")},
		{"single choice", QuestionTypeSingleChoice, `"B"`, LabelAnswer("B")},
		{"likert", QuestionTypeLikert, `"Agree"`, LabelAnswer("Agree")},
		{"multiple choice", QuestionTypeMultipleChoice, `["A","C"]`, LabelsAnswer{"A", "C"}},
		{"multiple choice single value", QuestionTypeMultipleChoice, `"A"`, LabelsAnswer{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAnswer(tt.qt, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAnswerData_Envelope(t *testing.T) {
	data, err := EncodeAnswerData(LabelsAnswer{"A", "B"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":["A","B"]}`, string(data))

	got, err := DecodeAnswerData(QuestionTypeMultipleChoice, data)
	require.NoError(t, err)
	assert.Equal(t, LabelsAnswer{"A", "B"}, got)

	empty, err := DecodeAnswerData(QuestionTypeRating, []byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestDecodeAnswer_Unsupported(t *testing.T) {
	_, err := DecodeAnswer(QuestionTypeRating, json.RawMessage(`{"x":1}`))
	assert.Error(t, err)
}
