package types

import (
	"encoding/json"
	"fmt"
)

// Answer is the payload of a single response. Exactly one of NumberAnswer,
// TextAnswer, LabelAnswer or LabelsAnswer.
type Answer interface {
	isAnswer()
}

// NumberAnswer is a scalar numeric answer (rating, scale).
type NumberAnswer float64

// TextAnswer is a free text answer.
type TextAnswer string

// LabelAnswer is a single selected label (single choice, likert).
type LabelAnswer string

// LabelsAnswer is a list of selected labels (multiple choice).
type LabelsAnswer []string

func (NumberAnswer) isAnswer() {}
func (TextAnswer) isAnswer()   {}
func (LabelAnswer) isAnswer()  {}
func (LabelsAnswer) isAnswer() {}

// Number returns the numeric value of a, if any.
func Number(a Answer) (float64, bool) {
	n, ok := a.(NumberAnswer)
	return float64(n), ok
}

// Labels returns the labels selected by a. A single label is returned as a
// one-element slice; free text is treated as a label so that choice answers
// decoded without their question type still aggregate.
func Labels(a Answer) []string {
	switch v := a.(type) {
	case LabelAnswer:
		return []string{string(v)}
	case TextAnswer:
		return []string{string(v)}
	case LabelsAnswer:
		return v
	default:
		return nil
	}
}

// DecodeAnswer decodes the "value" of a stored answer for a question of the given type.
func DecodeAnswer(questionType QuestionType, raw json.RawMessage) (Answer, error) {
	generic, err := decodeAnswerValue(raw)
	if err != nil {
		return nil, err
	}

	switch questionType {
	case QuestionTypeSingleChoice, QuestionTypeLikert:
		if t, ok := generic.(TextAnswer); ok {
			return LabelAnswer(t), nil
		}
	case QuestionTypeMultipleChoice:
		switch v := generic.(type) {
		case TextAnswer:
			return LabelsAnswer{string(v)}, nil
		case LabelAnswer:
			return LabelsAnswer{string(v)}, nil
		}
	}
	return generic, nil
}

// decodeAnswerValue decodes a value without knowing the question type:
// numbers become NumberAnswer, strings TextAnswer, string lists LabelsAnswer.
func decodeAnswerValue(raw json.RawMessage) (Answer, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode answer: %w", err)
	}

	switch val := v.(type) {
	case float64:
		return NumberAnswer(val), nil
	case string:
		return TextAnswer(val), nil
	case []any:
		labels := make(LabelsAnswer, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				labels = append(labels, s)
			}
		}
		return labels, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported answer value of type %T", v)
	}
}

// answerData is the stored envelope of an answer: {"value": ...}.
type answerData struct {
	Value json.RawMessage `json:"value"`
}

// EncodeAnswerData wraps an answer in its stored envelope.
func EncodeAnswerData(a Answer) ([]byte, error) {
	value, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerData{Value: value})
}

// DecodeAnswerData unwraps a stored {"value": ...} envelope.
func DecodeAnswerData(questionType QuestionType, data []byte) (Answer, error) {
	var env answerData
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode answer data: %w", err)
	}
	if len(env.Value) == 0 {
		return nil, nil
	}
	return DecodeAnswer(questionType, env.Value)
}
