package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Cycle status values
const (
	CycleStatusActive    = "active"
	CycleStatusCompleted = "completed"
)

// DefaultMinResponsesForAnonymity is the organization privacy threshold used when none is configured.
const DefaultMinResponsesForAnonymity = 3

// Organization holds the settings the engine reads from the reviewee's organization.
type Organization struct {
	ID                       uuid.UUID `json:"id" validate:"required"`
	Name                     string    `json:"name"`
	MinResponsesForAnonymity int       `json:"min_responses_for_anonymity" validate:"gte=0"`
}

// Cycle is one round of 360 feedback about a single reviewee using one questionnaire.
type Cycle struct {
	ID              uuid.UUID `json:"id" validate:"required"`
	OrganizationID  uuid.UUID `json:"organization_id" validate:"required"`
	RevieweeID      uuid.UUID `json:"reviewee_id" validate:"required"`
	QuestionnaireID uuid.UUID `json:"questionnaire_id" validate:"required"`
	Status          string    `json:"status" validate:"required,oneof=active completed"`
	CreatedAt       time.Time `json:"created_at"`
}

// RawResponse is one reviewer's answer to one question. Immutable once submitted.
type RawResponse struct {
	CycleID    uuid.UUID `validate:"required"`
	QuestionID uuid.UUID `validate:"required"`
	TokenID    uuid.UUID `validate:"required"`
	Category   Category  `validate:"required"`
	Answer     Answer
}

type rawResponseJSON struct {
	CycleID    uuid.UUID       `json:"cycle_id"`
	QuestionID uuid.UUID       `json:"question_id"`
	TokenID    uuid.UUID       `json:"token_id"`
	Category   Category        `json:"category"`
	AnswerData json.RawMessage `json:"answer_data"`
}

// MarshalJSON encodes the response with its answer in the {"value": ...} envelope.
func (r RawResponse) MarshalJSON() ([]byte, error) {
	data, err := EncodeAnswerData(r.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer: %w", err)
	}
	return json.Marshal(rawResponseJSON{
		CycleID:    r.CycleID,
		QuestionID: r.QuestionID,
		TokenID:    r.TokenID,
		Category:   r.Category,
		AnswerData: data,
	})
}

// UnmarshalJSON decodes a response. The answer variant is inferred from the
// JSON value; call Resolve once the question type is known.
func (r *RawResponse) UnmarshalJSON(data []byte) error {
	var wire rawResponseJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	answer, err := DecodeAnswerData("", wire.AnswerData)
	if err != nil {
		return err
	}
	*r = RawResponse{
		CycleID:    wire.CycleID,
		QuestionID: wire.QuestionID,
		TokenID:    wire.TokenID,
		Category:   wire.Category,
		Answer:     answer,
	}
	return nil
}

// Resolve narrows a type-agnostic answer to the variant expected for questionType.
func (r *RawResponse) Resolve(questionType QuestionType) {
	switch questionType {
	case QuestionTypeSingleChoice, QuestionTypeLikert:
		if t, ok := r.Answer.(TextAnswer); ok {
			r.Answer = LabelAnswer(t)
		}
	case QuestionTypeMultipleChoice:
		switch v := r.Answer.(type) {
		case TextAnswer:
			r.Answer = LabelsAnswer{string(v)}
		case LabelAnswer:
			r.Answer = LabelsAnswer{string(v)}
		}
	}
}

// CycleInput is everything needed to compute one report without a database:
// the cycle, its questions and responses, and optionally the reviewee's prior
// completed cycles and organizational peer summaries.
type CycleInput struct {
	Cycle        Cycle            `json:"cycle"`
	Organization *Organization    `json:"organization,omitempty"`
	Questions    []Question       `json:"questions" validate:"required,dive"`
	Responses    []RawResponse    `json:"responses" validate:"dive"`
	History      []PriorCycle     `json:"history,omitempty"`
	Peers        []SectionSummary `json:"peers,omitempty"`
}

// ResolveAnswers narrows every response's answer using its question's type.
// Responses to unknown questions are left unchanged.
func (in *CycleInput) ResolveAnswers() {
	questionTypes := make(map[uuid.UUID]QuestionType, len(in.Questions))
	for i := range in.Questions {
		questionTypes[in.Questions[i].ID] = in.Questions[i].Type()
	}
	for i := range in.Responses {
		if qt, ok := questionTypes[in.Responses[i].QuestionID]; ok {
			in.Responses[i].Resolve(qt)
		}
	}
}

// Validate validates the CycleInput using the validator.
func (in *CycleInput) Validate() error {
	validate := validator.New()
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid cycle input: %w", err)
	}
	return nil
}

// PriorCycle is a previously completed cycle for the same reviewee and questionnaire.
type PriorCycle struct {
	CycleID          uuid.UUID         `json:"cycle_id"`
	CreatedAt        time.Time         `json:"created_at"`
	SectionSummary   SectionSummary    `json:"section_summary"`
	OverallSentiment *OverallSentiment `json:"overall_sentiment,omitempty"`
}
