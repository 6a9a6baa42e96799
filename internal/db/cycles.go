package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/feedback-engine/internal/types"
)

// GetCycle retrieves a review cycle by ID
func (db *DB) GetCycle(ctx context.Context, cycleID uuid.UUID) (*types.Cycle, error) {
	var c types.Cycle
	err := db.pool.QueryRow(ctx,
		`SELECT id, organization_id, reviewee_id, questionnaire_id, status, created_at
		 FROM review_cycles WHERE id = $1`,
		cycleID,
	).Scan(&c.ID, &c.OrganizationID, &c.RevieweeID, &c.QuestionnaireID, &c.Status, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}
	return &c, nil
}

// GetOrganization retrieves an organization by ID
func (db *DB) GetOrganization(ctx context.Context, orgID uuid.UUID) (*types.Organization, error) {
	var org types.Organization
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, min_responses_for_anonymity FROM organizations WHERE id = $1`,
		orgID,
	).Scan(&org.ID, &org.Name, &org.MinResponsesForAnonymity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

// ListQuestions retrieves a questionnaire's questions in section and question order
func (db *DB) ListQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]types.Question, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, section_id, section_title, section_order, question_order, question_text, question_type, config
		 FROM questions WHERE questionnaire_id = $1
		 ORDER BY section_order, question_order, id`,
		questionnaireID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []types.Question
	for rows.Next() {
		var q types.Question
		var questionType string
		var configJSON []byte
		if err := rows.Scan(&q.ID, &q.SectionID, &q.SectionTitle, &q.SectionOrder, &q.Order,
			&q.Text, &questionType, &configJSON); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		decoded, err := types.DecodeStoredQuestion(q, types.QuestionType(questionType), configJSON)
		if err != nil {
			return nil, err
		}
		questions = append(questions, decoded)
	}
	return questions, rows.Err()
}

// ListResponses retrieves a cycle's responses with answers decoded for their question type
func (db *DB) ListResponses(ctx context.Context, cycleID uuid.UUID) ([]types.RawResponse, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.question_id, r.token_id, r.category, r.answer_data, COALESCE(q.question_type, '')
		 FROM responses r LEFT JOIN questions q ON q.id = r.question_id
		 WHERE r.cycle_id = $1
		 ORDER BY r.id`,
		cycleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []types.RawResponse
	for rows.Next() {
		r := types.RawResponse{CycleID: cycleID}
		var category, questionType string
		var answerJSON []byte
		if err := rows.Scan(&r.QuestionID, &r.TokenID, &category, &answerJSON, &questionType); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		r.Category = types.Category(category)
		if r.Answer, err = types.DecodeAnswerData(types.QuestionType(questionType), answerJSON); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// ListPriorCycles retrieves the reviewee's earlier completed, reported cycles
// of the same questionnaire, newest first
func (db *DB) ListPriorCycles(ctx context.Context, cycle *types.Cycle) ([]types.PriorCycle, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.created_at, r.report_data
		 FROM review_cycles c JOIN reports r ON r.cycle_id = c.id
		 WHERE c.reviewee_id = $1 AND c.questionnaire_id = $2 AND c.status = $3
		   AND c.id <> $4 AND c.created_at < $5
		 ORDER BY c.created_at DESC`,
		cycle.RevieweeID, cycle.QuestionnaireID, types.CycleStatusCompleted, cycle.ID, cycle.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prior cycles: %w", err)
	}
	defer rows.Close()

	var prior []types.PriorCycle
	for rows.Next() {
		var p types.PriorCycle
		var reportJSON []byte
		if err := rows.Scan(&p.CycleID, &p.CreatedAt, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan prior cycle: %w", err)
		}
		data, err := types.DecodeReportData(reportJSON)
		if err != nil {
			return nil, err
		}
		p.SectionSummary = data.SectionSummary
		if data.Insights != nil {
			p.OverallSentiment = data.Insights.OverallSentiment
		}
		prior = append(prior, p)
	}
	return prior, rows.Err()
}

// ListPeerSummaries retrieves section summaries of other reviewees' completed,
// reported cycles in the same organization and questionnaire
func (db *DB) ListPeerSummaries(ctx context.Context, cycle *types.Cycle) ([]types.SectionSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.report_data -> 'section_summary'
		 FROM review_cycles c JOIN reports r ON r.cycle_id = c.id
		 WHERE c.organization_id = $1 AND c.questionnaire_id = $2 AND c.status = $3
		   AND c.reviewee_id <> $4
		 ORDER BY c.created_at`,
		cycle.OrganizationID, cycle.QuestionnaireID, types.CycleStatusCompleted, cycle.RevieweeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list peer summaries: %w", err)
	}
	defer rows.Close()

	var peers []types.SectionSummary
	for rows.Next() {
		var summaryJSON []byte
		if err := rows.Scan(&summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan peer summary: %w", err)
		}
		var summary types.SectionSummary
		if err := json.Unmarshal(summaryJSON, &summary); err != nil {
			return nil, fmt.Errorf("failed to decode peer summary: %w", err)
		}
		if len(summary) > 0 {
			peers = append(peers, summary)
		}
	}
	return peers, rows.Err()
}

// Import writes a cycle with its organization, questions and responses
// in one transaction. Stored responses are never overwritten.
func (db *DB) Import(ctx context.Context, in *types.CycleInput) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	if org := in.Organization; org != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO organizations (id, name, min_responses_for_anonymity)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET name = $2, min_responses_for_anonymity = $3`,
			org.ID, org.Name, org.MinResponsesForAnonymity,
		)
		if err != nil {
			return fmt.Errorf("failed to import organization: %w", err)
		}
	}

	createdAt := in.Cycle.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO review_cycles (id, organization_id, reviewee_id, questionnaire_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET status = $5`,
		in.Cycle.ID, in.Cycle.OrganizationID, in.Cycle.RevieweeID, in.Cycle.QuestionnaireID,
		in.Cycle.Status, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to import cycle: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range in.Questions {
		q := &in.Questions[i]
		configJSON, err := json.Marshal(types.EncodeConfig(q))
		if err != nil {
			return fmt.Errorf("failed to encode question config: %w", err)
		}
		batch.Queue(
			`INSERT INTO questions (id, questionnaire_id, section_id, section_title, section_order,
			                        question_order, question_text, question_type, config)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE SET
			     section_id = $3, section_title = $4, section_order = $5,
			     question_order = $6, question_text = $7, question_type = $8, config = $9`,
			q.ID, in.Cycle.QuestionnaireID, q.SectionID, q.SectionTitle, q.SectionOrder,
			q.Order, q.Text, string(q.Type()), configJSON,
		)
	}
	for _, r := range in.Responses {
		answerJSON, err := types.EncodeAnswerData(r.Answer)
		if err != nil {
			return fmt.Errorf("failed to encode answer: %w", err)
		}
		batch.Queue(
			`INSERT INTO responses (cycle_id, question_id, token_id, category, answer_data)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (cycle_id, question_id, token_id) DO NOTHING`,
			in.Cycle.ID, r.QuestionID, r.TokenID, string(r.Category), answerJSON,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to import questions and responses: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
