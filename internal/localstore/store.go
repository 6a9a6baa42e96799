package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/reports"
	"github.com/jonathan/feedback-engine/internal/types"
)

var _ reports.Store = (*Store)(nil)

// GetCycle returns the cycle, or nil if it does not exist.
func (s *Store) GetCycle(ctx context.Context, cycleID uuid.UUID) (*types.Cycle, error) {
	var c types.Cycle
	var id, orgID, revieweeID, questionnaireID string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, organization_id, reviewee_id, questionnaire_id, status, created_at
		 FROM review_cycles WHERE id = ?`, cycleID.String(),
	).Scan(&id, &orgID, &revieweeID, &questionnaireID, &c.Status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}

	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse cycle id: %w", err)
	}
	if c.OrganizationID, err = uuid.Parse(orgID); err != nil {
		return nil, fmt.Errorf("failed to parse organization id: %w", err)
	}
	if c.RevieweeID, err = uuid.Parse(revieweeID); err != nil {
		return nil, fmt.Errorf("failed to parse reviewee id: %w", err)
	}
	if c.QuestionnaireID, err = uuid.Parse(questionnaireID); err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire id: %w", err)
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

// GetOrganization returns the organization, or nil if it does not exist.
func (s *Store) GetOrganization(ctx context.Context, orgID uuid.UUID) (*types.Organization, error) {
	org := types.Organization{ID: orgID}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, min_responses_for_anonymity FROM organizations WHERE id = ?`, orgID.String(),
	).Scan(&org.Name, &org.MinResponsesForAnonymity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

// ListQuestions returns the questionnaire's questions in section and question order.
func (s *Store) ListQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]types.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, section_id, section_title, section_order, question_order, question_text, question_type, config_json
		 FROM questions WHERE questionnaire_id = ?
		 ORDER BY section_order, question_order, id`, questionnaireID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []types.Question
	for rows.Next() {
		var q types.Question
		var id, sectionID, questionType, config string
		if err := rows.Scan(&id, &sectionID, &q.SectionTitle, &q.SectionOrder, &q.Order, &q.Text, &questionType, &config); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if q.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse question id: %w", err)
		}
		if q.SectionID, err = uuid.Parse(sectionID); err != nil {
			return nil, fmt.Errorf("failed to parse section id: %w", err)
		}
		decoded, err := types.DecodeStoredQuestion(q, types.QuestionType(questionType), []byte(config))
		if err != nil {
			return nil, err
		}
		questions = append(questions, decoded)
	}
	return questions, rows.Err()
}

// ListResponses returns the cycle's responses in submission order.
func (s *Store) ListResponses(ctx context.Context, cycleID uuid.UUID) ([]types.RawResponse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.question_id, r.token_id, r.category, r.answer_json, COALESCE(q.question_type, '')
		 FROM responses r LEFT JOIN questions q ON q.id = r.question_id
		 WHERE r.cycle_id = ? ORDER BY r.id`, cycleID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []types.RawResponse
	for rows.Next() {
		var questionID, tokenID, category, answer, questionType string
		if err := rows.Scan(&questionID, &tokenID, &category, &answer, &questionType); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}

		r := types.RawResponse{CycleID: cycleID, Category: types.Category(category)}
		if r.QuestionID, err = uuid.Parse(questionID); err != nil {
			return nil, fmt.Errorf("failed to parse question id: %w", err)
		}
		if r.TokenID, err = uuid.Parse(tokenID); err != nil {
			return nil, fmt.Errorf("failed to parse token id: %w", err)
		}
		if r.Answer, err = types.DecodeAnswerData(types.QuestionType(questionType), []byte(answer)); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// ListPriorCycles returns the reviewee's earlier completed, reported cycles
// of the same questionnaire, newest first.
func (s *Store) ListPriorCycles(ctx context.Context, cycle *types.Cycle) ([]types.PriorCycle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.created_at, r.report_json
		 FROM review_cycles c JOIN reports r ON r.cycle_id = c.id
		 WHERE c.reviewee_id = ? AND c.questionnaire_id = ? AND c.status = ?
		   AND c.id <> ? AND c.created_at < ?
		 ORDER BY c.created_at DESC`,
		cycle.RevieweeID.String(), cycle.QuestionnaireID.String(), types.CycleStatusCompleted,
		cycle.ID.String(), toMillis(cycle.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list prior cycles: %w", err)
	}
	defer rows.Close()

	var prior []types.PriorCycle
	for rows.Next() {
		var id, raw string
		var createdAt int64
		if err := rows.Scan(&id, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan prior cycle: %w", err)
		}
		data, err := types.DecodeReportData([]byte(raw))
		if err != nil {
			return nil, err
		}

		p := types.PriorCycle{CreatedAt: fromMillis(createdAt), SectionSummary: data.SectionSummary}
		if p.CycleID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse cycle id: %w", err)
		}
		if data.Insights != nil {
			p.OverallSentiment = data.Insights.OverallSentiment
		}
		prior = append(prior, p)
	}
	return prior, rows.Err()
}

// ListPeerSummaries returns section summaries of other reviewees' completed,
// reported cycles in the same organization and questionnaire.
func (s *Store) ListPeerSummaries(ctx context.Context, cycle *types.Cycle) ([]types.SectionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.report_json
		 FROM review_cycles c JOIN reports r ON r.cycle_id = c.id
		 WHERE c.organization_id = ? AND c.questionnaire_id = ? AND c.status = ?
		   AND c.reviewee_id <> ?
		 ORDER BY c.created_at`,
		cycle.OrganizationID.String(), cycle.QuestionnaireID.String(), types.CycleStatusCompleted,
		cycle.RevieweeID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list peer summaries: %w", err)
	}
	defer rows.Close()

	var peers []types.SectionSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan peer report: %w", err)
		}
		data, err := types.DecodeReportData([]byte(raw))
		if err != nil {
			return nil, err
		}
		if len(data.SectionSummary) > 0 {
			peers = append(peers, data.SectionSummary)
		}
	}
	return peers, rows.Err()
}

// UpsertReport inserts or replaces the cycle's report in one statement. The
// existing row's ID and non-empty access token are kept.
func (s *Store) UpsertReport(ctx context.Context, report *types.Report) (*types.Report, error) {
	data, err := json.Marshal(report.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	stored := *report
	var id string
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO reports (id, cycle_id, access_token, report_json, available, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cycle_id) DO UPDATE SET
			report_json  = excluded.report_json,
			available    = excluded.available,
			generated_at = excluded.generated_at,
			access_token = COALESCE(NULLIF(reports.access_token, ''), excluded.access_token)
		 RETURNING id, access_token`,
		report.ID.String(), report.CycleID.String(), report.AccessToken, string(data),
		report.Available, toMillis(report.GeneratedAt),
	).Scan(&id, &stored.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert report: %w", err)
	}
	if stored.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse report id: %w", err)
	}
	return &stored, nil
}

// GetReport returns the cycle's report, or nil if none has been generated.
func (s *Store) GetReport(ctx context.Context, cycleID uuid.UUID) (*types.Report, error) {
	return s.getReport(ctx, `cycle_id = ?`, cycleID.String())
}

// GetReportByAccessToken returns the report with the given token, or nil.
func (s *Store) GetReportByAccessToken(ctx context.Context, accessToken string) (*types.Report, error) {
	if accessToken == "" {
		return nil, nil
	}
	return s.getReport(ctx, `access_token = ?`, accessToken)
}

// SetReportAvailable toggles whether the cycle's report may be shown publicly.
func (s *Store) SetReportAvailable(ctx context.Context, cycleID uuid.UUID, available bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE reports SET available = ? WHERE cycle_id = ?`, available, cycleID.String())
	if err != nil {
		return fmt.Errorf("failed to set report availability: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to set report availability: no report for cycle %s", cycleID)
	}
	return nil
}

func (s *Store) getReport(ctx context.Context, where string, arg any) (*types.Report, error) {
	var r types.Report
	var id, cycleID, raw string
	var generatedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, cycle_id, access_token, report_json, available, generated_at FROM reports WHERE `+where, arg,
	).Scan(&id, &cycleID, &r.AccessToken, &raw, &r.Available, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse report id: %w", err)
	}
	if r.CycleID, err = uuid.Parse(cycleID); err != nil {
		return nil, fmt.Errorf("failed to parse cycle id: %w", err)
	}
	if r.Data, err = types.DecodeReportData([]byte(raw)); err != nil {
		return nil, err
	}
	r.GeneratedAt = fromMillis(generatedAt)
	return &r, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
