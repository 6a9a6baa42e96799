package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/feedback-engine/internal/types"
)

// Import writes a cycle with its organization, questions and responses in
// one transaction. Existing rows are updated except responses, which are
// immutable once stored. History and peer summaries in the input are
// ignored; they are derived from stored reports.
func (s *Store) Import(ctx context.Context, in *types.CycleInput) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if in.Organization != nil {
		if err := upsertOrganization(ctx, tx, in.Organization); err != nil {
			return err
		}
	}

	createdAt := in.Cycle.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO review_cycles (id, organization_id, reviewee_id, questionnaire_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status = excluded.status`,
		in.Cycle.ID.String(), in.Cycle.OrganizationID.String(), in.Cycle.RevieweeID.String(),
		in.Cycle.QuestionnaireID.String(), in.Cycle.Status, toMillis(createdAt))
	if err != nil {
		return fmt.Errorf("failed to import cycle: %w", err)
	}

	for i := range in.Questions {
		if err := upsertQuestion(ctx, tx, in.Cycle.QuestionnaireID.String(), &in.Questions[i]); err != nil {
			return err
		}
	}

	for i, r := range in.Responses {
		answer, err := types.EncodeAnswerData(r.Answer)
		if err != nil {
			return fmt.Errorf("failed to encode response %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO responses (cycle_id, question_id, token_id, category, answer_json, submitted_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(cycle_id, question_id, token_id) DO NOTHING`,
			in.Cycle.ID.String(), r.QuestionID.String(), r.TokenID.String(), string(r.Category),
			string(answer), time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to import response %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func upsertOrganization(ctx context.Context, tx *sql.Tx, org *types.Organization) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO organizations (id, name, min_responses_for_anonymity)
		 VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			min_responses_for_anonymity = excluded.min_responses_for_anonymity`,
		org.ID.String(), org.Name, org.MinResponsesForAnonymity)
	if err != nil {
		return fmt.Errorf("failed to import organization: %w", err)
	}
	return nil
}

func upsertQuestion(ctx context.Context, tx *sql.Tx, questionnaireID string, q *types.Question) error {
	config, err := json.Marshal(types.EncodeConfig(q))
	if err != nil {
		return fmt.Errorf("failed to encode question config: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO questions (id, questionnaire_id, section_id, section_title, section_order,
			question_order, question_text, question_type, config_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			section_id     = excluded.section_id,
			section_title  = excluded.section_title,
			section_order  = excluded.section_order,
			question_order = excluded.question_order,
			question_text  = excluded.question_text,
			question_type  = excluded.question_type,
			config_json    = excluded.config_json`,
		q.ID.String(), questionnaireID, q.SectionID.String(), q.SectionTitle, q.SectionOrder,
		q.Order, q.Text, string(q.Type()), string(config))
	if err != nil {
		return fmt.Errorf("failed to import question %s: %w", q.ID, err)
	}
	return nil
}
