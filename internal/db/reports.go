package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/feedback-engine/internal/types"
)

// UpsertReport inserts or replaces a cycle's report in one statement. The
// stored ID and a non-empty access token survive regeneration.
func (db *DB) UpsertReport(ctx context.Context, report *types.Report) (*types.Report, error) {
	dataJSON, err := json.Marshal(report.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	stored := *report
	err = db.pool.QueryRow(ctx,
		`INSERT INTO reports (id, cycle_id, access_token, report_data, available, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (cycle_id) DO UPDATE SET
		     report_data = EXCLUDED.report_data,
		     available = EXCLUDED.available,
		     generated_at = EXCLUDED.generated_at,
		     access_token = COALESCE(NULLIF(reports.access_token, ''), EXCLUDED.access_token)
		 RETURNING id, access_token, generated_at`,
		report.ID, report.CycleID, report.AccessToken, dataJSON, report.Available, report.GeneratedAt,
	).Scan(&stored.ID, &stored.AccessToken, &stored.GeneratedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert report: %w", err)
	}
	return &stored, nil
}

// GetReport retrieves the report for a cycle
func (db *DB) GetReport(ctx context.Context, cycleID uuid.UUID) (*types.Report, error) {
	return db.getReport(ctx, `cycle_id = $1`, cycleID)
}

// GetReportByAccessToken retrieves a report by its access token
func (db *DB) GetReportByAccessToken(ctx context.Context, accessToken string) (*types.Report, error) {
	if accessToken == "" {
		return nil, nil
	}
	return db.getReport(ctx, `access_token = $1`, accessToken)
}

// SetReportAvailable toggles whether a cycle's report may be shown publicly
func (db *DB) SetReportAvailable(ctx context.Context, cycleID uuid.UUID, available bool) error {
	tag, err := db.pool.Exec(ctx, `UPDATE reports SET available = $1 WHERE cycle_id = $2`, available, cycleID)
	if err != nil {
		return fmt.Errorf("failed to set report availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set report availability: no report for cycle %s", cycleID)
	}
	return nil
}

func (db *DB) getReport(ctx context.Context, where string, arg any) (*types.Report, error) {
	var r types.Report
	var dataJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, cycle_id, access_token, report_data, available, generated_at
		 FROM reports WHERE `+where,
		arg,
	).Scan(&r.ID, &r.CycleID, &r.AccessToken, &dataJSON, &r.Available, &r.GeneratedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if r.Data, err = types.DecodeReportData(dataJSON); err != nil {
		return nil, err
	}
	return &r, nil
}
