package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
)

// Store is the persistence the engine reads cycles and responses from and
// writes reports to. Lookups of missing rows return nil without an error.
type Store interface {
	GetCycle(ctx context.Context, cycleID uuid.UUID) (*types.Cycle, error)
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*types.Organization, error)
	ListQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]types.Question, error)
	// ListResponses returns the cycle's responses with answers resolved for
	// their question types.
	ListResponses(ctx context.Context, cycleID uuid.UUID) ([]types.RawResponse, error)
	// ListPriorCycles returns completed cycles of the same reviewee and
	// questionnaire created before cycle, newest first, that have a report.
	ListPriorCycles(ctx context.Context, cycle *types.Cycle) ([]types.PriorCycle, error)
	// ListPeerSummaries returns the section summaries of other reviewees'
	// completed, reported cycles of the same questionnaire and organization.
	ListPeerSummaries(ctx context.Context, cycle *types.Cycle) ([]types.SectionSummary, error)
	// UpsertReport atomically inserts or replaces the cycle's report and
	// returns the stored row. An existing access token is kept.
	UpsertReport(ctx context.Context, report *types.Report) (*types.Report, error)
	GetReport(ctx context.Context, cycleID uuid.UUID) (*types.Report, error)
	GetReportByAccessToken(ctx context.Context, accessToken string) (*types.Report, error)
}
