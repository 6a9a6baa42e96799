package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/anonymize"
	"github.com/jonathan/feedback-engine/internal/competency"
	"github.com/jonathan/feedback-engine/internal/types"
	"go.uber.org/zap"
)

// EngineOptions configures an Engine. Zero values select the defaults.
type EngineOptions struct {
	Logger *zap.Logger
	// QuadrantThreshold is shared by profiles and previews.
	QuadrantThreshold float64
	// DefaultMinResponses applies when the cycle has no organization on record.
	DefaultMinResponses int
	Now                 func() time.Time
}

// Engine generates, stores and serves reports for review cycles.
type Engine struct {
	store      Store
	classifier *competency.Classifier
	logger     *zap.Logger
	minDefault int
	now        func() time.Time
	locks      *cycleLocks
}

// View is the display form of a stored report: by_section is redacted for
// anonymity while every derived field is computed from unfiltered data.
type View struct {
	ReportID     uuid.UUID             `json:"report_id"`
	CycleID      uuid.UUID             `json:"cycle_id"`
	GeneratedAt  time.Time             `json:"generated_at"`
	MinResponses int                   `json:"min_responses_for_anonymity"`
	Summary      types.ResponseSummary `json:"summary"`
	Data         *types.ReportData     `json:"report_data"`
}

// NewEngine creates an Engine backed by store.
func NewEngine(store Store, opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	minDefault := opts.DefaultMinResponses
	if minDefault <= 0 {
		minDefault = types.DefaultMinResponsesForAnonymity
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		store:      store,
		classifier: competency.NewClassifier(opts.QuadrantThreshold, logger),
		logger:     logger,
		minDefault: minDefault,
		now:        now,
		locks:      newCycleLocks(),
	}
}

// Classifier returns the competency classifier the engine uses.
func (e *Engine) Classifier() *competency.Classifier {
	return e.classifier
}

// LoadInput reads everything needed to build the cycle's report.
func (e *Engine) LoadInput(ctx context.Context, cycleID uuid.UUID) (*types.CycleInput, error) {
	cycle, err := e.store.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cycle: %w", err)
	}
	if cycle == nil {
		return nil, fmt.Errorf("%w: %s", ErrCycleNotFound, cycleID)
	}

	org, err := e.store.GetOrganization(ctx, cycle.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}

	questions, err := e.store.ListQuestions(ctx, cycle.QuestionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	responses, err := e.store.ListResponses(ctx, cycle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	history, err := e.store.ListPriorCycles(ctx, cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior cycles: %w", err)
	}

	peers, err := e.store.ListPeerSummaries(ctx, cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to load peer summaries: %w", err)
	}

	return &types.CycleInput{
		Cycle:        *cycle,
		Organization: org,
		Questions:    questions,
		Responses:    responses,
		History:      history,
		Peers:        peers,
	}, nil
}

// Generate builds the cycle's report and persists it in one upsert. Calls
// for the same cycle are serialized; an existing access token is reused.
func (e *Engine) Generate(ctx context.Context, cycleID uuid.UUID) (*types.Report, error) {
	unlock := e.locks.Lock(cycleID)
	defer unlock()

	start := e.now()

	in, err := e.LoadInput(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	data, err := Build(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	stored, err := e.store.UpsertReport(ctx, &types.Report{
		ID:          uuid.New(),
		CycleID:     cycleID,
		AccessToken: uuid.NewString(),
		Data:        data,
		Available:   true,
		GeneratedAt: e.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	e.logger.Info("report generated",
		zap.String("cycle_id", cycleID.String()),
		zap.Int("questions", len(in.Questions)),
		zap.Int("responses", len(in.Responses)),
		zap.Int("prior_cycles", len(in.History)),
		zap.Int("peer_cycles", len(in.Peers)),
		zap.Bool("trends", data.Comparison != nil && data.Comparison.HasPrevious),
		zap.Bool("benchmarks", data.PeerBenchmarks != nil),
		zap.Duration("elapsed", e.now().Sub(start)),
	)

	return stored, nil
}

// DisplayReport returns the anonymized view of the cycle's stored report.
func (e *Engine) DisplayReport(ctx context.Context, cycleID uuid.UUID) (*View, error) {
	report, err := e.store.GetReport(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: cycle %s", ErrReportNotFound, cycleID)
	}
	return e.view(ctx, report)
}

// DisplayByAccessToken returns the anonymized view of the report with the
// given access token. Reports that are not available are refused.
func (e *Engine) DisplayByAccessToken(ctx context.Context, accessToken string) (*View, error) {
	report, err := e.store.GetReportByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if !report.Available {
		return nil, ErrReportUnavailable
	}
	return e.view(ctx, report)
}

// DisplayShared verifies a signed share link and returns the report it names.
func (e *Engine) DisplayShared(ctx context.Context, links *ShareLinks, token string) (*View, error) {
	accessToken, err := links.Verify(token)
	if err != nil {
		return nil, err
	}
	return e.DisplayByAccessToken(ctx, accessToken)
}

// Profile classifies the cycle's stored report. A nil profile means no
// dimension could be scored.
func (e *Engine) Profile(ctx context.Context, cycleID uuid.UUID) (*types.CompetencyProfile, error) {
	report, err := e.store.GetReport(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: cycle %s", ErrReportNotFound, cycleID)
	}
	return e.classifier.Classify(report.Data), nil
}

// MinResponses returns the anonymity threshold that applies to the cycle.
func (e *Engine) MinResponses(ctx context.Context, cycleID uuid.UUID) (int, error) {
	cycle, err := e.store.GetCycle(ctx, cycleID)
	if err != nil {
		return 0, fmt.Errorf("failed to load cycle: %w", err)
	}
	if cycle == nil {
		return 0, fmt.Errorf("%w: %s", ErrCycleNotFound, cycleID)
	}

	org, err := e.store.GetOrganization(ctx, cycle.OrganizationID)
	if err != nil {
		return 0, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return e.minDefault, nil
	}
	return org.MinResponsesForAnonymity, nil
}

func (e *Engine) view(ctx context.Context, report *types.Report) (*View, error) {
	minResponses, err := e.MinResponses(ctx, report.CycleID)
	if err != nil {
		return nil, err
	}

	data := types.ReportData{}
	if report.Data != nil {
		data = *report.Data
	}
	data.BySection = anonymize.NewFilter(minResponses).Apply(data.BySection)

	return &View{
		ReportID:     report.ID,
		CycleID:      report.CycleID,
		GeneratedAt:  report.GeneratedAt,
		MinResponses: minResponses,
		Summary:      data.BySection.Summary(),
		Data:         &data,
	}, nil
}
