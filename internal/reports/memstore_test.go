package reports

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu        sync.Mutex
	orgs      map[uuid.UUID]*types.Organization
	cycles    map[uuid.UUID]*types.Cycle
	questions map[uuid.UUID][]types.Question
	responses map[uuid.UUID][]types.RawResponse
	reports   map[uuid.UUID]*types.Report
	upserts   int
}

func newMemStore() *memStore {
	return &memStore{
		orgs:      map[uuid.UUID]*types.Organization{},
		cycles:    map[uuid.UUID]*types.Cycle{},
		questions: map[uuid.UUID][]types.Question{},
		responses: map[uuid.UUID][]types.RawResponse{},
		reports:   map[uuid.UUID]*types.Report{},
	}
}

func (m *memStore) GetCycle(_ context.Context, cycleID uuid.UUID) (*types.Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycles[cycleID], nil
}

func (m *memStore) GetOrganization(_ context.Context, orgID uuid.UUID) (*types.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orgs[orgID], nil
}

func (m *memStore) ListQuestions(_ context.Context, questionnaireID uuid.UUID) ([]types.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Question(nil), m.questions[questionnaireID]...), nil
}

func (m *memStore) ListResponses(_ context.Context, cycleID uuid.UUID) ([]types.RawResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.RawResponse(nil), m.responses[cycleID]...), nil
}

func (m *memStore) ListPriorCycles(_ context.Context, cycle *types.Cycle) ([]types.PriorCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var prior []types.PriorCycle
	for _, c := range m.cycles {
		report := m.reports[c.ID]
		if c.ID == cycle.ID || report == nil || c.Status != types.CycleStatusCompleted ||
			c.RevieweeID != cycle.RevieweeID || c.QuestionnaireID != cycle.QuestionnaireID ||
			!c.CreatedAt.Before(cycle.CreatedAt) {
			continue
		}
		prior = append(prior, types.PriorCycle{
			CycleID:          c.ID,
			CreatedAt:        c.CreatedAt,
			SectionSummary:   report.Data.SectionSummary,
			OverallSentiment: report.Data.Insights.OverallSentiment,
		})
	}
	sort.Slice(prior, func(i, j int) bool { return prior[i].CreatedAt.After(prior[j].CreatedAt) })
	return prior, nil
}

func (m *memStore) ListPeerSummaries(_ context.Context, cycle *types.Cycle) ([]types.SectionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var peers []types.SectionSummary
	for _, c := range m.cycles {
		report := m.reports[c.ID]
		if report == nil || c.Status != types.CycleStatusCompleted || c.RevieweeID == cycle.RevieweeID ||
			c.QuestionnaireID != cycle.QuestionnaireID || c.OrganizationID != cycle.OrganizationID {
			continue
		}
		peers = append(peers, report.Data.SectionSummary)
	}
	return peers, nil
}

func (m *memStore) UpsertReport(_ context.Context, report *types.Report) (*types.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *report
	if existing, ok := m.reports[report.CycleID]; ok {
		stored.ID = existing.ID
		if existing.AccessToken != "" {
			stored.AccessToken = existing.AccessToken
		}
	}
	m.reports[report.CycleID] = &stored
	m.upserts++
	out := stored
	return &out, nil
}

func (m *memStore) GetReport(_ context.Context, cycleID uuid.UUID) (*types.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[cycleID], nil
}

func (m *memStore) GetReportByAccessToken(_ context.Context, accessToken string) (*types.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.AccessToken == accessToken {
			return r, nil
		}
	}
	return nil, nil
}
