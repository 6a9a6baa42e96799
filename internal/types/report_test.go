package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBySection() (BySection, uuid.UUID, uuid.UUID) {
	sectionID := uuid.New()
	questionID := uuid.New()
	avg := 4.0

	return BySection{
		sectionID.String(): {
			Title: "Collaboration",
			Order: 1,
			Questions: map[string]*AggregatedQuestion{
				questionID.String(): {
					Question: Question{
						ID:           questionID,
						SectionID:    sectionID,
						SectionTitle: "Collaboration",
						SectionOrder: 1,
						Text:         "Shares context with the team",
						Config:       RatingConfig{Min: 1, Max: 5},
					},
					CategoryOrder: []Category{CategorySelf, CategoryPeer},
					ByCategory: map[Category]*CategoryStat{
						CategorySelf: {Count: 1, Avg: ptr(5.0), Responses: []Answer{NumberAnswer(5)}},
						CategoryPeer: {Count: 2, Avg: &avg, Responses: []Answer{NumberAnswer(3), NumberAnswer(5)}},
					},
				},
			},
		},
	}, sectionID, questionID
}

func TestBySection_JSONShape(t *testing.T) {
	bySection, sectionID, questionID := sampleBySection()

	data, err := json.Marshal(bySection)
	require.NoError(t, err)

	var generic map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	section := generic[sectionID.String()]
	assert.Equal(t, "Collaboration", section["title"])
	questions := section["questions"].(map[string]any)
	q := questions[questionID.String()].(map[string]any)
	assert.Equal(t, "Shares context with the team", q["question_text"])
	assert.Equal(t, "rating", q["question_type"])
	assert.Equal(t, []any{"self", "peer"}, q["category_order"])
	peer := q["by_category"].(map[string]any)["peer"].(map[string]any)
	assert.Equal(t, 4.0, peer["avg"])
	assert.NotContains(t, peer, "distribution")
}

func TestBySection_JSONRoundTripRestoresIDs(t *testing.T) {
	bySection, sectionID, questionID := sampleBySection()

	data, err := json.Marshal(bySection)
	require.NoError(t, err)

	var decoded BySection
	require.NoError(t, json.Unmarshal(data, &decoded))

	q := decoded[sectionID.String()].Questions[questionID.String()]
	require.NotNil(t, q)
	assert.Equal(t, questionID, q.Question.ID)
	assert.Equal(t, sectionID, q.Question.SectionID)
	assert.Equal(t, "Collaboration", q.Question.SectionTitle)
	assert.Equal(t, RatingConfig{Min: 1, Max: 5}, q.Question.Config)
	assert.Equal(t, []Answer{NumberAnswer(3), NumberAnswer(5)}, q.ByCategory[CategoryPeer].Responses)
}

func TestAggregatedQuestion_MissingCategoryOrderFallsBack(t *testing.T) {
	raw := `{"question_text":"q","question_type":"rating","by_category":{"peer":{"count":2},"manager":{"count":1},"self":{"count":1}}}`

	var q AggregatedQuestion
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, []Category{CategorySelf, CategoryPeer, CategoryManager}, q.CategoryOrder)
}

func TestBySection_CloneIsDeep(t *testing.T) {
	bySection, sectionID, questionID := sampleBySection()

	clone := bySection.Clone()
	stat := clone[sectionID.String()].Questions[questionID.String()].ByCategory[CategoryPeer]
	*stat.Avg = 1.0
	stat.Responses[0] = NumberAnswer(1)
	stat.Insufficient = true

	orig := bySection[sectionID.String()].Questions[questionID.String()].ByCategory[CategoryPeer]
	assert.Equal(t, 4.0, *orig.Avg)
	assert.Equal(t, NumberAnswer(3), orig.Responses[0])
	assert.False(t, orig.Insufficient)
}

func TestBySection_Summary(t *testing.T) {
	bySection, sectionID, _ := sampleBySection()
	other := uuid.New()
	bySection[sectionID.String()].Questions[other.String()] = &AggregatedQuestion{
		Question: Question{ID: other, Order: 2, Config: TextConfig{}},
		ByCategory: map[Category]*CategoryStat{
			CategoryPeer:         {Count: 3},
			CategoryDirectReport: {Count: 1, Insufficient: true},
		},
	}

	summary := bySection.Summary()
	assert.Equal(t, 4, summary.TotalResponses)
	assert.Equal(t, map[Category]int{CategorySelf: 1, CategoryPeer: 3}, summary.ByCategory)
}

func TestBySection_SectionIDsOrdered(t *testing.T) {
	b := BySection{
		"b": {Title: "Second", Order: 2},
		"a": {Title: "Third", Order: 3},
		"c": {Title: "First", Order: 1},
	}
	assert.Equal(t, []string{"c", "b", "a"}, b.SectionIDs())
}

func TestCategory_ValidityFloor(t *testing.T) {
	assert.True(t, CategorySelf.IsValidFor(1))
	assert.True(t, CategoryManager.IsValidFor(1))
	assert.False(t, CategoryPeer.IsValidFor(1))
	assert.True(t, CategoryPeer.IsValidFor(2))
	assert.False(t, CategoryDirectReport.IsValidFor(1))
	assert.False(t, Category("skip_level").IsValidFor(1))
}

func TestSortCategories(t *testing.T) {
	got := SortCategories([]Category{"skip_level", CategoryDirectReport, CategoryPeer, CategorySelf})
	assert.Equal(t, []Category{CategorySelf, CategoryPeer, CategoryDirectReport, "skip_level"}, got)
}

func TestSectionSummary_OthersMean(t *testing.T) {
	summary := SectionSummary{
		"Delivery": {CategorySelf: 5, CategoryPeer: 3, CategoryManager: 4},
		"Solo":     {CategorySelf: 4},
	}

	mean, ok := summary.OthersMean("Delivery")
	require.True(t, ok)
	assert.InDelta(t, 3.5, mean, 1e-9)

	_, ok = summary.OthersMean("Solo")
	assert.False(t, ok)

	_, ok = summary.OthersMean("Missing")
	assert.False(t, ok)
}

func TestChartScores_JSON(t *testing.T) {
	avg := 3.5
	scores := ChartScores{Categories: CategoryScores{CategorySelf: 4, CategoryPeer: 3.5}, OthersAvg: &avg}

	data, err := json.Marshal(scores)
	require.NoError(t, err)
	assert.JSONEq(t, `{"self":4,"peer":3.5,"others_avg":3.5}`, string(data))

	var decoded ChartScores
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, scores, decoded)
}

func TestPeerBenchmarks_JSONShape(t *testing.T) {
	benchmarks := &PeerBenchmarks{
		PeerCycleCount: 3,
		Sections: map[string]*SectionBenchmark{
			"Delivery": {CurrentScore: 4, PeerMedian: 3.5, Percentile: 67, PeerCount: 3, ShowPercentile: true},
		},
	}

	data, err := json.Marshal(ReportData{PeerBenchmarks: benchmarks})
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	pb := generic["peer_benchmarks"].(map[string]any)
	assert.Equal(t, 3.0, pb["peer_cycle_count"])
	assert.NotContains(t, pb, "Delivery", "benchmarks are nested under sections")
	delivery := pb["sections"].(map[string]any)["Delivery"].(map[string]any)
	assert.Equal(t, 67.0, delivery["percentile"])

	data, err = json.Marshal(ReportData{})
	require.NoError(t, err)
	var empty map[string]any
	require.NoError(t, json.Unmarshal(data, &empty))
	assert.Contains(t, empty, "peer_benchmarks")
	assert.Nil(t, empty["peer_benchmarks"])
}

func TestCycleInput_Validate(t *testing.T) {
	in := CycleInput{
		Cycle: Cycle{
			ID:              uuid.New(),
			OrganizationID:  uuid.New(),
			RevieweeID:      uuid.New(),
			QuestionnaireID: uuid.New(),
			Status:          CycleStatusActive,
		},
		Questions: []Question{{ID: uuid.New(), SectionID: uuid.New(), Config: RatingConfig{Min: 1, Max: 5}}},
	}
	require.NoError(t, in.Validate())

	in.Cycle.Status = "archived"
	assert.Error(t, in.Validate())
}
