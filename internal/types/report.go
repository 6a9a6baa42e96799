package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CategoryStat is the aggregate of one reviewer category's answers to one question.
type CategoryStat struct {
	Count        int            `json:"count"`
	Avg          *float64       `json:"avg,omitempty"`
	Distribution map[string]int `json:"distribution,omitempty"`
	Responses    []Answer       `json:"responses,omitempty"`
	Insufficient bool           `json:"insufficient,omitempty"`
	Message      string         `json:"message,omitempty"`
}

// UnmarshalJSON decodes a category stat, inferring answer variants from their JSON values.
func (s *CategoryStat) UnmarshalJSON(data []byte) error {
	type alias struct {
		Count        int               `json:"count"`
		Avg          *float64          `json:"avg,omitempty"`
		Distribution map[string]int    `json:"distribution,omitempty"`
		Responses    []json.RawMessage `json:"responses,omitempty"`
		Insufficient bool              `json:"insufficient,omitempty"`
		Message      string            `json:"message,omitempty"`
	}
	var wire alias
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*s = CategoryStat{
		Count:        wire.Count,
		Avg:          wire.Avg,
		Distribution: wire.Distribution,
		Insufficient: wire.Insufficient,
		Message:      wire.Message,
	}
	if wire.Responses != nil {
		s.Responses = make([]Answer, 0, len(wire.Responses))
		for _, raw := range wire.Responses {
			a, err := decodeAnswerValue(raw)
			if err != nil {
				return err
			}
			s.Responses = append(s.Responses, a)
		}
	}
	return nil
}

// Clone returns a deep copy of the stat.
func (s *CategoryStat) Clone() *CategoryStat {
	c := *s
	if s.Avg != nil {
		c.Avg = ptr(*s.Avg)
	}
	if s.Distribution != nil {
		c.Distribution = make(map[string]int, len(s.Distribution))
		for k, v := range s.Distribution {
			c.Distribution[k] = v
		}
	}
	if s.Responses != nil {
		c.Responses = make([]Answer, len(s.Responses))
		for i, a := range s.Responses {
			if labels, ok := a.(LabelsAnswer); ok {
				a = append(LabelsAnswer(nil), labels...)
			}
			c.Responses[i] = a
		}
	}
	return &c
}

// AggregatedQuestion holds per-category statistics for one question.
type AggregatedQuestion struct {
	Question      Question
	CategoryOrder []Category
	ByCategory    map[Category]*CategoryStat
}

type aggregatedQuestionJSON struct {
	QuestionText  string                     `json:"question_text"`
	QuestionType  QuestionType               `json:"question_type"`
	Order         int                        `json:"order"`
	Config        ConfigBlob                 `json:"question_config"`
	CategoryOrder []Category                 `json:"category_order"`
	ByCategory    map[Category]*CategoryStat `json:"by_category"`
}

// MarshalJSON encodes the question in the persisted report shape.
func (q AggregatedQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(aggregatedQuestionJSON{
		QuestionText:  q.Question.Text,
		QuestionType:  q.Question.Type(),
		Order:         q.Question.Order,
		Config:        EncodeConfig(&q.Question),
		CategoryOrder: q.CategoryOrder,
		ByCategory:    q.ByCategory,
	})
}

// UnmarshalJSON decodes a persisted question aggregate. The question ID and
// section are restored by SectionAggregate and BySection.
func (q *AggregatedQuestion) UnmarshalJSON(data []byte) error {
	var wire struct {
		aggregatedQuestionJSON
		Config json.RawMessage `json:"question_config"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cfg, settings, err := ParseQuestionConfig(wire.QuestionType, wire.Config)
	if err != nil {
		return err
	}

	*q = AggregatedQuestion{
		Question: Question{
			Text:   wire.QuestionText,
			Order:  wire.Order,
			Config: cfg,
		},
		CategoryOrder: wire.CategoryOrder,
		ByCategory:    wire.ByCategory,
	}
	settings.Apply(&q.Question)

	if q.ByCategory == nil {
		q.ByCategory = map[Category]*CategoryStat{}
	}
	// Older documents lack category_order; fall back to the standard order.
	if len(q.CategoryOrder) == 0 && len(q.ByCategory) > 0 {
		cats := make([]Category, 0, len(q.ByCategory))
		for c := range q.ByCategory {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		q.CategoryOrder = SortCategories(cats)
	}
	return nil
}

// Clone returns a deep copy of the question aggregate.
func (q *AggregatedQuestion) Clone() *AggregatedQuestion {
	c := &AggregatedQuestion{
		Question:      q.Question,
		CategoryOrder: append([]Category(nil), q.CategoryOrder...),
		ByCategory:    make(map[Category]*CategoryStat, len(q.ByCategory)),
	}
	for cat, stat := range q.ByCategory {
		c.ByCategory[cat] = stat.Clone()
	}
	return c
}

// SectionAggregate groups question aggregates of one questionnaire section.
type SectionAggregate struct {
	Title     string                         `json:"title"`
	Order     int                            `json:"order"`
	Questions map[string]*AggregatedQuestion `json:"questions"`
}

// QuestionIDs returns the section's question IDs sorted by question order, then ID.
func (s *SectionAggregate) QuestionIDs() []string {
	ids := make([]string, 0, len(s.Questions))
	for id := range s.Questions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, oj := s.Questions[ids[i]].Question.Order, s.Questions[ids[j]].Question.Order
		if oi != oj {
			return oi < oj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// BySection maps section ID to its aggregate. It is the canonical structure
// every report component reads.
type BySection map[string]*SectionAggregate

// UnmarshalJSON decodes the structure and restores question and section IDs
// from the map keys.
func (b *BySection) UnmarshalJSON(data []byte) error {
	var raw map[string]*SectionAggregate
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for sectionKey, section := range raw {
		if section == nil {
			delete(raw, sectionKey)
			continue
		}
		sectionID, _ := uuid.Parse(sectionKey)
		for questionKey, q := range section.Questions {
			if q == nil {
				delete(section.Questions, questionKey)
				continue
			}
			q.Question.ID, _ = uuid.Parse(questionKey)
			q.Question.SectionID = sectionID
			q.Question.SectionTitle = section.Title
			q.Question.SectionOrder = section.Order
		}
	}
	*b = raw
	return nil
}

// SectionIDs returns section IDs sorted by section order, then ID.
func (b BySection) SectionIDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, oj := b[ids[i]].Order, b[ids[j]].Order
		if oi != oj {
			return oi < oj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Clone returns a deep copy.
func (b BySection) Clone() BySection {
	c := make(BySection, len(b))
	for id, section := range b {
		cs := &SectionAggregate{
			Title:     section.Title,
			Order:     section.Order,
			Questions: make(map[string]*AggregatedQuestion, len(section.Questions)),
		}
		for qid, q := range section.Questions {
			cs.Questions[qid] = q.Clone()
		}
		c[id] = cs
	}
	return c
}

// Each calls fn for every question in section and question order.
func (b BySection) Each(fn func(section *SectionAggregate, q *AggregatedQuestion)) {
	for _, sid := range b.SectionIDs() {
		section := b[sid]
		for _, qid := range section.QuestionIDs() {
			fn(section, section.Questions[qid])
		}
	}
}

// ResponseSummary counts reviewers per category across a report.
type ResponseSummary struct {
	TotalResponses int              `json:"total_responses"`
	ByCategory     map[Category]int `json:"by_category"`
}

// Summary returns the number of reviewers per category, estimated as the
// largest count over all questions. Redacted entries are ignored.
func (b BySection) Summary() ResponseSummary {
	counts := map[Category]int{}
	b.Each(func(_ *SectionAggregate, q *AggregatedQuestion) {
		for cat, stat := range q.ByCategory {
			if stat.Insufficient || stat.Count <= 0 {
				continue
			}
			counts[cat] = max(counts[cat], stat.Count)
		}
	})

	total := 0
	for _, n := range counts {
		total += n
	}
	return ResponseSummary{TotalResponses: total, ByCategory: counts}
}

// ReportData is the full computed report document.
type ReportData struct {
	BySection      BySection       `json:"by_section"`
	Insights       *Insights       `json:"insights"`
	SectionSummary SectionSummary  `json:"section_summary"`
	Charts         *Charts         `json:"charts"`
	Comparison     *Comparison     `json:"comparison"`
	PeerBenchmarks *PeerBenchmarks `json:"peer_benchmarks"`
}

// Report is the persisted report for one review cycle.
type Report struct {
	ID          uuid.UUID   `json:"id"`
	CycleID     uuid.UUID   `json:"cycle_id"`
	AccessToken string      `json:"access_token"`
	Data        *ReportData `json:"report_data"`
	Available   bool        `json:"available"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// DecodeReportData parses a stored report document.
func DecodeReportData(raw []byte) (*ReportData, error) {
	var data ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode report data: %w", err)
	}
	if data.BySection == nil {
		data.BySection = BySection{}
	}
	return &data, nil
}
