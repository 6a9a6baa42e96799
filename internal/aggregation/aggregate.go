// Package aggregation groups raw survey answers into per-section, per-question,
// per-category statistics.
package aggregation

import (
	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/types"
)

// Aggregate groups responses by section, question and reviewer category.
// Responses to questions not in questions are ignored.
func Aggregate(questions []types.Question, responses []types.RawResponse) types.BySection {
	b := NewBuilder(questions)
	for _, r := range responses {
		b.Add(r)
	}
	return b.Build()
}

// Builder accumulates responses into a BySection tree.
type Builder struct {
	questions map[uuid.UUID]*types.Question
	order     []uuid.UUID
	acc       map[uuid.UUID]*questionAcc
}

type questionAcc struct {
	question   *types.Question
	categories []types.Category
	byCategory map[types.Category]*categoryAcc
}

type categoryAcc struct {
	count        int
	responses    []types.Answer
	numeric      []float64
	distribution map[string]int
}

// NewBuilder creates a Builder for the given questionnaire questions.
func NewBuilder(questions []types.Question) *Builder {
	b := &Builder{
		questions: make(map[uuid.UUID]*types.Question, len(questions)),
		acc:       make(map[uuid.UUID]*questionAcc),
	}
	for i := range questions {
		q := &questions[i]
		b.questions[q.ID] = q
	}
	return b
}

// Add records one response. It returns false when the response's question is
// unknown or the answer is empty.
func (b *Builder) Add(r types.RawResponse) bool {
	q, ok := b.questions[r.QuestionID]
	if !ok || r.Answer == nil {
		return false
	}

	qa, ok := b.acc[q.ID]
	if !ok {
		qa = &questionAcc{question: q, byCategory: make(map[types.Category]*categoryAcc)}
		b.acc[q.ID] = qa
		b.order = append(b.order, q.ID)
	}

	ca, ok := qa.byCategory[r.Category]
	if !ok {
		ca = &categoryAcc{}
		qa.byCategory[r.Category] = ca
		qa.categories = append(qa.categories, r.Category)
	}

	ca.count++
	ca.responses = append(ca.responses, r.Answer)
	ca.record(q, r.Answer)
	return true
}

// record applies the type-specific accumulation rules for one answer.
func (ca *categoryAcc) record(q *types.Question, answer types.Answer) {
	switch cfg := q.Config.(type) {
	case types.RatingConfig, types.ScaleConfig:
		if v, ok := types.Number(answer); ok {
			ca.numeric = append(ca.numeric, v)
		}

	case types.LikertConfig:
		for _, label := range types.Labels(answer) {
			ca.countLabel(label)
		}

	case types.ChoiceConfig:
		labels := types.Labels(answer)
		if !cfg.Multiple && len(labels) > 1 {
			labels = labels[:1]
		}

		sum, mapped := 0.0, false
		for _, label := range labels {
			ca.countLabel(label)
			if !cfg.Scored() {
				continue
			}
			if w, ok := cfg.WeightOf(label); ok {
				sum += w
				mapped = true
			}
		}
		// A multiple choice response scores the sum of its selected weights.
		if mapped {
			ca.numeric = append(ca.numeric, sum)
		}
	}
}

func (ca *categoryAcc) countLabel(label string) {
	if ca.distribution == nil {
		ca.distribution = make(map[string]int)
	}
	ca.distribution[label]++
}

// Build returns the aggregated tree. The Builder may keep accepting responses
// afterwards; each Build returns an independent tree.
func (b *Builder) Build() types.BySection {
	result := types.BySection{}

	for _, qid := range b.order {
		qa := b.acc[qid]
		q := qa.question

		sectionKey := q.SectionID.String()
		section, ok := result[sectionKey]
		if !ok {
			section = &types.SectionAggregate{
				Title:     q.SectionTitle,
				Order:     q.SectionOrder,
				Questions: make(map[string]*types.AggregatedQuestion),
			}
			result[sectionKey] = section
		}

		agg := &types.AggregatedQuestion{
			Question:      *q,
			CategoryOrder: selfFirst(qa.categories),
			ByCategory:    make(map[types.Category]*types.CategoryStat, len(qa.byCategory)),
		}
		for cat, ca := range qa.byCategory {
			agg.ByCategory[cat] = ca.stat(q)
		}
		section.Questions[q.ID.String()] = agg
	}

	return result
}

func (ca *categoryAcc) stat(q *types.Question) *types.CategoryStat {
	stat := &types.CategoryStat{
		Count:     ca.count,
		Responses: append([]types.Answer(nil), ca.responses...),
	}

	if mean, ok := types.Mean(ca.numeric); ok {
		avg := types.Round2(mean)
		stat.Avg = &avg
	}

	switch q.Type() {
	case types.QuestionTypeLikert, types.QuestionTypeSingleChoice, types.QuestionTypeMultipleChoice:
		stat.Distribution = make(map[string]int, len(ca.distribution))
		for label, n := range ca.distribution {
			stat.Distribution[label] = n
		}
	}
	return stat
}

// selfFirst keeps first-seen category order but always puts self first.
func selfFirst(categories []types.Category) []types.Category {
	ordered := make([]types.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsSelf() {
			ordered = append(ordered, c)
		}
	}
	for _, c := range categories {
		if !c.IsSelf() {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
