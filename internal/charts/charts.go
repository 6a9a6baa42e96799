// Package charts builds normalized, weighted per-category scores for report
// visualizations.
package charts

import (
	"github.com/jonathan/feedback-engine/internal/types"
)

// accumulator sums weighted normalized scores per category.
type accumulator struct {
	sums    map[types.Category]float64
	weights map[types.Category]float64
}

func newAccumulator() *accumulator {
	return &accumulator{sums: map[types.Category]float64{}, weights: map[types.Category]float64{}}
}

func (a *accumulator) add(cat types.Category, score, weight float64) {
	a.sums[cat] += score * weight
	a.weights[cat] += weight
}

func (a *accumulator) scores() *types.ChartScores {
	if len(a.weights) == 0 {
		return nil
	}
	result := &types.ChartScores{Categories: types.CategoryScores{}}
	for cat, w := range a.weights {
		if w <= 0 {
			continue
		}
		result.Categories[cat] = types.Round2(a.sums[cat] / w)
	}
	if len(result.Categories) == 0 {
		return nil
	}
	if others, ok := result.Categories.OthersMean(); ok {
		avg := types.Round2(others)
		result.OthersAvg = &avg
	}
	return result
}

// Build computes chart data from unfiltered aggregated data. Every question
// that is not excluded from charts contributes its normalized category
// averages multiplied by its chart weight. Categories below their
// statistical validity floor are skipped. Section rows are keyed by title, so
// sections sharing a title are charted together.
func Build(bySection types.BySection) *types.Charts {
	overall := newAccumulator()
	bySectionTitle := map[string]*accumulator{}
	var titles []string

	bySection.Each(func(section *types.SectionAggregate, q *types.AggregatedQuestion) {
		if q.Question.ExcludeFromCharts {
			return
		}
		weight := q.Question.EffectiveChartWeight()
		if weight <= 0 {
			return
		}

		for cat, stat := range q.ByCategory {
			if !cat.IsValidFor(stat.Count) {
				continue
			}
			score, ok := Score(&q.Question, stat)
			if !ok {
				continue
			}

			acc, ok := bySectionTitle[section.Title]
			if !ok {
				acc = newAccumulator()
				bySectionTitle[section.Title] = acc
				titles = append(titles, section.Title)
			}
			acc.add(cat, score, weight)
			overall.add(cat, score, weight)
		}
	})

	charts := &types.Charts{
		SectionScores: make(map[string]*types.ChartScores, len(titles)),
		Overall:       overall.scores(),
	}
	for _, title := range titles {
		if scores := bySectionTitle[title].scores(); scores != nil {
			charts.SectionScores[title] = scores
		}
	}
	return charts
}

// Score returns a category's average for the question on the common 1-5 scale.
// Likert distributions are converted by label position. Questions without a
// normalizable average do not score.
func Score(q *types.Question, stat *types.CategoryStat) (float64, bool) {
	if cfg, ok := q.Config.(types.LikertConfig); ok {
		return likertScore(cfg, stat.Distribution)
	}
	if stat.Avg == nil {
		return 0, false
	}
	return q.Normalize(*stat.Avg)
}

// likertScore maps each label's position onto 1-5 and averages by frequency.
func likertScore(cfg types.LikertConfig, distribution map[string]int) (float64, bool) {
	n := len(cfg.Labels)
	if n < 2 {
		return 0, false
	}

	sum, count := 0.0, 0
	for label, freq := range distribution {
		pos, ok := cfg.Ordinal(label)
		if !ok || freq <= 0 {
			continue
		}
		sum += (1 + float64(pos-1)/float64(n-1)*4) * float64(freq)
		count += freq
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
