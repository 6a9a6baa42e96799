// Package trends compares a report with the reviewee's earlier completed cycles.
package trends

import (
	"github.com/jonathan/feedback-engine/internal/insights"
	"github.com/jonathan/feedback-engine/internal/types"
)

// MinPriorCyclesForTrends is the number of prior completed cycles required
// before trends are shown. One prior point is a comparison, not a trend.
const MinPriorCyclesForTrends = 2

// Change thresholds
const (
	MajorChange = 0.3
	MinorChange = 0.1
)

// Classify returns the direction and symbol for a score change.
func Classify(change float64) (direction, symbol string) {
	switch {
	case change >= MajorChange:
		return types.TrendImproved, "↑"
	case change >= MinorChange:
		return types.TrendSlightlyImproved, "↗"
	case change <= -MajorChange:
		return types.TrendDeclined, "↓"
	case change <= -MinorChange:
		return types.TrendSlightlyDeclined, "↘"
	default:
		return types.TrendStable, "→"
	}
}

// NewTrend builds the trend between two scores.
func NewTrend(current, previous float64) *types.Trend {
	change := types.Round2(current - previous)
	direction, symbol := Classify(change)
	return &types.Trend{
		Current:   current,
		Previous:  previous,
		Change:    change,
		Direction: direction,
		Symbol:    symbol,
	}
}

// Compare compares the current section summary and sentiment with the most
// recent prior cycle. history holds prior completed cycles for the same
// reviewee and questionnaire, newest first. An empty history yields a
// comparison with HasPrevious unset.
func Compare(summary types.SectionSummary, sentiment *types.OverallSentiment, history []types.PriorCycle) *types.Comparison {
	comparison := &types.Comparison{
		PriorCycleCount: len(history),
		ShowTrends:      len(history) >= MinPriorCyclesForTrends,
	}
	if len(history) == 0 {
		return comparison
	}

	previous := history[0]
	date := previous.CreatedAt
	comparison.HasPrevious = true
	comparison.PreviousCycleID = previous.CycleID.String()
	comparison.PreviousCycleDate = &date
	comparison.SectionTrends = map[string]*types.Trend{}

	for _, title := range summary.Titles() {
		current, ok := summary.OthersMean(title)
		if !ok {
			continue
		}
		prior, ok := previous.SectionSummary.OthersMean(title)
		if !ok {
			continue
		}
		comparison.SectionTrends[title] = NewTrend(types.Round2(current), types.Round2(prior))
	}

	priorSentiment := previous.OverallSentiment
	if priorSentiment == nil {
		priorSentiment = insights.Sentiment(previous.SectionSummary)
	}
	if sentiment != nil && priorSentiment != nil {
		comparison.OverallTrend = NewTrend(sentiment.Score, priorSentiment.Score)
	}
	return comparison
}
