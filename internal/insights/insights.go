// Package insights derives perception gaps, strengths, development areas and
// overall sentiment from aggregated report data.
package insights

import (
	"fmt"
	"sort"

	"github.com/jonathan/feedback-engine/internal/types"
)

// Classification thresholds on the 1-5 scale.
const (
	GapThreshold          = 0.5
	HighSeverityGap       = 1.0
	StrengthThreshold     = 4.0
	ExceptionalThreshold  = 4.5
	DevelopmentThreshold  = 3.0
	HighPriorityThreshold = 2.5
)

// Strength and development area levels
const (
	LevelExceptional  = "exceptional"
	LevelStrong       = "strong"
	LevelHighPriority = "high priority"
	LevelMedium       = "medium"
)

// Severity of a perception gap
const (
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
)

// Summarize computes the section summary: for every section title and
// category, the rounded mean of the category's question averages on the 1-5
// scale. Scale and scored choice averages are normalized first. Only numeric
// questions and categories meeting their statistical validity floor
// contribute. Sections sharing a title are summarized together.
func Summarize(bySection types.BySection) types.SectionSummary {
	values := map[string]map[types.Category][]float64{}

	bySection.Each(func(section *types.SectionAggregate, q *types.AggregatedQuestion) {
		if !q.Question.IsNumeric() {
			return
		}
		for cat, stat := range q.ByCategory {
			if stat.Avg == nil || !cat.IsValidFor(stat.Count) {
				continue
			}
			score, ok := q.Question.Normalize(*stat.Avg)
			if !ok {
				continue
			}
			if values[section.Title] == nil {
				values[section.Title] = map[types.Category][]float64{}
			}
			values[section.Title][cat] = append(values[section.Title][cat], score)
		}
	})

	summary := make(types.SectionSummary, len(values))
	for title, byCat := range values {
		scores := make(types.CategoryScores, len(byCat))
		for cat, vs := range byCat {
			mean, _ := types.Mean(vs)
			scores[cat] = types.Round2(mean)
		}
		summary[title] = scores
	}
	return summary
}

// Analyze derives insights from unfiltered aggregated data. It also returns
// the section summary the insights were computed from.
func Analyze(bySection types.BySection) (*types.Insights, types.SectionSummary) {
	summary := Summarize(bySection)

	result := &types.Insights{
		PerceptionGaps:   PerceptionGaps(summary),
		Strengths:        []types.SectionInsight{},
		DevelopmentAreas: []types.SectionInsight{},
		SkillProfile:     SkillProfile(summary),
		OverallSentiment: Sentiment(summary),
	}

	for _, title := range orderedTitles(bySection, summary) {
		insight, ok := classifySection(title, summary[title])
		if !ok {
			continue
		}
		if insight.Score >= StrengthThreshold {
			result.Strengths = append(result.Strengths, insight)
		} else {
			result.DevelopmentAreas = append(result.DevelopmentAreas, insight)
		}
	}

	sort.SliceStable(result.Strengths, func(i, j int) bool {
		return result.Strengths[i].Score > result.Strengths[j].Score
	})
	sort.SliceStable(result.DevelopmentAreas, func(i, j int) bool {
		return result.DevelopmentAreas[i].Score < result.DevelopmentAreas[j].Score
	})

	return result, summary
}

// classifySection returns the section's insight when it is a strength or a
// development area.
func classifySection(title string, scores types.CategoryScores) (types.SectionInsight, bool) {
	others, ok := scores.OthersMean()
	if !ok {
		return types.SectionInsight{}, false
	}
	others = types.Round2(others)

	insight := types.SectionInsight{Section: title, Score: others}
	switch {
	case others >= ExceptionalThreshold:
		insight.Level = LevelExceptional
	case others >= StrengthThreshold:
		insight.Level = LevelStrong
	case others < HighPriorityThreshold:
		insight.Level = LevelHighPriority
	case others < DevelopmentThreshold:
		insight.Level = LevelMedium
	default:
		return types.SectionInsight{}, false
	}

	if self, ok := scores.Self(); ok {
		gap := types.Round2(self - others)
		insight.SelfScore = &self
		insight.Gap = &gap
	}
	return insight, true
}

// PerceptionGaps compares each section's self score with the mean of its peer
// and manager scores. Sections missing either side are skipped.
func PerceptionGaps(summary types.SectionSummary) []types.PerceptionGap {
	gaps := []types.PerceptionGap{}

	for _, title := range summary.Titles() {
		scores := summary[title]
		self, ok := scores.Self()
		if !ok {
			continue
		}
		others, ok := types.Mean(peerAndManager(scores))
		if !ok {
			continue
		}
		others = types.Round2(others)
		gap := types.Round2(self - others)

		var pattern types.PerceptionPattern
		switch {
		case gap < -GapThreshold:
			pattern = types.PatternImposterSyndrome
		case gap > GapThreshold:
			pattern = types.PatternOverconfidence
		default:
			continue
		}

		severity := SeverityModerate
		if gap <= -HighSeverityGap || gap >= HighSeverityGap {
			severity = SeverityHigh
		}

		gaps = append(gaps, types.PerceptionGap{
			Section:     title,
			SelfScore:   self,
			OthersScore: others,
			Gap:         gap,
			Pattern:     pattern,
			Severity:    severity,
			Message:     gapMessage(pattern, title),
		})
	}
	return gaps
}

func gapMessage(pattern types.PerceptionPattern, section string) string {
	if pattern == types.PatternImposterSyndrome {
		return fmt.Sprintf("You rate yourself lower than others do in %s. Others see strengths you may be underestimating.", section)
	}
	return fmt.Sprintf("You rate yourself higher than others do in %s. Consider asking for specific examples to calibrate.", section)
}

// Sentiment returns the overall sentiment from peer and manager scores, or
// nil when no such scores exist.
func Sentiment(summary types.SectionSummary) *types.OverallSentiment {
	var values []float64
	for _, title := range summary.Titles() {
		values = append(values, peerAndManager(summary[title])...)
	}
	mean, ok := types.Mean(values)
	if !ok {
		return nil
	}
	score := types.Round2(mean)
	return &types.OverallSentiment{Score: score, Label: SentimentLabel(score)}
}

// SentimentLabel maps a 1-5 score to its sentiment tier.
func SentimentLabel(score float64) string {
	switch {
	case score >= 4.5:
		return "Outstanding"
	case score >= 4.0:
		return "Excellent"
	case score >= 3.5:
		return "Strong"
	case score >= 3.0:
		return "Developing"
	default:
		return "Needs Support"
	}
}

// SkillProfile is the legacy per-section proficiency listing, ordered by score.
func SkillProfile(summary types.SectionSummary) []types.SkillProfileEntry {
	profile := []types.SkillProfileEntry{}
	for _, title := range summary.Titles() {
		score, ok := summary.OthersMean(title)
		if !ok {
			continue
		}
		score = types.Round2(score)
		profile = append(profile, types.SkillProfileEntry{Section: title, Score: score, Level: proficiency(score)})
	}
	sort.SliceStable(profile, func(i, j int) bool { return profile[i].Score > profile[j].Score })
	return profile
}

func proficiency(score float64) string {
	switch {
	case score >= 4.5:
		return "Expert"
	case score >= 3.5:
		return "Advanced"
	case score >= 2.5:
		return "Intermediate"
	default:
		return "Developing"
	}
}

func peerAndManager(scores types.CategoryScores) []float64 {
	var values []float64
	for _, cat := range []types.Category{types.CategoryPeer, types.CategoryManager} {
		if v, ok := scores[cat]; ok {
			values = append(values, v)
		}
	}
	return values
}

// orderedTitles returns summary titles in questionnaire section order.
func orderedTitles(bySection types.BySection, summary types.SectionSummary) []string {
	seen := map[string]bool{}
	titles := make([]string, 0, len(summary))
	for _, id := range bySection.SectionIDs() {
		title := bySection[id].Title
		if _, ok := summary[title]; ok && !seen[title] {
			seen[title] = true
			titles = append(titles, title)
		}
	}
	return titles
}
