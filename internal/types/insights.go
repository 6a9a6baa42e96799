package types

import (
	"math"
	"sort"
)

// CategoryScores maps a reviewer category to a score.
type CategoryScores map[Category]float64

// Others returns the scores of every category except self.
func (c CategoryScores) Others() []float64 {
	values := make([]float64, 0, len(c))
	for _, cat := range c.sortedCategories() {
		if cat.IsSelf() {
			continue
		}
		values = append(values, c[cat])
	}
	return values
}

// OthersMean returns the mean of all non-self category scores.
func (c CategoryScores) OthersMean() (float64, bool) {
	return Mean(c.Others())
}

// Self returns the self-assessment score, if present.
func (c CategoryScores) Self() (float64, bool) {
	v, ok := c[CategorySelf]
	return v, ok
}

func (c CategoryScores) sortedCategories() []Category {
	cats := make([]Category, 0, len(c))
	for cat := range c {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// SectionSummary maps a section title to the rounded mean score of each category.
type SectionSummary map[string]CategoryScores

// Titles returns the section titles in lexical order.
func (s SectionSummary) Titles() []string {
	titles := make([]string, 0, len(s))
	for t := range s {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// OthersMean returns the mean non-self score of a section.
func (s SectionSummary) OthersMean(title string) (float64, bool) {
	scores, ok := s[title]
	if !ok {
		return 0, false
	}
	return scores.OthersMean()
}

// PerceptionPattern names the direction of a self vs. others gap.
type PerceptionPattern string

// Perception patterns
const (
	PatternImposterSyndrome PerceptionPattern = "imposter_syndrome"
	PatternOverconfidence   PerceptionPattern = "overconfidence"
)

// PerceptionGap compares the reviewee's self assessment with peer and manager scores.
type PerceptionGap struct {
	Section     string            `json:"section"`
	SelfScore   float64           `json:"self_score"`
	OthersScore float64           `json:"others_score"`
	Gap         float64           `json:"gap"`
	Pattern     PerceptionPattern `json:"pattern"`
	Severity    string            `json:"severity"`
	Message     string            `json:"message"`
}

// SectionInsight is a section classified as a strength or development area.
type SectionInsight struct {
	Section   string   `json:"area"`
	Score     float64  `json:"score"`
	Level     string   `json:"level"`
	SelfScore *float64 `json:"self_score,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
}

// SkillProfileEntry is a section's place in the legacy heuristic skill profile.
type SkillProfileEntry struct {
	Section string  `json:"section"`
	Score   float64 `json:"score"`
	Level   string  `json:"level"`
}

// OverallSentiment summarizes peer and manager scores across the report.
type OverallSentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Insights is the derived analysis of a report.
type Insights struct {
	PerceptionGaps   []PerceptionGap     `json:"perception_gaps"`
	Strengths        []SectionInsight    `json:"strengths"`
	DevelopmentAreas []SectionInsight    `json:"development_areas"`
	SkillProfile     []SkillProfileEntry `json:"skill_profile"`
	OverallSentiment *OverallSentiment   `json:"overall_sentiment"`
}

// Mean returns the arithmetic mean of values, or false for an empty slice.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
