package types

import "time"

// Trend directions
const (
	TrendImproved         = "Improved"
	TrendSlightlyImproved = "Slightly improved"
	TrendStable           = "Stable"
	TrendSlightlyDeclined = "Slightly declined"
	TrendDeclined         = "Declined"
)

// Trend compares one score with the previous cycle's.
type Trend struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
	Symbol    string  `json:"symbol"`
}

// Comparison is the cross-cycle trend analysis of a report.
type Comparison struct {
	HasPrevious       bool              `json:"has_previous"`
	PreviousCycleID   string            `json:"previous_cycle_id,omitempty"`
	PreviousCycleDate *time.Time        `json:"previous_cycle_date,omitempty"`
	PriorCycleCount   int               `json:"prior_cycle_count"`
	SectionTrends     map[string]*Trend `json:"section_trends,omitempty"`
	OverallTrend      *Trend            `json:"overall_trend,omitempty"`
	ShowTrends        bool              `json:"show_trends"`
}
