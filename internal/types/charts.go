package types

import (
	"encoding/json"
)

// othersAvgKey is the key under which the non-self average is stored next to
// the per-category scores of a chart entry.
const othersAvgKey = "others_avg"

// ChartScores holds normalized 1-5 scores per category plus the mean of the non-self categories.
type ChartScores struct {
	Categories CategoryScores
	OthersAvg  *float64
}

// MarshalJSON flattens the entry into {"self": 4.0, "peer": 3.5, "others_avg": 3.5}.
func (c ChartScores) MarshalJSON() ([]byte, error) {
	flat := make(map[string]float64, len(c.Categories)+1)
	for cat, score := range c.Categories {
		flat[string(cat)] = score
	}
	if c.OthersAvg != nil {
		flat[othersAvgKey] = *c.OthersAvg
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reverses MarshalJSON.
func (c *ChartScores) UnmarshalJSON(data []byte) error {
	var flat map[string]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*c = ChartScores{Categories: CategoryScores{}}
	for key, score := range flat {
		if key == othersAvgKey {
			c.OthersAvg = ptr(score)
			continue
		}
		c.Categories[Category(key)] = score
	}
	return nil
}

// Charts is the visualization data of a report: normalized weighted scores per
// section (keyed by section title) and overall.
type Charts struct {
	SectionScores map[string]*ChartScores `json:"section_scores"`
	Overall       *ChartScores            `json:"overall"`
}
