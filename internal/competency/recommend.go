package competency

import (
	"fmt"
	"strings"

	"github.com/jonathan/feedback-engine/internal/types"
)

// DivergenceThreshold is how far skill and initiative may drift apart before
// a balancing quick win is suggested.
const DivergenceThreshold = 0.5

// maxAreaQuickWins caps the quick wins taken from development areas.
const maxAreaQuickWins = 3

var primaryFocus = [5]string{
	"Build foundational skills through deliberate practice and close guidance from experienced mentors.",
	"Develop deeper pattern recognition and start building mental models of your domain.",
	"Expand your perspective to see the bigger picture and learn from diverse experiences.",
	"Deepen intuition through extensive practice and begin creating novel approaches.",
	"Continue innovating and sharing your expertise to advance the field.",
}

// Recommend generates development recommendations from the skill and
// initiative results. Development areas from insights, when present, add
// targeted quick wins. Without a skill result the recommendations are empty.
func Recommend(skill, agency *types.DimensionResult, insights *types.Insights) types.Recommendations {
	rec := types.Recommendations{
		QuickWins:             []string{},
		LongTermGoals:         []string{},
		Resources:             []string{},
		NextLevelRequirements: []string{},
	}
	if skill == nil {
		return rec
	}

	stage := StageFor(skill.Level)
	rec.PrimaryFocus = primaryFocus[stage-1]

	switch {
	case stage < 3:
		rec.QuickWins = []string{
			"Seek feedback on your work early and often",
			"Study examples of good work in your domain",
			"Practice deliberate problem-solving with guidance",
		}
	case stage == 3:
		rec.QuickWins = []string{
			"Take ownership of a complete project or feature",
			"Learn from colleagues at different skill levels",
			"Document your decision-making process",
		}
	default:
		rec.QuickWins = []string{
			"Mentor someone less experienced",
			"Share your knowledge through documentation or talks",
			"Tackle a novel problem in your domain",
		}
	}

	if insights != nil {
		for i, area := range insights.DevelopmentAreas {
			if i == maxAreaQuickWins {
				break
			}
			rec.QuickWins = append(rec.QuickWins, fmt.Sprintf("Focus on improving: %s", strings.ToLower(area.Section)))
		}
	}

	if stage < len(SkillStages) {
		next := SkillStages[stage]
		rec.LongTermGoals = []string{
			fmt.Sprintf("Develop capabilities of a %s: %s", next.Name, next.ShortDescription),
			"Build experience across diverse situations",
			"Continuously reflect on your practice and learning",
		}
		rec.NextLevelRequirements = DevelopmentFocus(stage)
	}

	switch {
	case stage <= 2:
		rec.Resources = []string{
			"Structured learning programs or courses",
			"Regular mentorship sessions",
			"Code reviews and pair programming",
		}
	case stage == 3:
		rec.Resources = []string{
			"Cross-functional projects",
			"Technical leadership opportunities",
			"Industry conferences and communities",
		}
	default:
		rec.Resources = []string{
			"Research and innovation projects",
			"Teaching and mentoring opportunities",
			"Speaking at conferences or writing articles",
		}
	}

	if agency != nil {
		switch {
		case agency.Level < skill.Level-DivergenceThreshold:
			rec.QuickWins = prepend(rec.QuickWins, "Take more initiative on projects - your skills are ready for more ownership")
		case skill.Level < agency.Level-DivergenceThreshold:
			rec.QuickWins = prepend(rec.QuickWins, "Focus on deepening your technical expertise to match your initiative")
		}
	}
	return rec
}

func prepend(items []string, item string) []string {
	return append([]string{item}, items...)
}
