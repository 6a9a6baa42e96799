package competency

// Stage describes one of the five stages of a competency dimension.
type Stage struct {
	Number           int      `json:"stage"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description,omitempty"`
	Description      string   `json:"description"`
	Traits           []string `json:"traits,omitempty"`
	Behaviors        []string `json:"behaviors,omitempty"`
}

// SkillStages are the stages of skill acquisition, indexed by stage number minus one.
var SkillStages = [5]Stage{
	{
		Number:           1,
		Name:             "Novice",
		ShortDescription: "Rigid rule follower",
		Description:      "Follows rules rigidly, needs detailed instructions and close guidance",
		Traits: []string{
			"Requires step-by-step instructions",
			"Follows rules without understanding context",
			"Needs close supervision",
			"Limited ability to recognize patterns",
			"Task-focused rather than goal-focused",
		},
		Behaviors: []string{
			"Asks for detailed procedures",
			"Struggles with unexpected situations",
			"Focuses on individual steps",
			"Needs explicit direction for each task",
		},
	},
	{
		Number:           2,
		Name:             "Advanced Beginner",
		ShortDescription: "Recognizes patterns, needs guidelines",
		Description:      "Can handle simple tasks independently, recognizes recurring patterns",
		Traits: []string{
			"Recognizes situational patterns",
			"Handles routine tasks independently",
			"Needs guidelines for non-standard situations",
			"Starts to see similarities across problems",
			"Still struggles with complex decisions",
		},
		Behaviors: []string{
			"Can work independently on familiar tasks",
			"Asks for guidance on edge cases",
			"Identifies when something looks wrong",
			"Follows established patterns",
		},
	},
	{
		Number:           3,
		Name:             "Competent",
		ShortDescription: "Develops mental models, takes responsibility",
		Description:      "Plans deliberately, solves standard problems, takes ownership",
		Traits: []string{
			"Creates mental models of the domain",
			"Plans work deliberately",
			"Takes responsibility for outcomes",
			"Solves standard problems independently",
			"Makes conscious, reasoned decisions",
		},
		Behaviors: []string{
			"Troubleshoots problems systematically",
			"Prioritizes and plans work",
			"Takes ownership of results",
			"Follows through on commitments",
		},
	},
	{
		Number:           4,
		Name:             "Proficient",
		ShortDescription: "Sees the big picture, learns from others",
		Description:      "Sees the big picture, recognizes patterns quickly, handles complexity",
		Traits: []string{
			"Sees the big picture and context",
			"Recognizes patterns and deviations quickly",
			"Learns from others experiences",
			"Handles complex situations effectively",
			"Knows when to break the rules",
		},
		Behaviors: []string{
			"Quickly identifies root causes",
			"Anticipates problems before they occur",
			"Adapts approaches to context",
			"Mentors less experienced team members",
		},
	},
	{
		Number:           5,
		Name:             "Expert",
		ShortDescription: "Intuitive, creates new approaches",
		Description:      "Works from intuition, creates novel solutions, recognized authority",
		Traits: []string{
			"Works from intuition and deep understanding",
			"Creates new approaches and solutions",
			"Recognized as domain authority",
			"Sees possibilities others miss",
			"Operates at a transcendent level",
		},
		Behaviors: []string{
			"Solves problems others cannot",
			"Innovates and creates best practices",
			"Trusted for most difficult challenges",
			"Shapes the direction of the field",
		},
	},
}

// AgencyStages are the stages of initiative, indexed by stage number minus one.
var AgencyStages = [5]Stage{
	{Number: 1, Name: "Directed", Description: "Waits for explicit instructions and direction"},
	{Number: 2, Name: "Assisted", Description: "Takes initiative when prompted or guided"},
	{Number: 3, Name: "Independent", Description: "Proactively identifies and addresses problems"},
	{Number: 4, Name: "Proactive", Description: "Regularly proposes improvements and drives change"},
	{Number: 5, Name: "Self-Driven", Description: "Self-directed achiever who consistently improves systems"},
}

// developmentFocus lists what is needed to move from stage N to N+1, indexed by N-1.
var developmentFocus = [4][]string{
	{
		"Recognize recurring patterns in your work",
		"Handle routine tasks independently",
		"Build situational awareness beyond just following rules",
	},
	{
		"Develop mental models of how things work",
		"Take responsibility for outcomes, not just tasks",
		"Plan and prioritize work deliberately",
	},
	{
		"See the big picture and system context",
		"Learn from others' experiences, not just your own",
		"Recognize patterns and deviations quickly",
	},
	{
		"Trust your intuition based on deep experience",
		"Create novel approaches and solutions",
		"Become a recognized authority in your domain",
	},
}

// expertFocus is the development focus of the final skill stage.
var expertFocus = []string{"Continue deepening expertise and innovating"}

// StageFor maps a 1-5 level to its stage number.
func StageFor(level float64) int {
	switch {
	case level >= 4.5:
		return 5
	case level >= 3.5:
		return 4
	case level >= 2.5:
		return 3
	case level >= 1.5:
		return 2
	default:
		return 1
	}
}

// SkillStage returns the skill stage for a level.
func SkillStage(level float64) Stage {
	return SkillStages[StageFor(level)-1]
}

// AgencyStage returns the initiative stage for a level.
func AgencyStage(level float64) Stage {
	return AgencyStages[StageFor(level)-1]
}

// DevelopmentFocus returns what is needed to progress past the given skill stage.
func DevelopmentFocus(stage int) []string {
	if stage < 1 || stage > len(developmentFocus) {
		return append([]string(nil), expertFocus...)
	}
	return append([]string(nil), developmentFocus[stage-1]...)
}

// Quadrant keys
const (
	QuadrantDevelopingContributor = "developing_contributor"
	QuadrantHungryLearner         = "hungry_learner"
	QuadrantSpecialist            = "specialist"
	QuadrantForceMultiplier       = "force_multiplier"
)

type quadrantInfo struct {
	name            string
	description     string
	characteristics []string
	developmentPath string
}

var quadrants = map[string]quadrantInfo{
	QuadrantDevelopingContributor: {
		name:        "Developing Contributor",
		description: "Building foundational skills and learning to work independently",
		characteristics: []string{
			"Early in career or role",
			"Requires guidance and support",
			"Building fundamental capabilities",
			"Needs structured development",
		},
		developmentPath: "Focus on building core skills through deliberate practice and seeking guidance. Work on taking more initiative on familiar tasks.",
	},
	QuadrantHungryLearner: {
		name:        "Hungry Learner",
		description: "High initiative but developing expertise - eager to learn and contribute",
		characteristics: []string{
			"Strong drive and motivation",
			"Seeks opportunities to grow",
			"May overcommit without experience",
			"Benefits from mentorship",
		},
		developmentPath: "Channel your energy into deliberate skill development. Seek mentorship from experts. Balance enthusiasm with building depth.",
	},
	QuadrantSpecialist: {
		name:        "Specialist",
		description: "Deep expertise but waits for direction - valuable contributor when engaged",
		characteristics: []string{
			"Strong technical capabilities",
			"Reliable when given clear objectives",
			"Prefers depth over breadth",
			"May need encouragement to lead",
		},
		developmentPath: "Build confidence in taking initiative. Start with small ownership opportunities. Share your expertise proactively.",
	},
	QuadrantForceMultiplier: {
		name:        "Force Multiplier",
		description: "High skill and high initiative - drives team success and innovation",
		characteristics: []string{
			"Combines expertise with initiative",
			"Mentors and elevates others",
			"Drives meaningful improvements",
			"Trusted for complex challenges",
		},
		developmentPath: "Continue expanding your impact. Focus on strategic initiatives and developing others. Consider broader leadership roles.",
	},
}
