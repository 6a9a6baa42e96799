package types

// Scoring methods of a dimension result
const (
	MethodWeighted       = "weighted"
	MethodLegacySections = "legacy_sections"
)

// DimensionResult is the level of one competency dimension and its stage.
type DimensionResult struct {
	Dimension             Dimension `json:"dimension"`
	Level                 float64   `json:"level"`
	Stage                 int       `json:"stage"`
	StageName             string    `json:"stage_name"`
	Description           string    `json:"description"`
	Traits                []string  `json:"traits,omitempty"`
	NextStage             string    `json:"next_stage,omitempty"`
	DevelopmentFocus      []string  `json:"development_focus,omitempty"`
	Confidence            float64   `json:"confidence"`
	Method                string    `json:"method"`
	ContributingQuestions []string  `json:"contributing_questions"`
}

// Quadrant is the skill × initiative classification.
type Quadrant struct {
	Key             string   `json:"quadrant_key"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	DevelopmentPath string   `json:"development_path"`
	SkillLevel      float64  `json:"skill_level"`
	AgencyLevel     float64  `json:"agency_level"`
	Threshold       float64  `json:"threshold"`
}

// Recommendations are development suggestions derived from a competency profile.
type Recommendations struct {
	PrimaryFocus          string   `json:"primary_focus"`
	QuickWins             []string `json:"quick_wins"`
	LongTermGoals         []string `json:"long_term_goals"`
	Resources             []string `json:"resources"`
	NextLevelRequirements []string `json:"next_level_requirements"`
}

// CompetencyProfile is derived on demand from report data and never stored on its own.
type CompetencyProfile struct {
	Skill           *DimensionResult `json:"skill"`
	Agency          *DimensionResult `json:"agency,omitempty"`
	Quadrant        *Quadrant        `json:"quadrant,omitempty"`
	Recommendations Recommendations  `json:"recommendations"`
}

// CompetencyPreview is the instant result shown before a full report exists.
type CompetencyPreview struct {
	SkillLevel  float64  `json:"skill_level"`
	SkillStage  string   `json:"skill_stage"`
	AgencyLevel float64  `json:"agency_level"`
	AgencyStage string   `json:"agency_stage"`
	Quadrant    Quadrant `json:"quadrant"`
	Confidence  string   `json:"confidence"`
}
