// Package intent holds the structured interpretation of a free-text hiring query.
package intent

// Level is a detected seniority level.
type Level string

// Seniority levels.
const (
	LevelAny    Level = "any"
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Specificity grades how anchored a query is in recognized skills.
type Specificity string

// Specificity grades.
const (
	SpecificityLow    Specificity = "low"
	SpecificityMedium Specificity = "medium"
	SpecificityHigh   Specificity = "high"
)

// DefaultDomain and DefaultRole are the values used when no keyword matched.
const (
	DefaultDomain = "general"
	DefaultRole   = "general"
)

// Intent is derived purely from the raw query text plus the synonym table.
type Intent struct {
	// PrimarySkills holds canonical skill tokens in table order.
	PrimarySkills   []string    `json:"primary_skills"`
	ExperienceLevel Level       `json:"experience_level"`
	Domain          string      `json:"domain"`
	RoleType        string      `json:"role_type"`
	Specificity     Specificity `json:"specificity"`
}

// Default returns an Intent with all fields at their zero-query defaults.
func Default() Intent {
	return Intent{
		PrimarySkills:   []string{},
		ExperienceLevel: LevelAny,
		Domain:          DefaultDomain,
		RoleType:        DefaultRole,
		Specificity:     SpecificityLow,
	}
}

// HasSkill reports whether canonical is one of the primary skills.
func (in Intent) HasSkill(canonical string) bool {
	for _, s := range in.PrimarySkills {
		if s == canonical {
			return true
		}
	}
	return false
}

// SpecificityFor grades a matched-skill count: high ≥3, medium 1-2, low 0.
func SpecificityFor(skillCount int) Specificity {
	switch {
	case skillCount >= 3:
		return SpecificityHigh
	case skillCount >= 1:
		return SpecificityMedium
	default:
		return SpecificityLow
	}
}
