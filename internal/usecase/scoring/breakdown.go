package scoring

import (
	"strings"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/skills"
)

// maxExperienceYears is where the normalized experience component saturates.
const maxExperienceYears = 10

// domainKeywordWeight / domainTechWeight split the domain-relevance component
// between vocabulary overlap and technology overlap.
const (
	domainKeywordWeight = 0.6
	domainTechWeight    = 0.4
)

// breakdown computes the informational four-component decomposition. Each
// component is an independent heuristic in [0,1]; absent metadata contributes
// zero.
func (s *Scorer) breakdown(meta candidate.Metadata, in intent.Intent, alignment float64) candidate.Breakdown {
	return candidate.Breakdown{
		Education:       educationScore(meta.Education),
		SkillMatch:      alignment,
		Experience:      experienceScore(meta),
		DomainRelevance: domainRelevance(meta, in.Domain),
	}
}

// educationScore grades the highest education level mentioned.
func educationScore(education []string) float64 {
	if len(education) == 0 {
		return 0
	}
	text := strings.ToLower(strings.Join(education, " "))
	for _, level := range skills.EducationLevels() {
		for _, alias := range level.Aliases {
			if strings.Contains(text, alias) {
				return level.Score
			}
		}
	}
	return 0
}

// experienceScore normalizes estimated years against maxExperienceYears.
func experienceScore(meta candidate.Metadata) float64 {
	years, ok := candidateYears(meta)
	if !ok {
		return 0
	}
	score := float64(years) / maxExperienceYears
	if score > 1 {
		return 1
	}
	return score
}

// domainRelevance measures how well the candidate's profile text matches a
// domain vocabulary. When the query named a domain with a known profile, the
// candidate is graded against that profile; otherwise against its own
// best-matching profile, which rewards a clear specialization.
func domainRelevance(meta candidate.Metadata, domain string) float64 {
	text := candidateText(meta)
	if text == "" {
		return 0
	}

	if p := profileByName(domain); p != nil {
		return profileOverlap(text, *p)
	}

	best := 0.0
	for _, p := range skills.DomainProfiles() {
		if score := profileOverlap(text, p); score > best {
			best = score
		}
	}
	return best
}

func profileByName(name string) *skills.DomainProfile {
	for _, p := range skills.DomainProfiles() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// profileOverlap scores substring overlap of a profile's keywords and
// technologies against the candidate text.
func profileOverlap(text string, p skills.DomainProfile) float64 {
	return domainKeywordWeight*termFraction(text, p.Keywords) +
		domainTechWeight*termFraction(text, p.Technologies)
}

func termFraction(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

func candidateText(meta candidate.Metadata) string {
	parts := make([]string, 0, 3)
	if meta.Summary != "" {
		parts = append(parts, meta.Summary)
	}
	if len(meta.Skills) > 0 {
		parts = append(parts, strings.Join(meta.Skills, " "))
	}
	if len(meta.Experience) > 0 {
		parts = append(parts, strings.Join(meta.Experience, " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
