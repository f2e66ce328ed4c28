// Package followup answers questions about a frozen result set. Answers are
// synthesized purely from the stored matches: no new retrieval happens, so a
// follow-up can never change the candidates under discussion.
package followup

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/session"
	"github.com/talent-cloud/resumedex/internal/extract"
	"github.com/talent-cloud/resumedex/internal/metrics"
)

// Archetype names the recognized follow-up question families.
type Archetype string

// Question archetypes, in matching priority order.
const (
	ArchetypeWhySelected       Archetype = "why_selected"
	ArchetypeCompareExperience Archetype = "compare_experience"
	ArchetypeCompareSkills     Archetype = "compare_skills"
	ArchetypeDomainFit         Archetype = "domain_fit"
	ArchetypeGeneral           Archetype = "general"
)

// NoResultsAnswer is returned when the session holds no matches.
const NoResultsAnswer = "There are no prior results to analyze. Run a search first, then ask about its candidates."

// maxDiscussed caps how many candidates an answer walks through.
const maxDiscussed = 5

// archetypeKeywords drive classification. First archetype whose keyword
// appears in the question wins.
var archetypeKeywords = []struct {
	archetype Archetype
	terms     []string
}{
	{ArchetypeWhySelected, []string{"why", "reason", "selected", "chosen", "criteria"}},
	{ArchetypeCompareExperience, []string{"experience", "years", "senior", "junior", "level"}},
	{ArchetypeCompareSkills, []string{"skill", "skills", "technology", "technologies", "tech", "technical", "programming", "compare", "vs"}},
	{ArchetypeDomainFit, []string{"domain", "fit", "startup", "team", "culture", "industry"}},
}

// Answer is a synthesized follow-up response.
type Answer struct {
	Archetype Archetype `json:"archetype"`
	Text      string    `json:"answer"`
}

// Reasoner synthesizes answers over frozen matches.
type Reasoner struct{}

// New creates a follow-up reasoner.
func New() *Reasoner {
	return &Reasoner{}
}

// Answer classifies the question and synthesizes a response from the stored
// session context.
func (r *Reasoner) Answer(sc session.Context, question string) Answer {
	archetype := classify(question)
	metrics.FollowupsTotal.WithLabelValues(string(archetype)).Inc()

	if len(sc.Matches) == 0 {
		return Answer{Archetype: archetype, Text: NoResultsAnswer}
	}

	matches := sc.Matches
	if len(matches) > maxDiscussed {
		matches = matches[:maxDiscussed]
	}

	var text string
	switch archetype {
	case ArchetypeWhySelected:
		text = whySelected(sc.Query, matches)
	case ArchetypeCompareExperience:
		text = compareExperience(matches)
	case ArchetypeCompareSkills:
		text = compareSkills(matches)
	case ArchetypeDomainFit:
		text = domainFit(matches)
	default:
		text = general(sc, matches)
	}
	return Answer{Archetype: archetype, Text: text}
}

// classify maps a question onto an archetype by keyword membership.
func classify(question string) Archetype {
	tokens := extract.TokenSet(extract.Tokenize(question))
	for _, ak := range archetypeKeywords {
		for _, term := range ak.terms {
			if _, ok := tokens[term]; ok {
				return ak.archetype
			}
		}
	}
	return ArchetypeGeneral
}

func whySelected(query string, matches []candidate.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The candidates were ranked against %q by semantic similarity, skill coverage, and experience proximity.\n", query)
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s (score %.2f)", i+1, displayName(m), m.FinalScore)
		var reasons []string
		if len(m.Meta.Skills) > 0 {
			reasons = append(reasons, "skills: "+joinFew(m.Meta.Skills, 5))
		}
		if years, ok := matchYears(m); ok {
			reasons = append(reasons, fmt.Sprintf("about %d years of experience", years))
		}
		if m.Snippet != "" {
			reasons = append(reasons, "resume text closely matching the query")
		}
		if len(reasons) > 0 {
			b.WriteString(": " + strings.Join(reasons, "; "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func compareExperience(matches []candidate.Match) string {
	type ranked struct {
		name  string
		years int
		known bool
	}
	rankings := make([]ranked, 0, len(matches))
	for _, m := range matches {
		years, ok := matchYears(m)
		rankings = append(rankings, ranked{name: displayName(m), years: years, known: ok})
	}
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].years > rankings[j].years })

	var b strings.Builder
	b.WriteString("Experience comparison across the results:\n")
	for _, r := range rankings {
		if r.known {
			fmt.Fprintf(&b, "- %s: about %d years\n", r.name, r.years)
		} else {
			fmt.Fprintf(&b, "- %s: experience not stated\n", r.name)
		}
	}
	if rankings[0].known {
		fmt.Fprintf(&b, "%s appears to be the most experienced.", rankings[0].name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func compareSkills(matches []candidate.Match) string {
	var b strings.Builder
	b.WriteString("Skill comparison across the results:\n")

	counts := make(map[string]int)
	for _, m := range matches {
		if len(m.Meta.Skills) > 0 {
			fmt.Fprintf(&b, "- %s: %s\n", displayName(m), joinFew(m.Meta.Skills, 8))
		} else {
			fmt.Fprintf(&b, "- %s: no skills extracted\n", displayName(m))
		}
		seen := make(map[string]struct{})
		for _, s := range m.Meta.Skills {
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
		}
	}

	var common []string
	for skill, n := range counts {
		if n == len(matches) {
			common = append(common, skill)
		}
	}
	if len(common) > 0 && len(matches) > 1 {
		sort.Strings(common)
		fmt.Fprintf(&b, "Shared by all: %s.", strings.Join(common, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func domainFit(matches []candidate.Match) string {
	var b strings.Builder
	b.WriteString("Domain background of the results:\n")
	for _, m := range matches {
		if m.Meta.Summary != "" {
			fmt.Fprintf(&b, "- %s: %s\n", displayName(m), truncate(m.Meta.Summary, 160))
		} else if len(m.Meta.Experience) > 0 {
			fmt.Fprintf(&b, "- %s: %s\n", displayName(m), truncate(m.Meta.Experience[0], 160))
		} else {
			fmt.Fprintf(&b, "- %s: no background information extracted\n", displayName(m))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func general(sc session.Context, matches []candidate.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The search for %q returned %d candidates.\n", sc.Query, sc.TotalResults)
	top := matches[0]
	fmt.Fprintf(&b, "Top match: %s (score %.2f)", displayName(top), top.FinalScore)
	if len(top.Meta.Skills) > 0 {
		fmt.Fprintf(&b, " with %s", joinFew(top.Meta.Skills, 5))
	}
	b.WriteString(".\nAsk about selection criteria, experience, skills, or domain fit for more detail.")
	return b.String()
}

func displayName(m candidate.Match) string {
	if m.Meta.Name != "" {
		return m.Meta.Name
	}
	if m.FileName != "" {
		return m.FileName
	}
	return m.ID
}

func matchYears(m candidate.Match) (int, bool) {
	if len(m.Meta.Experience) == 0 {
		return 0, false
	}
	years := len(m.Meta.Experience)
	if stated, ok := extract.MaxYears(strings.Join(m.Meta.Experience, " ")); ok && stated > years {
		years = stated
	}
	return years, true
}

func joinFew(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Back up to a rune boundary so multi-byte text is never split.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
