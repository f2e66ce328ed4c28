// Package analyzer turns a raw hiring query into an expanded query plus a
// structured intent. Both derivations are pure functions of the query text
// and the skill vocabulary.
package analyzer

import (
	"strings"

	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/extract"
	"github.com/talent-cloud/resumedex/internal/skills"
)

// maxSynonymsPerSkill caps how many synonyms each matched skill contributes
// to the expanded query.
const maxSynonymsPerSkill = 3

// expansionFactor caps the expanded query at this multiple of the original
// token count, so expansion never drowns the user's own words.
const expansionFactor = 3

// Analyzer derives expansions and intents from the skill vocabulary.
type Analyzer struct {
	table *skills.Table
}

// New creates an analyzer over the given vocabulary.
func New(table *skills.Table) *Analyzer {
	return &Analyzer{table: table}
}

// Analyze returns the expanded form of raw plus its extracted intent.
// An empty or whitespace-only query expands to itself with a default intent.
func (a *Analyzer) Analyze(raw string) (string, intent.Intent) {
	tokens := extract.Tokenize(raw)
	if len(tokens) == 0 {
		return raw, intent.Default()
	}

	set := extract.TokenSet(tokens)
	matched := a.table.MatchCanonical(set)

	return a.expand(raw, tokens, set, matched), a.extractIntent(set, matched)
}

// expand appends matched canonical tokens and their leading synonyms to the
// original query. Tokens already present are skipped; the result never grows
// past expansionFactor times the original token count.
func (a *Analyzer) expand(raw string, tokens []string, set map[string]struct{}, matched []string) string {
	budget := len(tokens) * expansionFactor

	out := make([]string, 0, budget)
	out = append(out, tokens...)
	seen := make(map[string]struct{}, budget)
	for t := range set {
		seen[t] = struct{}{}
	}

	appendTerm := func(term string) {
		if len(out) >= budget {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}

	for _, canonical := range matched {
		appendTerm(canonical)
		syns := a.table.Synonyms(canonical)
		for i, syn := range syns {
			if i >= maxSynonymsPerSkill {
				break
			}
			appendTerm(syn)
		}
	}

	if len(out) == len(tokens) {
		return raw
	}
	return strings.Join(out, " ")
}

// extractIntent classifies the query tokens against the keyword sets.
// Detection is first-match-wins in declaration order.
func (a *Analyzer) extractIntent(set map[string]struct{}, matched []string) intent.Intent {
	in := intent.Default()
	in.PrimarySkills = matched
	if in.PrimarySkills == nil {
		in.PrimarySkills = []string{}
	}
	in.Specificity = intent.SpecificityFor(len(matched))

	if name, ok := firstMatch(skills.Seniorities(), set); ok {
		in.ExperienceLevel = intent.Level(name)
	}
	if name, ok := firstMatch(skills.Domains(), set); ok {
		in.Domain = name
	}
	if name, ok := firstMatch(skills.Roles(), set); ok {
		in.RoleType = name
	}
	return in
}

func firstMatch(sets []skills.KeywordSet, tokens map[string]struct{}) (string, bool) {
	for _, ks := range sets {
		for _, term := range ks.Terms {
			if _, ok := tokens[term]; ok {
				return ks.Name, true
			}
		}
	}
	return "", false
}
