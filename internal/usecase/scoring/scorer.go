// Package scoring re-ranks pooled vector hits with resume-aware signals.
// The vector score stays the dominant term; skill alignment and experience
// proximity nudge it, and an informational four-component breakdown explains
// the ranking to callers.
package scoring

import (
	"strings"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/extract"
	"github.com/talent-cloud/resumedex/internal/skills"
)

// skillAlignmentWeight scales how much skill coverage can lift a vector score.
const skillAlignmentWeight = 0.2

// snippetMaxLen bounds the relevant-text excerpt attached to each match.
const snippetMaxLen = 300

// Weights fold the breakdown components into the informational weighted
// score. They must sum to 1; config validation enforces that upstream.
type Weights struct {
	Education       float64
	SkillMatch      float64
	Experience      float64
	DomainRelevance float64
}

// DefaultWeights returns the standard component weighting.
func DefaultWeights() Weights {
	return Weights{Education: 0.25, SkillMatch: 0.35, Experience: 0.25, DomainRelevance: 0.15}
}

// Scorer re-ranks hits against a query intent.
type Scorer struct {
	table   *skills.Table
	weights Weights
}

// New creates a scorer over the given vocabulary.
func New(table *skills.Table, weights Weights) *Scorer {
	return &Scorer{table: table, weights: weights}
}

// Rerank converts raw hits into scored matches. The input order is preserved;
// dedup and sorting happen downstream.
func (s *Scorer) Rerank(hits []candidate.Hit, raw string, in intent.Intent) []candidate.Match {
	queryTokens := extract.Tokenize(raw)
	queryYears, hasQueryYears := extract.Years(raw)

	matches := make([]candidate.Match, 0, len(hits))
	for _, h := range hits {
		alignment := s.alignment(h.Meta.Skills, in.PrimarySkills)

		bonus := 0.0
		if hasQueryYears {
			if years, ok := candidateYears(h.Meta); ok {
				bonus = experienceBonus(queryYears, years)
			}
		}

		final := clamp01(h.Score + skillAlignmentWeight*alignment + bonus)
		bd := s.breakdown(h.Meta, in, alignment)

		matches = append(matches, candidate.Match{
			ID:            h.ID,
			FileName:      h.Meta.FileName,
			FinalScore:    final,
			BaseScore:     h.Score,
			Breakdown:     bd,
			WeightedScore: s.weighted(bd),
			Snippet:       extract.Snippet(h.Chunk, queryTokens, snippetMaxLen),
			Meta:          h.Meta,
			Variant:       h.Variant,
		})
	}
	return matches
}

// alignment returns the fraction of primary skills the candidate possesses.
// A candidate possesses a skill when its skill list mentions the canonical
// token or any of its synonyms.
func (s *Scorer) alignment(candidateSkills, primary []string) float64 {
	if len(primary) == 0 {
		return 0
	}

	tokens := make(map[string]struct{}, len(candidateSkills))
	for _, cs := range candidateSkills {
		for _, tok := range extract.Tokenize(cs) {
			tokens[tok] = struct{}{}
		}
	}

	covered := 0
	for _, canonical := range primary {
		if s.possesses(tokens, canonical) {
			covered++
		}
	}
	return float64(covered) / float64(len(primary))
}

func (s *Scorer) possesses(tokens map[string]struct{}, canonical string) bool {
	if _, ok := tokens[canonical]; ok {
		return true
	}
	for _, syn := range s.table.Synonyms(canonical) {
		if _, ok := tokens[syn]; ok {
			return true
		}
	}
	return false
}

// experienceBonus rewards candidates whose stated experience sits close to
// what the query asks for. Distance bands, not a gradient, to keep the
// ranking stable under noisy year extraction.
func experienceBonus(queryYears, candYears int) float64 {
	delta := queryYears - candYears
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta <= 2:
		return 0.1
	case delta <= 5:
		return 0.05
	default:
		return 0
	}
}

// candidateYears estimates a candidate's years of experience: the largest
// stated figure in the experience entries, floored at the entry count when
// figures are absent or smaller.
func candidateYears(meta candidate.Metadata) (int, bool) {
	if len(meta.Experience) == 0 {
		return 0, false
	}
	years := len(meta.Experience)
	if stated, ok := extract.MaxYears(strings.Join(meta.Experience, " ")); ok && stated > years {
		years = stated
	}
	return years, true
}

// weighted folds the breakdown under the configured static weights.
func (s *Scorer) weighted(b candidate.Breakdown) float64 {
	return s.weights.Education*b.Education +
		s.weights.SkillMatch*b.SkillMatch +
		s.weights.Experience*b.Experience +
		s.weights.DomainRelevance*b.DomainRelevance
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
