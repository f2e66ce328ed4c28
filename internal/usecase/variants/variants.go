// Package variants builds the set of query phrasings probed against the
// vector index. Each variant stresses a different aspect of the query so the
// pooled candidates cover more of the index than a single phrasing would.
package variants

import (
	"strings"

	"github.com/talent-cloud/resumedex/internal/domain/intent"
)

// MaxVariants bounds the probe fan-out per search.
const MaxVariants = 4

// Generate returns an ordered, deduplicated list of query variants.
// The expanded query always comes first; later variants are added only when
// the intent justifies them. The result has between one and MaxVariants
// entries.
func Generate(expanded string, in intent.Intent) []string {
	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || len(out) >= MaxVariants {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	add(expanded)

	if in.RoleType != intent.DefaultRole {
		add(in.RoleType + " developer " + expanded)
	}

	if qualified := qualify(expanded, in); qualified != expanded {
		add(qualified)
	}

	if in.Specificity == intent.SpecificityHigh {
		add(strings.Join(in.PrimarySkills, " "))
	}

	return out
}

// qualify appends detected seniority and domain context to the query.
func qualify(expanded string, in intent.Intent) string {
	var suffix []string
	if in.ExperienceLevel != intent.LevelAny {
		suffix = append(suffix, string(in.ExperienceLevel))
	}
	if in.Domain != intent.DefaultDomain {
		suffix = append(suffix, in.Domain)
	}
	if len(suffix) == 0 {
		return expanded
	}
	return expanded + " " + strings.Join(suffix, " ")
}
